package cron

import (
	"context"
	"time"

	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/xcontext"
)

// WinnerExpiryCronJob sweeps pending winner records whose claim window has
// passed, so expiries happen even when no one asks for the list.
type WinnerExpiryCronJob struct {
	winnerRepo repository.WinnerRepository
	interval   time.Duration

	nowFunc func() time.Time
}

func NewWinnerExpiryCronJob(
	ctx context.Context, winnerRepo repository.WinnerRepository,
) *WinnerExpiryCronJob {
	interval := xcontext.Configs(ctx).Allowlist.WinnerRefreshInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &WinnerExpiryCronJob{
		winnerRepo: winnerRepo,
		interval:   interval,
		nowFunc:    time.Now,
	}
}

func (job *WinnerExpiryCronJob) Do(ctx context.Context) {
	expired, err := job.winnerRepo.ExpireAllDue(ctx, job.nowFunc())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot expire due winners: %v", err)
		return
	}

	if expired > 0 {
		xcontext.Logger(ctx).Infof("Expired %d winner records", expired)
	}
}

func (job *WinnerExpiryCronJob) RunNow() bool {
	return true
}

func (job *WinnerExpiryCronJob) Next() time.Time {
	return job.nowFunc().Add(job.interval)
}
