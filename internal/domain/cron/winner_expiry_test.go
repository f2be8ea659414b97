package cron

import (
	"testing"
	"time"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_WinnerExpiryCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	winnerRepo := repository.NewWinnerRepository()
	now := time.Now()

	require.NoError(t, winnerRepo.Create(ctx, &entity.Winner{
		Base:            entity.Base{ID: "due"},
		ParticipationID: "participation1",
		AllowlistID:     testutil.Allowlist1.ID,
		UserID:          testutil.User1.ID,
		Position:        1,
		Status:          entity.WinnerPending,
		ClaimExpiresAt:  now.Add(-time.Minute),
	}))
	require.NoError(t, winnerRepo.Create(ctx, &entity.Winner{
		Base:            entity.Base{ID: "alive"},
		ParticipationID: "participation2",
		AllowlistID:     testutil.Allowlist1.ID,
		UserID:          testutil.User1.ID,
		Position:        2,
		Status:          entity.WinnerPending,
		ClaimExpiresAt:  now.Add(time.Hour),
	}))

	job := NewWinnerExpiryCronJob(ctx, winnerRepo)
	job.nowFunc = func() time.Time { return now }
	job.Do(ctx)

	due, err := winnerRepo.GetByID(ctx, "due")
	require.NoError(t, err)
	require.Equal(t, entity.WinnerExpired, due.Status)

	alive, err := winnerRepo.GetByID(ctx, "alive")
	require.NoError(t, err)
	require.Equal(t, entity.WinnerPending, alive.Status)

	require.True(t, job.RunNow())
	require.Equal(t, now.Add(30*time.Second), job.Next())
}
