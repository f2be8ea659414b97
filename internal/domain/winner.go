package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/model"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/pubsub"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const WinnerClaimedTopic = "winner_claimed"

type WinnerDomain interface {
	GetPending(ctx context.Context, req *model.GetPendingWinnersRequest) (*model.GetPendingWinnersResponse, error)
	Claim(ctx context.Context, req *model.ClaimWinnerRequest) (*model.ClaimWinnerResponse, error)
	GetList(ctx context.Context, req *model.GetWinnersRequest) (*model.GetWinnersResponse, error)
}

type winnerDomain struct {
	winnerRepo repository.WinnerRepository
	publisher  pubsub.Publisher

	nowFunc func() time.Time
}

func NewWinnerDomain(winnerRepo repository.WinnerRepository, publisher pubsub.Publisher) *winnerDomain {
	return &winnerDomain{
		winnerRepo: winnerRepo,
		publisher:  publisher,
		nowFunc:    time.Now,
	}
}

// GetPending lists the caller's pending winner records. Due records are
// expired first so a record never reappears as pending after its window
// closed.
func (d *winnerDomain) GetPending(
	ctx context.Context, req *model.GetPendingWinnersRequest,
) (*model.GetPendingWinnersResponse, error) {
	if _, err := d.winnerRepo.ExpireAllDue(ctx, d.nowFunc()); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot expire due winners: %v", err)
		return nil, errorx.Unknown
	}

	winners, err := d.winnerRepo.GetPendingByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pending winners: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetPendingWinnersResponse{Winners: []model.Winner{}}
	for i := range winners {
		resp.Winners = append(resp.Winners, model.ConvertWinner(&winners[i]))
	}

	return resp, nil
}

// Claim marks a pending winner record as claimed. The expiry is evaluated
// against the server clock at call time, a stale countdown on the caller's
// side does not matter.
func (d *winnerDomain) Claim(
	ctx context.Context, req *model.ClaimWinnerRequest,
) (*model.ClaimWinnerResponse, error) {
	winner, err := d.winnerRepo.GetByID(ctx, req.WinnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found winner")
		}

		xcontext.Logger(ctx).Errorf("Cannot get winner: %v", err)
		return nil, errorx.Unknown
	}

	if winner.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Not your winner record")
	}

	now := d.nowFunc()
	if err := d.winnerRepo.CheckAndClaim(ctx, winner.ID, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, d.claimFailure(ctx, winner.ID, now)
		}

		xcontext.Logger(ctx).Errorf("Cannot claim winner: %v", err)
		return nil, errorx.Unknown
	}

	d.announceClaim(ctx, winner)

	return &model.ClaimWinnerResponse{ClaimedAt: now.Format(model.DefaultTimeLayout)}, nil
}

// claimFailure resolves why a conditional claim matched no row.
func (d *winnerDomain) claimFailure(ctx context.Context, winnerID string, now time.Time) error {
	winner, err := d.winnerRepo.GetByID(ctx, winnerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get winner after failed claim: %v", err)
		return errorx.Unknown
	}

	if winner.Status == entity.WinnerClaimed {
		return errorx.New(errorx.AlreadyClaimed, "Winner is already claimed")
	}

	if winner.Status == entity.WinnerExpired || !now.Before(winner.ClaimExpiresAt) {
		return errorx.New(errorx.ClaimExpired, "The claim window has closed")
	}

	return errorx.Unknown
}

func (d *winnerDomain) announceClaim(ctx context.Context, winner *entity.Winner) {
	if d.publisher == nil {
		return
	}

	msg, err := json.Marshal(map[string]any{
		"winner_id":    winner.ID,
		"allowlist_id": winner.AllowlistID,
		"user_id":      winner.UserID,
		"position":     winner.Position,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal claim event: %v", err)
		return
	}

	pack := &pubsub.Pack{Key: []byte(winner.AllowlistID), Msg: msg}
	if err := d.publisher.Publish(ctx, WinnerClaimedTopic, pack); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish claim event: %v", err)
	}
}

func (d *winnerDomain) GetList(
	ctx context.Context, req *model.GetWinnersRequest,
) (*model.GetWinnersResponse, error) {
	winners, err := d.winnerRepo.GetListByAllowlistID(ctx, req.AllowlistID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get winners: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetWinnersResponse{Winners: []model.Winner{}}
	for i := range winners {
		resp.Winners = append(resp.Winners, model.ConvertWinner(&winners[i]))
	}

	return resp, nil
}
