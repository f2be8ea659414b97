package repository

import (
	"context"
	"time"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type WinnerRepository interface {
	Create(ctx context.Context, winner *entity.Winner) error
	GetByID(ctx context.Context, id string) (*entity.Winner, error)
	GetPendingByUserID(ctx context.Context, userID string) ([]entity.Winner, error)
	GetListByAllowlistID(ctx context.Context, allowlistID string) ([]entity.Winner, error)

	// CheckAndClaim moves a winner from pending to claimed. The expiry is
	// re-checked inside the update, a missed condition returns
	// gorm.ErrRecordNotFound.
	CheckAndClaim(ctx context.Context, id string, now time.Time) error

	// ExpireAllDue moves every pending winner whose claim window has passed
	// to expired and returns the number of affected records.
	ExpireAllDue(ctx context.Context, now time.Time) (int64, error)
}

type winnerRepository struct{}

func NewWinnerRepository() *winnerRepository {
	return &winnerRepository{}
}

func (r *winnerRepository) Create(ctx context.Context, winner *entity.Winner) error {
	return xcontext.DB(ctx).Create(winner).Error
}

func (r *winnerRepository) GetByID(ctx context.Context, id string) (*entity.Winner, error) {
	var result entity.Winner
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *winnerRepository) GetPendingByUserID(
	ctx context.Context, userID string,
) ([]entity.Winner, error) {
	var result []entity.Winner
	err := xcontext.DB(ctx).
		Where("user_id=? AND status=?", userID, entity.WinnerPending).
		Order("claim_expires_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *winnerRepository) GetListByAllowlistID(
	ctx context.Context, allowlistID string,
) ([]entity.Winner, error) {
	var result []entity.Winner
	err := xcontext.DB(ctx).Where("allowlist_id=?", allowlistID).
		Order("position ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *winnerRepository) CheckAndClaim(ctx context.Context, id string, now time.Time) error {
	tx := xcontext.DB(ctx).Model(&entity.Winner{}).
		Where("id=? AND status=? AND claim_expires_at > ?", id, entity.WinnerPending, now).
		Updates(map[string]any{
			"status":     entity.WinnerClaimed,
			"claimed_at": now,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *winnerRepository) ExpireAllDue(ctx context.Context, now time.Time) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Winner{}).
		Where("status=? AND claim_expires_at <= ?", entity.WinnerPending, now).
		Update("status", entity.WinnerExpired)
	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}
