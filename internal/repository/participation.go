package repository

import (
	"context"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/pkg/xcontext"
)

type ParticipationRepository interface {
	Create(ctx context.Context, participation *entity.Participation) error
	GetByID(ctx context.Context, id string) (*entity.Participation, error)
	Get(ctx context.Context, allowlistID, walletAddress string) (*entity.Participation, error)
	Exists(ctx context.Context, allowlistID, walletAddress string) (bool, error)
	Count(ctx context.Context, allowlistID string) (int64, error)
	GetListByAllowlistID(ctx context.Context, allowlistID string) ([]entity.Participation, error)
}

type participationRepository struct{}

func NewParticipationRepository() *participationRepository {
	return &participationRepository{}
}

func (r *participationRepository) Create(
	ctx context.Context, participation *entity.Participation,
) error {
	return xcontext.DB(ctx).Create(participation).Error
}

func (r *participationRepository) GetByID(
	ctx context.Context, id string,
) (*entity.Participation, error) {
	var result entity.Participation
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participationRepository) Get(
	ctx context.Context, allowlistID, walletAddress string,
) (*entity.Participation, error) {
	var result entity.Participation
	err := xcontext.DB(ctx).
		Take(&result, "allowlist_id=? AND wallet_address=?", allowlistID, walletAddress).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participationRepository) Exists(
	ctx context.Context, allowlistID, walletAddress string,
) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Participation{}).
		Where("allowlist_id=? AND wallet_address=?", allowlistID, walletAddress).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *participationRepository) Count(ctx context.Context, allowlistID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Participation{}).
		Where("allowlist_id=?", allowlistID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *participationRepository) GetListByAllowlistID(
	ctx context.Context, allowlistID string,
) ([]entity.Participation, error) {
	var result []entity.Participation
	err := xcontext.DB(ctx).Where("allowlist_id=?", allowlistID).
		Order("created_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
