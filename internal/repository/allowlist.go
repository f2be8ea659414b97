package repository

import (
	"context"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AllowlistRepository interface {
	Create(ctx context.Context, allowlist *entity.Allowlist) error
	GetByID(ctx context.Context, id string) (*entity.Allowlist, error)
	GetActiveList(ctx context.Context, offset, limit int) ([]entity.Allowlist, error)

	// UpdateStatus only moves an active allowlist to the given status, any
	// other source status makes it return gorm.ErrRecordNotFound.
	UpdateStatus(ctx context.Context, id string, status entity.AllowlistStatus) error

	// CheckAndUseEntrySlot reserves one entry slot of the allowlist. It
	// returns gorm.ErrRecordNotFound when the capacity is exhausted.
	CheckAndUseEntrySlot(ctx context.Context, id string) error
}

type allowlistRepository struct{}

func NewAllowlistRepository() *allowlistRepository {
	return &allowlistRepository{}
}

func (r *allowlistRepository) Create(ctx context.Context, allowlist *entity.Allowlist) error {
	return xcontext.DB(ctx).Create(allowlist).Error
}

func (r *allowlistRepository) GetByID(ctx context.Context, id string) (*entity.Allowlist, error) {
	var result entity.Allowlist
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *allowlistRepository) GetActiveList(
	ctx context.Context, offset, limit int,
) ([]entity.Allowlist, error) {
	var result []entity.Allowlist
	err := xcontext.DB(ctx).Where("status=?", entity.AllowlistActive).
		Order("end_time ASC").Offset(offset).Limit(limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *allowlistRepository) UpdateStatus(
	ctx context.Context, id string, status entity.AllowlistStatus,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Allowlist{}).
		Where("id=? AND status=?", id, entity.AllowlistActive).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *allowlistRepository) CheckAndUseEntrySlot(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Model(&entity.Allowlist{}).
		Where("id=? AND (max_entries=0 OR entries_used < max_entries)", id).
		Update("entries_used", gorm.Expr("entries_used+?", 1))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
