package domain

import (
	"context"
	"errors"

	"github.com/allowx-lab/backend/internal/domain/entryflow"
	"github.com/allowx-lab/backend/internal/model"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/allowx-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

type StatisticDomain interface {
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type statisticDomain struct {
	allowlistRepo repository.AllowlistRepository
	redisClient   xredis.Client
}

func NewStatisticDomain(
	allowlistRepo repository.AllowlistRepository,
	redisClient xredis.Client,
) *statisticDomain {
	return &statisticDomain{
		allowlistRepo: allowlistRepo,
		redisClient:   redisClient,
	}
}

// GetLeaderboard reads the task points leaderboard of an allowlist from the
// redis sorted set. The rank of the requesting user is included when they
// scored any points.
func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if req.Limit == 0 {
		req.Limit = 20
	}

	if req.Limit < 0 || req.Limit > 50 {
		return nil, errorx.New(errorx.BadRequest, "Invalid limit %d", req.Limit)
	}

	if _, err := d.allowlistRepo.GetByID(ctx, req.AllowlistID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found allowlist")
		}

		xcontext.Logger(ctx).Errorf("Cannot get allowlist: %v", err)
		return nil, errorx.Unknown
	}

	key := entryflow.LeaderboardKey(req.AllowlistID)
	records, err := d.redisClient.ZRevRangeWithScores(ctx, key, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard records: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetLeaderboardResponse{Entries: []model.LeaderboardEntry{}}
	for i, record := range records {
		userID, ok := record.Member.(string)
		if !ok {
			xcontext.Logger(ctx).Errorf("Invalid leaderboard member %v", record.Member)
			return nil, errorx.Unknown
		}

		resp.Entries = append(resp.Entries, model.LeaderboardEntry{
			UserID: userID,
			Points: uint64(record.Score),
			Rank:   req.Offset + i + 1,
		})
	}

	if userID := xcontext.RequestUserID(ctx); userID != "" {
		rank, err := d.redisClient.ZRevRank(ctx, key, userID)
		if err == nil {
			resp.MyRank = int(rank) + 1
		}
	}

	return resp, nil
}
