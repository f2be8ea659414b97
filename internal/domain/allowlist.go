package domain

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"time"

	"github.com/allowx-lab/backend/internal/domain/taskverify"
	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/model"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/crypto"
	"github.com/allowx-lab/backend/pkg/enum"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/pubsub"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const WinnersDrawnTopic = "winners_drawn"

type AllowlistDomain interface {
	Create(ctx context.Context, req *model.CreateAllowlistRequest) (*model.CreateAllowlistResponse, error)
	Get(ctx context.Context, req *model.GetAllowlistRequest) (*model.GetAllowlistResponse, error)
	GetList(ctx context.Context, req *model.GetListAllowlistRequest) (*model.GetListAllowlistResponse, error)
	Complete(ctx context.Context, req *model.CompleteAllowlistRequest) (*model.CompleteAllowlistResponse, error)
	Cancel(ctx context.Context, req *model.CancelAllowlistRequest) (*model.CancelAllowlistResponse, error)
}

type allowlistDomain struct {
	allowlistRepo     repository.AllowlistRepository
	participationRepo repository.ParticipationRepository
	winnerRepo        repository.WinnerRepository
	publisher         pubsub.Publisher
	verifierFactory   *taskverify.Factory

	nowFunc func() time.Time
}

func NewAllowlistDomain(
	allowlistRepo repository.AllowlistRepository,
	participationRepo repository.ParticipationRepository,
	winnerRepo repository.WinnerRepository,
	publisher pubsub.Publisher,
	verifierFactory *taskverify.Factory,
) *allowlistDomain {
	return &allowlistDomain{
		allowlistRepo:     allowlistRepo,
		participationRepo: participationRepo,
		winnerRepo:        winnerRepo,
		publisher:         publisher,
		verifierFactory:   verifierFactory,
		nowFunc:           time.Now,
	}
}

func (d *allowlistDomain) Create(
	ctx context.Context, req *model.CreateAllowlistRequest,
) (*model.CreateAllowlistResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if req.WinnerCount <= 0 && req.WinnerCount != entity.WinnerCountEveryone {
		return nil, errorx.New(errorx.BadRequest, "Invalid winner count %d", req.WinnerCount)
	}

	if req.ProfitGuaranteePercent < 0 || req.ProfitGuaranteePercent > 100 {
		return nil, errorx.New(errorx.BadRequest,
			"Invalid profit guarantee percent %d", req.ProfitGuaranteePercent)
	}

	if req.MaxEntries < 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid max entries %d", req.MaxEntries)
	}

	if req.EntryPriceAmount != "" {
		if _, ok := new(big.Int).SetString(req.EntryPriceAmount, 10); !ok {
			return nil, errorx.New(errorx.BadRequest,
				"Invalid entry price amount %s", req.EntryPriceAmount)
		}
	}

	endTime, err := time.Parse(model.DefaultTimeLayout, req.EndTime)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid end time %s", req.EndTime)
	}

	if !endTime.After(d.nowFunc()) {
		return nil, errorx.New(errorx.BadRequest, "End time must be in the future")
	}

	maxTasks := xcontext.Configs(ctx).Allowlist.MaxTasksPerAllowlist
	if maxTasks > 0 && len(req.Tasks) > maxTasks {
		return nil, errorx.New(errorx.BadRequest, "Too many tasks, the limit is %d", maxTasks)
	}

	tasks, err := d.parseTasks(ctx, req.Tasks)
	if err != nil {
		return nil, err
	}

	requirements, err := d.parseRequirements(req.Requirements)
	if err != nil {
		return nil, err
	}

	entryPriceAmount := req.EntryPriceAmount
	if entryPriceAmount == "" {
		entryPriceAmount = "0"
	}

	allowlist := &entity.Allowlist{
		Base:                   entity.Base{ID: uuid.NewString()},
		Title:                  req.Title,
		Description:            []byte(req.Description),
		Status:                 entity.AllowlistActive,
		CreatedBy:              xcontext.RequestUserID(ctx),
		EntryPriceToken:        req.EntryPriceToken,
		EntryPriceAmount:       entryPriceAmount,
		WinnerCount:            req.WinnerCount,
		ProfitGuaranteePercent: req.ProfitGuaranteePercent,
		MaxEntries:             req.MaxEntries,
		EndTime:                endTime,
		Tasks:                  tasks,
		Requirements:           requirements,
		AllowDuplicateWallet:   req.AllowDuplicateWallet,
	}

	if err := d.allowlistRepo.Create(ctx, allowlist); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create allowlist: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateAllowlistResponse{ID: allowlist.ID}, nil
}

func (d *allowlistDomain) parseTasks(
	ctx context.Context, reqTasks []model.SocialTask,
) ([]entity.SocialTask, error) {
	tasks := []entity.SocialTask{}
	for _, task := range reqTasks {
		taskType, err := enum.ToEnum[entity.SocialTaskType](task.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid task type %s", task.Type)
		}

		id := task.ID
		if id == "" {
			id = uuid.NewString()
		}

		parsed := entity.SocialTask{
			ID:       id,
			Type:     taskType,
			Required: task.Required,
			Points:   task.Points,
			Payload:  task.Payload,
		}

		parsed.Payload, err = d.verifierFactory.NormalizePayload(ctx, parsed)
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, parsed)
	}

	return tasks, nil
}

func (d *allowlistDomain) parseRequirements(
	reqRequirements []model.AccessRequirement,
) ([]entity.AccessRequirement, error) {
	requirements := []entity.AccessRequirement{}
	for _, requirement := range reqRequirements {
		requirementType, err := enum.ToEnum[entity.AccessRequirementType](requirement.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest,
				"Invalid requirement type %s", requirement.Type)
		}

		requirements = append(requirements, entity.AccessRequirement{
			Type:            requirementType,
			ContractAddress: requirement.ContractAddress,
			Chain:           requirement.Chain,
			MinAmount:       requirement.MinAmount,
			GuildID:         requirement.GuildID,
		})
	}

	return requirements, nil
}

func (d *allowlistDomain) Get(
	ctx context.Context, req *model.GetAllowlistRequest,
) (*model.GetAllowlistResponse, error) {
	allowlist, err := d.allowlistRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found allowlist")
		}

		xcontext.Logger(ctx).Errorf("Cannot get allowlist: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetAllowlistResponse(model.ConvertAllowlist(allowlist))
	return &resp, nil
}

func (d *allowlistDomain) GetList(
	ctx context.Context, req *model.GetListAllowlistRequest,
) (*model.GetListAllowlistResponse, error) {
	if req.Limit == 0 {
		req.Limit = 20
	}

	if req.Limit < 0 || req.Limit > 50 {
		return nil, errorx.New(errorx.BadRequest, "Invalid limit %d", req.Limit)
	}

	allowlists, err := d.allowlistRepo.GetActiveList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get allowlists: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListAllowlistResponse{Allowlists: []model.Allowlist{}}
	for i := range allowlists {
		resp.Allowlists = append(resp.Allowlists, model.ConvertAllowlist(&allowlists[i]))
	}

	return resp, nil
}

// Complete closes an active allowlist and draws its winners. Only the
// creator can complete it. The drawing picks uniformly without replacement,
// or takes every participant with the everyone sentinel.
func (d *allowlistDomain) Complete(
	ctx context.Context, req *model.CompleteAllowlistRequest,
) (*model.CompleteAllowlistResponse, error) {
	allowlist, err := d.allowlistRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found allowlist")
		}

		xcontext.Logger(ctx).Errorf("Cannot get allowlist: %v", err)
		return nil, errorx.Unknown
	}

	if allowlist.CreatedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the creator can complete an allowlist")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.allowlistRepo.UpdateStatus(ctx, allowlist.ID, entity.AllowlistCompleted); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Allowlist is not active")
		}

		xcontext.Logger(ctx).Errorf("Cannot update allowlist status: %v", err)
		return nil, errorx.Unknown
	}

	participations, err := d.participationRepo.GetListByAllowlistID(ctx, allowlist.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participations: %v", err)
		return nil, errorx.Unknown
	}

	selected := drawWinners(participations, allowlist.WinnerCount)
	claimExpiresAt := d.nowFunc().Add(xcontext.Configs(ctx).Allowlist.ClaimWindow)

	winners := []entity.Winner{}
	for i, participation := range selected {
		winner := entity.Winner{
			Base:            entity.Base{ID: uuid.NewString()},
			ParticipationID: participation.ID,
			AllowlistID:     allowlist.ID,
			UserID:          participation.UserID,
			Position:        i + 1,
			Status:          entity.WinnerPending,
			ClaimExpiresAt:  claimExpiresAt,
		}

		if err := d.winnerRepo.Create(ctx, &winner); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create winner: %v", err)
			return nil, errorx.Unknown
		}

		winners = append(winners, winner)
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.announceWinners(ctx, allowlist.ID, winners)

	resp := &model.CompleteAllowlistResponse{Winners: []model.Winner{}}
	for i := range winners {
		resp.Winners = append(resp.Winners, model.ConvertWinner(&winners[i]))
	}

	return resp, nil
}

func (d *allowlistDomain) announceWinners(
	ctx context.Context, allowlistID string, winners []entity.Winner,
) {
	if d.publisher == nil {
		return
	}

	winnerIDs := []string{}
	for _, winner := range winners {
		winnerIDs = append(winnerIDs, winner.ID)
	}

	msg, err := json.Marshal(map[string]any{
		"allowlist_id": allowlistID,
		"winner_ids":   winnerIDs,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal winners event: %v", err)
		return
	}

	pack := &pubsub.Pack{Key: []byte(allowlistID), Msg: msg}
	if err := d.publisher.Publish(ctx, WinnersDrawnTopic, pack); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish winners event: %v", err)
	}
}

func (d *allowlistDomain) Cancel(
	ctx context.Context, req *model.CancelAllowlistRequest,
) (*model.CancelAllowlistResponse, error) {
	allowlist, err := d.allowlistRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found allowlist")
		}

		xcontext.Logger(ctx).Errorf("Cannot get allowlist: %v", err)
		return nil, errorx.Unknown
	}

	if allowlist.CreatedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the creator can cancel an allowlist")
	}

	if err := d.allowlistRepo.UpdateStatus(ctx, allowlist.ID, entity.AllowlistCancelled); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Allowlist is not active")
		}

		xcontext.Logger(ctx).Errorf("Cannot update allowlist status: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CancelAllowlistResponse{}, nil
}

// drawWinners samples count participations with a partial Fisher-Yates
// shuffle. A count of WinnerCountEveryone selects all of them in entry
// order.
func drawWinners(participations []entity.Participation, count int) []entity.Participation {
	if count == entity.WinnerCountEveryone || count >= len(participations) {
		return participations
	}

	selected := make([]entity.Participation, len(participations))
	copy(selected, participations)
	for i := 0; i < count; i++ {
		j := i + crypto.RandIntn(len(selected)-i)
		selected[i], selected[j] = selected[j], selected[i]
	}

	return selected[:count]
}
