package domain

import (
	"context"
	"errors"

	"github.com/allowx-lab/backend/internal/domain/entryflow"
	"github.com/allowx-lab/backend/internal/domain/taskverify"
	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/model"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

type ParticipationDomain interface {
	Start(ctx context.Context, req *model.StartParticipationRequest) (*model.StartParticipationResponse, error)
	GetState(ctx context.Context, req *model.GetParticipationStateRequest) (*model.GetParticipationStateResponse, error)
	CompleteTask(ctx context.Context, req *model.CompleteTaskRequest) (*model.CompleteTaskResponse, error)
	Advance(ctx context.Context, req *model.AdvanceParticipationRequest) (*model.AdvanceParticipationResponse, error)
	Back(ctx context.Context, req *model.BackParticipationRequest) (*model.BackParticipationResponse, error)
	Submit(ctx context.Context, req *model.SubmitEntryRequest) (*model.SubmitEntryResponse, error)
	Cancel(ctx context.Context, req *model.CancelParticipationRequest) (*model.CancelParticipationResponse, error)
}

type participationDomain struct {
	allowlistRepo     repository.AllowlistRepository
	participationRepo repository.ParticipationRepository
	userRepo          repository.UserRepository

	accessVerifier  *entryflow.AccessVerifier
	entryValidator  *entryflow.EntryValidator
	verifierFactory *taskverify.Factory

	// controllers holds one live intake flow per (allowlist, user) pair.
	controllers *xsync.MapOf[string, *entryflow.Controller]
}

func NewParticipationDomain(
	allowlistRepo repository.AllowlistRepository,
	participationRepo repository.ParticipationRepository,
	userRepo repository.UserRepository,
	accessVerifier *entryflow.AccessVerifier,
	entryValidator *entryflow.EntryValidator,
	verifierFactory *taskverify.Factory,
) *participationDomain {
	return &participationDomain{
		allowlistRepo:     allowlistRepo,
		participationRepo: participationRepo,
		userRepo:          userRepo,
		accessVerifier:    accessVerifier,
		entryValidator:    entryValidator,
		verifierFactory:   verifierFactory,
		controllers:       xsync.NewMapOf[*entryflow.Controller](),
	}
}

func flowKey(allowlistID, userID string) string {
	return allowlistID + "|" + userID
}

// Start opens a fresh intake flow. Restarting discards the previous flow of
// the same pair, so access requirements are verified again.
func (d *participationDomain) Start(
	ctx context.Context, req *model.StartParticipationRequest,
) (*model.StartParticipationResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	allowlist, err := d.allowlistRepo.GetByID(ctx, req.AllowlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found allowlist")
		}

		xcontext.Logger(ctx).Errorf("Cannot get allowlist: %v", err)
		return nil, errorx.Unknown
	}

	controller, err := entryflow.NewController(
		ctx, d.accessVerifier, d.entryValidator, d.participationRepo,
		allowlist, userID, user.WalletAddress)
	if err != nil {
		return nil, err
	}

	d.controllers.Store(flowKey(allowlist.ID, userID), controller)

	return &model.StartParticipationResponse{State: string(controller.State())}, nil
}

func (d *participationDomain) controllerOf(
	ctx context.Context, allowlistID string,
) (*entryflow.Controller, error) {
	controller, ok := d.controllers.Load(flowKey(allowlistID, xcontext.RequestUserID(ctx)))
	if !ok {
		return nil, errorx.New(errorx.NotFound, "No participation flow in progress")
	}

	return controller, nil
}

func (d *participationDomain) GetState(
	ctx context.Context, req *model.GetParticipationStateRequest,
) (*model.GetParticipationStateResponse, error) {
	controller, err := d.controllerOf(ctx, req.AllowlistID)
	if err != nil {
		return nil, err
	}

	return &model.GetParticipationStateResponse{
		State:       string(controller.State()),
		Completions: model.ConvertTaskCompletions(controller.Completions()),
	}, nil
}

// CompleteTask verifies one social task against its external service and
// records the outcome in the flow. Verifying the same task again overwrites
// the earlier record.
func (d *participationDomain) CompleteTask(
	ctx context.Context, req *model.CompleteTaskRequest,
) (*model.CompleteTaskResponse, error) {
	controller, err := d.controllerOf(ctx, req.AllowlistID)
	if err != nil {
		return nil, err
	}

	task, ok := findTask(controller.Allowlist().Tasks, req.TaskID)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found task %s", req.TaskID)
	}

	verifier, err := d.verifierFactory.NewVerifier(ctx, task)
	if err != nil {
		return nil, err
	}

	result, err := verifier.Verify(ctx, req.Proof)
	if err != nil {
		return nil, err
	}

	// A manual-review outcome still counts for flow progression, the stored
	// verification data keeps it reviewable.
	completed := result.Action != taskverify.Rejected
	points := uint64(0)
	if completed {
		points = task.Points
	}

	if _, err := controller.RecordCompletion(
		task.ID, completed, result.VerificationData, points); err != nil {
		return nil, err
	}

	return &model.CompleteTaskResponse{Completed: completed, Points: points}, nil
}

func (d *participationDomain) Advance(
	ctx context.Context, req *model.AdvanceParticipationRequest,
) (*model.AdvanceParticipationResponse, error) {
	controller, err := d.controllerOf(ctx, req.AllowlistID)
	if err != nil {
		return nil, err
	}

	if err := controller.Transition(ctx, entryflow.EventNext); err != nil {
		return nil, err
	}

	return &model.AdvanceParticipationResponse{State: string(controller.State())}, nil
}

func (d *participationDomain) Back(
	ctx context.Context, req *model.BackParticipationRequest,
) (*model.BackParticipationResponse, error) {
	controller, err := d.controllerOf(ctx, req.AllowlistID)
	if err != nil {
		return nil, err
	}

	var event entryflow.Event
	switch entryflow.State(req.To) {
	case entryflow.StateRequirements:
		event = entryflow.EventBackRequirements
	case entryflow.StateTasks:
		event = entryflow.EventBackTasks
	default:
		return nil, errorx.New(errorx.BadRequest, "Cannot go back to %s", req.To)
	}

	if err := controller.Transition(ctx, event); err != nil {
		return nil, err
	}

	return &model.BackParticipationResponse{State: string(controller.State())}, nil
}

func (d *participationDomain) Submit(
	ctx context.Context, req *model.SubmitEntryRequest,
) (*model.SubmitEntryResponse, error) {
	controller, err := d.controllerOf(ctx, req.AllowlistID)
	if err != nil {
		return nil, err
	}

	controller.SetConsent(req.Consent)
	if err := controller.Transition(ctx, entryflow.EventNext); err != nil {
		return nil, err
	}

	participation := controller.Participation()
	if participation == nil {
		xcontext.Logger(ctx).Errorf("No participation after a confirmed flow")
		return nil, errorx.Unknown
	}

	return &model.SubmitEntryResponse{
		ParticipationID: participation.ID,
		State:           string(controller.State()),
	}, nil
}

func (d *participationDomain) Cancel(
	ctx context.Context, req *model.CancelParticipationRequest,
) (*model.CancelParticipationResponse, error) {
	controller, err := d.controllerOf(ctx, req.AllowlistID)
	if err != nil {
		return nil, err
	}

	if err := controller.Transition(ctx, entryflow.EventCancel); err != nil {
		return nil, err
	}

	d.controllers.Delete(flowKey(req.AllowlistID, xcontext.RequestUserID(ctx)))

	return &model.CancelParticipationResponse{State: string(entryflow.StateCancelled)}, nil
}

func findTask(tasks []entity.SocialTask, taskID string) (entity.SocialTask, bool) {
	for _, task := range tasks {
		if task.ID == taskID {
			return task, true
		}
	}

	return entity.SocialTask{}, false
}
