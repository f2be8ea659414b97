package entryflow

import (
	"context"
	"sync"
	"time"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/xcontext"
)

type State string

const (
	StateRequirements         State = "requirements_check"
	StateTasks                State = "task_verification"
	StateEntry                State = "entry_submission"
	StateConfirmation         State = "confirmation"
	StateAlreadyParticipating State = "already_participating"
	StateCancelled            State = "cancelled"
)

type Event string

const (
	EventNext             Event = "next"
	EventBackRequirements Event = "back_requirements"
	EventBackTasks        Event = "back_tasks"
	EventCancel           Event = "cancel"
)

func (s State) terminal() bool {
	return s == StateConfirmation || s == StateAlreadyParticipating || s == StateCancelled
}

// Controller runs the intake flow of one (allowlist, user) pair. The mutex
// allows at most one outstanding transition, a second caller waits until
// the first resolves.
type Controller struct {
	mutex sync.Mutex

	allowlist     *entity.Allowlist
	userID        string
	walletAddress string

	state   State
	consent bool

	tracker       *TaskTracker
	access        *AccessVerifier
	entry         *EntryValidator
	participation *entity.Participation

	nowFunc func() time.Time
}

// NewController starts the flow at the requirements state, or directly at
// already_participating when a participation for this wallet exists. The
// existence check is a pure read.
func NewController(
	ctx context.Context,
	access *AccessVerifier,
	entry *EntryValidator,
	participationRepo repository.ParticipationRepository,
	allowlist *entity.Allowlist,
	userID, walletAddress string,
) (*Controller, error) {
	c := &Controller{
		allowlist:     allowlist,
		userID:        userID,
		walletAddress: walletAddress,
		state:         StateRequirements,
		tracker:       NewTaskTracker(),
		access:        access,
		entry:         entry,
		nowFunc:       time.Now,
	}

	if allowlist.Status != entity.AllowlistActive {
		return nil, errorx.New(errorx.Unavailable, "Allowlist is not active")
	}

	if !c.nowFunc().Before(allowlist.EndTime) {
		return nil, errorx.New(errorx.Unavailable, "Allowlist has ended")
	}

	if !allowlist.AllowDuplicateWallet {
		exists, err := participationRepo.Exists(ctx, allowlist.ID, walletAddress)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check existing participation: %v", err)
			return nil, errorx.Unknown
		}

		if exists {
			c.state = StateAlreadyParticipating
		}
	}

	return c, nil
}

func (c *Controller) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.state
}

func (c *Controller) Allowlist() *entity.Allowlist {
	return c.allowlist
}

// Participation returns the submitted record, nil before confirmation.
func (c *Controller) Participation() *entity.Participation {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.participation
}

func (c *Controller) SetConsent(consent bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.consent = consent
}

// RecordCompletion stores a task completion. Only the task state accepts
// recordings, but earlier completions survive backward navigation and are
// still there when the flow returns.
func (c *Controller) RecordCompletion(
	taskID string, completed bool, verificationData entity.Map, points uint64,
) (entity.TaskCompletion, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.state != StateTasks {
		return entity.TaskCompletion{}, errorx.New(
			errorx.BadRequest, "Cannot record a task in state %s", c.state)
	}

	return c.tracker.RecordCompletion(taskID, completed, verificationData, points), nil
}

func (c *Controller) Completions() []entity.TaskCompletion {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.tracker.Completions()
}

// CanTransition evaluates only local guards, it never issues an external
// call. A true result means the transition may still fail authoritatively
// inside Transition.
func (c *Controller) CanTransition(event Event) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.state.terminal() {
		return false
	}

	switch event {
	case EventCancel:
		return true
	case EventBackRequirements:
		return c.state == StateTasks || c.state == StateEntry
	case EventBackTasks:
		return c.state == StateEntry
	case EventNext:
		switch c.state {
		case StateRequirements:
			return c.walletAddress != ""
		case StateTasks:
			return c.tracker.AllRequiredComplete(c.allowlist.Tasks)
		case StateEntry:
			return c.consent
		}
	}

	return false
}

// Transition applies the event with its authoritative guard. A failed guard
// leaves the state untouched and returns the guard error.
func (c *Controller) Transition(ctx context.Context, event Event) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.state.terminal() {
		return errorx.New(errorx.BadRequest, "Flow already finished in state %s", c.state)
	}

	switch event {
	case EventCancel:
		c.state = StateCancelled
		return nil

	case EventBackRequirements:
		if c.state != StateTasks && c.state != StateEntry {
			return errorx.New(errorx.BadRequest, "Cannot go back from state %s", c.state)
		}
		c.state = StateRequirements
		return nil

	case EventBackTasks:
		if c.state != StateEntry {
			return errorx.New(errorx.BadRequest, "Cannot go back from state %s", c.state)
		}
		c.state = StateTasks
		return nil

	case EventNext:
		return c.next(ctx)
	}

	return errorx.New(errorx.BadRequest, "Unknown event %s", event)
}

func (c *Controller) next(ctx context.Context) error {
	switch c.state {
	case StateRequirements:
		if c.walletAddress == "" {
			return errorx.New(errorx.BadRequest, "A wallet address is required")
		}

		if !c.access.Verify(ctx, c.allowlist, c.walletAddress) {
			return errorx.New(errorx.AccessDenied, "Wallet does not meet the access requirements")
		}

		c.state = StateTasks
		return nil

	case StateTasks:
		if !c.tracker.AllRequiredComplete(c.allowlist.Tasks) {
			return errorx.New(errorx.BadRequest, "Not all required tasks are complete")
		}

		c.state = StateEntry
		return nil

	case StateEntry:
		if !c.consent {
			return errorx.New(errorx.BadRequest, "Consent is required before submitting")
		}

		if !c.nowFunc().Before(c.allowlist.EndTime) {
			return errorx.New(errorx.Unavailable, "Allowlist has ended")
		}

		participation, err := c.entry.Submit(
			ctx, c.allowlist, c.userID, c.walletAddress, c.tracker.Completions())
		if err != nil {
			return err
		}

		c.participation = participation
		c.state = StateConfirmation
		return nil
	}

	return errorx.New(errorx.BadRequest, "Cannot advance from state %s", c.state)
}
