package taskverify

import (
	"context"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/api/discord"
	"github.com/allowx-lab/backend/pkg/api/telegram"
	"github.com/allowx-lab/backend/pkg/api/twitter"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"
)

type Factory struct {
	userRepo repository.UserRepository

	twitterEndpoint  twitter.IEndpoint
	discordEndpoint  discord.IEndpoint
	telegramEndpoint telegram.IEndpoint
}

func NewFactory(
	userRepo repository.UserRepository,
	twitterEndpoint twitter.IEndpoint,
	discordEndpoint discord.IEndpoint,
	telegramEndpoint telegram.IEndpoint,
) *Factory {
	return &Factory{
		userRepo:         userRepo,
		twitterEndpoint:  twitterEndpoint,
		discordEndpoint:  discordEndpoint,
		telegramEndpoint: telegramEndpoint,
	}
}

// NewVerifier builds the verifier matching the task type and decodes the
// task payload into it.
func (f *Factory) NewVerifier(ctx context.Context, task entity.SocialTask) (Verifier, error) {
	var verifier Verifier
	switch task.Type {
	case entity.TaskTwitterFollow:
		verifier = &twitterFollowVerifier{factory: f}
	case entity.TaskDiscordJoin:
		verifier = &discordJoinVerifier{factory: f}
	case entity.TaskTelegramJoin:
		verifier = &telegramJoinVerifier{factory: f}
	case entity.TaskCustom:
		verifier = &customVerifier{}
	default:
		return nil, errorx.New(errorx.BadRequest, "Unsupported task type %s", task.Type)
	}

	if err := mapstructure.Decode(map[string]any(task.Payload), verifier); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode task payload: %v", err)
		return nil, errorx.Unknown
	}

	return verifier, nil
}

// NormalizePayload decodes a task payload through its verifier and renders
// it back as the canonical map, dropping unknown fields. Custom tasks keep
// their free-form payload.
func (f *Factory) NormalizePayload(
	ctx context.Context, task entity.SocialTask,
) (entity.Map, error) {
	verifier, err := f.NewVerifier(ctx, task)
	if err != nil {
		return nil, err
	}

	if _, ok := verifier.(*customVerifier); ok {
		return task.Payload, nil
	}

	return entity.Map(structs.Map(verifier)), nil
}

func (f *Factory) getRequestUser(ctx context.Context) (*entity.User, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not logged in")
	}

	user, err := f.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}
