package taskverify

import (
	"context"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/xcontext"
)

type twitterFollowVerifier struct {
	TargetHandle string `mapstructure:"target_handle" structs:"target_handle"`

	factory *Factory `mapstructure:"-" structs:"-"`
}

func (v *twitterFollowVerifier) Verify(
	ctx context.Context, proof map[string]any,
) (*Result, error) {
	user, err := v.factory.getRequestUser(ctx)
	if err != nil {
		return nil, err
	}

	if user.TwitterHandle == "" {
		return nil, errorx.New(errorx.Unavailable, "No twitter account linked")
	}

	following, err := v.factory.twitterEndpoint.CheckFollowing(
		ctx, user.TwitterHandle, v.TargetHandle)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check twitter following: %v", err)
		return &Result{Action: NeedManualReview, VerificationData: entity.Map(proof)}, nil
	}

	if !following {
		return &Result{Action: Rejected}, nil
	}

	return &Result{
		Action: Accepted,
		VerificationData: entity.Map{
			"handle":        user.TwitterHandle,
			"target_handle": v.TargetHandle,
		},
	}, nil
}

type discordJoinVerifier struct {
	GuildID string `mapstructure:"guild_id" structs:"guild_id"`

	factory *Factory `mapstructure:"-" structs:"-"`
}

func (v *discordJoinVerifier) Verify(ctx context.Context, proof map[string]any) (*Result, error) {
	user, err := v.factory.getRequestUser(ctx)
	if err != nil {
		return nil, err
	}

	if user.DiscordID == "" {
		return nil, errorx.New(errorx.Unavailable, "No discord account linked")
	}

	isMember, err := v.factory.discordEndpoint.CheckMember(ctx, v.GuildID, user.DiscordID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check discord member: %v", err)
		return &Result{Action: NeedManualReview, VerificationData: entity.Map(proof)}, nil
	}

	if !isMember {
		return &Result{Action: Rejected}, nil
	}

	return &Result{
		Action:           Accepted,
		VerificationData: entity.Map{"guild_id": v.GuildID, "discord_id": user.DiscordID},
	}, nil
}

type telegramJoinVerifier struct {
	ChatID string `mapstructure:"chat_id" structs:"chat_id"`

	factory *Factory `mapstructure:"-" structs:"-"`
}

func (v *telegramJoinVerifier) Verify(ctx context.Context, proof map[string]any) (*Result, error) {
	user, err := v.factory.getRequestUser(ctx)
	if err != nil {
		return nil, err
	}

	if user.TelegramID == "" {
		return nil, errorx.New(errorx.Unavailable, "No telegram account linked")
	}

	member, err := v.factory.telegramEndpoint.GetMember(ctx, v.ChatID, user.TelegramID)
	if err != nil {
		return &Result{Action: Rejected}, nil
	}

	return &Result{
		Action:           Accepted,
		VerificationData: entity.Map{"chat_id": v.ChatID, "status": member.Status},
	}, nil
}

// customVerifier accepts any non-empty proof and stores it for later review.
type customVerifier struct{}

func (v *customVerifier) Verify(ctx context.Context, proof map[string]any) (*Result, error) {
	if len(proof) == 0 {
		return &Result{Action: Rejected}, nil
	}

	return &Result{Action: Accepted, VerificationData: entity.Map(proof)}, nil
}
