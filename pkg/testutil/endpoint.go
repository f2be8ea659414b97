package testutil

import (
	"context"
	"errors"

	"github.com/allowx-lab/backend/pkg/api/discord"
	"github.com/allowx-lab/backend/pkg/api/telegram"
	"github.com/allowx-lab/backend/pkg/api/twitter"
)

type MockTwitterEndpoint struct {
	GetUserFunc        func(context.Context, string) (twitter.User, error)
	CheckFollowingFunc func(context.Context, string, string) (bool, error)
}

func (e *MockTwitterEndpoint) GetUser(ctx context.Context, handle string) (twitter.User, error) {
	if e.GetUserFunc != nil {
		return e.GetUserFunc(ctx, handle)
	}

	return twitter.User{}, errors.New("not implemented")
}

func (e *MockTwitterEndpoint) CheckFollowing(
	ctx context.Context, handle, targetHandle string,
) (bool, error) {
	if e.CheckFollowingFunc != nil {
		return e.CheckFollowingFunc(ctx, handle, targetHandle)
	}

	return false, errors.New("not implemented")
}

type MockDiscordEndpoint struct {
	GetGuildFunc    func(context.Context, string) (discord.Guild, error)
	CheckMemberFunc func(context.Context, string, string) (bool, error)
}

func (e *MockDiscordEndpoint) GetGuild(ctx context.Context, guildID string) (discord.Guild, error) {
	if e.GetGuildFunc != nil {
		return e.GetGuildFunc(ctx, guildID)
	}

	return discord.Guild{}, errors.New("not implemented")
}

func (e *MockDiscordEndpoint) CheckMember(
	ctx context.Context, guildID, userID string,
) (bool, error) {
	if e.CheckMemberFunc != nil {
		return e.CheckMemberFunc(ctx, guildID, userID)
	}

	return false, errors.New("not implemented")
}

type MockTelegramEndpoint struct {
	GetMemberFunc func(context.Context, string, string) (telegram.User, error)
}

func (e *MockTelegramEndpoint) GetMember(
	ctx context.Context, chatID, userID string,
) (telegram.User, error) {
	if e.GetMemberFunc != nil {
		return e.GetMemberFunc(ctx, chatID, userID)
	}

	return telegram.User{}, errors.New("not implemented")
}
