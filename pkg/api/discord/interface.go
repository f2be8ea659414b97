package discord

import "context"

type IEndpoint interface {
	GetGuild(ctx context.Context, guildID string) (Guild, error)
	CheckMember(ctx context.Context, guildID, userID string) (bool, error)
}
