package telegram

import "context"

type IEndpoint interface {
	GetMember(ctx context.Context, chatID, userID string) (User, error)
}
