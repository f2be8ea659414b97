package twitter

import "context"

type IEndpoint interface {
	GetUser(ctx context.Context, handle string) (User, error)
	CheckFollowing(ctx context.Context, handle, targetHandle string) (bool, error)
}
