package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/allowx-lab/backend/internal/model"
	"github.com/allowx-lab/backend/pkg/authenticator"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/xcontext"
)

// WithAuth resolves the bearer token into a request user id. Requests
// without a token pass through as anonymous.
func WithAuth(tokenEngine authenticator.TokenEngine[model.AccessToken]) func(
	ctx context.Context, r *http.Request,
) (context.Context, error) {
	return func(ctx context.Context, r *http.Request) (context.Context, error) {
		authorization := r.Header.Get("Authorization")
		if authorization == "" {
			return ctx, nil
		}

		token, found := strings.CutPrefix(authorization, "Bearer ")
		if !found {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid authorization header")
		}

		accessToken, err := tokenEngine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

// MustAuth rejects anonymous requests.
func MustAuth(ctx context.Context, r *http.Request) (context.Context, error) {
	if xcontext.RequestUserID(ctx) == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	return ctx, nil
}
