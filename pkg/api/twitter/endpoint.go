package twitter

import (
	"context"
	"errors"
	"fmt"

	"github.com/allowx-lab/backend/config"
	"github.com/allowx-lab/backend/pkg/api"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

// Endpoint calls a twitter scraping proxy instead of the official API. The
// proxy exposes simplified routes and can be deployed multiple times, the
// generator falls back between instances.
type Endpoint struct {
	apiGenerator api.Generator
}

func New(cfg config.TwitterConfigs) *Endpoint {
	return &Endpoint{
		apiGenerator: api.NewGenerator(cfg.APIEndpoints...),
	}
}

func (e *Endpoint) GetUser(ctx context.Context, handle string) (User, error) {
	resp, err := e.apiGenerator.New("/get_user").
		Query(api.Parameter{"handle": handle}).
		GET(ctx)
	if err != nil {
		return User{}, err
	}

	if resp.Code != 200 {
		xcontext.Logger(ctx).Errorf("Invalid status code: %v", resp.Body)
		return User{}, fmt.Errorf("invalid status code %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return User{}, errors.New("invalid body format")
	}

	user := User{}
	if err := mapstructure.Decode(map[string]any(body), &user); err != nil {
		return User{}, err
	}

	if user.Handle == "" {
		return User{}, errors.New("cannot get user info")
	}

	return user, nil
}

func (e *Endpoint) CheckFollowing(ctx context.Context, handle, targetHandle string) (bool, error) {
	resp, err := e.apiGenerator.New("/check_following").
		Query(api.Parameter{
			"handle":        handle,
			"target_handle": targetHandle,
		}).
		GET(ctx)
	if err != nil {
		return false, err
	}

	if resp.Code != 200 {
		xcontext.Logger(ctx).Errorf("Invalid status code: %v", resp.Body)
		return false, fmt.Errorf("invalid status code %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return false, errors.New("invalid body format")
	}

	return body.GetBool("following")
}
