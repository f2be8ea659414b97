package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/allowx-lab/backend/config"
	"github.com/allowx-lab/backend/pkg/api"
)

const apiURL = "https://api.telegram.org"

type Endpoint struct {
	BotToken string

	apiGenerator api.Generator
}

func New(cfg config.TelegramConfigs) *Endpoint {
	return &Endpoint{
		BotToken:     cfg.BotToken,
		apiGenerator: api.NewGenerator(apiURL),
	}
}

func (e *Endpoint) GetMember(ctx context.Context, chatID, userID string) (User, error) {
	resp, err := e.apiGenerator.New("/bot%s/getChatMember", e.BotToken).
		Query(api.Parameter{
			"chat_id": chatID,
			"user_id": userID,
		}).
		GET(ctx)
	if err != nil {
		return User{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return User{}, errors.New("invalid body type")
	}

	if ok, err := body.GetBool("ok"); err != nil || !ok {
		return User{}, fmt.Errorf("invalid response")
	}

	status, err := body.GetString("result.status")
	if err != nil {
		return User{}, err
	}

	if status == "left" || status == "kicked" {
		return User{}, errors.New("user is not a member of chat")
	}

	id, err := body.GetInt("result.user.id")
	if err != nil {
		return User{}, err
	}

	return User{ID: strconv.Itoa(id), Status: status}, nil
}
