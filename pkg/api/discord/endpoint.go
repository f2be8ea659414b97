package discord

import (
	"context"
	"errors"

	"github.com/allowx-lab/backend/config"
	"github.com/allowx-lab/backend/pkg/api"
	"github.com/mitchellh/mapstructure"
)

const (
	apiURL    = "https://discord.com/api/v10"
	userAgent = "DiscordBot (https://allowx.xyz, 1.0.0)"
)

type Endpoint struct {
	BotToken string

	apiGenerator api.Generator
}

func New(cfg config.DiscordConfigs) *Endpoint {
	return &Endpoint{
		BotToken:     cfg.BotToken,
		apiGenerator: api.NewGenerator(apiURL),
	}
}

func (e *Endpoint) GetGuild(ctx context.Context, guildID string) (Guild, error) {
	resp, err := e.apiGenerator.New("/guilds/%s", guildID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return Guild{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Guild{}, errors.New("invalid response")
	}

	// An error response always carries a code field.
	if _, err := body.GetInt("code"); err == nil {
		return Guild{}, errors.New("not found guild")
	}

	guild := Guild{}
	if err := mapstructure.Decode(map[string]any(body), &guild); err != nil {
		return Guild{}, err
	}

	return guild, nil
}

func (e *Endpoint) CheckMember(ctx context.Context, guildID, userID string) (bool, error) {
	resp, err := e.apiGenerator.New("/guilds/%s/members/%s", guildID, userID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return false, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return false, errors.New("invalid response")
	}

	// If response has the field of code, an error is returned.
	if _, err := body.GetInt("code"); err == nil {
		return false, nil
	}

	return true, nil
}
