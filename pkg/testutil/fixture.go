package testutil

import (
	"context"
	"time"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base:          entity.Base{ID: "user1"},
		Name:          "user1",
		WalletAddress: "0x1111111111111111111111111111111111111111",
		TwitterHandle: "user1_twitter",
		DiscordID:     "user1_discord",
		TelegramID:    "user1_telegram",
	}

	User2 = entity.User{
		Base:          entity.Base{ID: "user2"},
		Name:          "user2",
		WalletAddress: "0x2222222222222222222222222222222222222222",
	}

	// Allowlist1 is free with no requirement and no task.
	Allowlist1 = entity.Allowlist{
		Base:             entity.Base{ID: "allowlist1"},
		Title:            "Free allowlist",
		Status:           entity.AllowlistActive,
		CreatedBy:        User1.ID,
		EntryPriceToken:  "eth",
		EntryPriceAmount: "0",
		WinnerCount:      1,
		EndTime:          time.Now().AddDate(0, 0, 7),
	}

	// Allowlist2 has one required twitter task and a paid entry.
	Allowlist2 = entity.Allowlist{
		Base:             entity.Base{ID: "allowlist2"},
		Title:            "Paid allowlist",
		Status:           entity.AllowlistActive,
		CreatedBy:        User1.ID,
		EntryPriceToken:  "eth:0x3333333333333333333333333333333333333333",
		EntryPriceAmount: "100",
		WinnerCount:      entity.WinnerCountEveryone,
		MaxEntries:       2,
		EndTime:          time.Now().AddDate(0, 0, 7),
		Tasks: []entity.SocialTask{
			{
				ID:       "task1",
				Type:     entity.TaskTwitterFollow,
				Required: true,
				Points:   10,
				Payload:  entity.Map{"target_handle": "allowx"},
			},
			{
				ID:      "task2",
				Type:    entity.TaskCustom,
				Points:  5,
				Payload: entity.Map{},
			},
		},
	}
)

// CreateFixtureDb seeds the database of ctx with the fixture users and
// allowlists above.
func CreateFixtureDb(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}

	allowlistRepo := repository.NewAllowlistRepository()
	for _, allowlist := range []entity.Allowlist{Allowlist1, Allowlist2} {
		allowlist := allowlist
		if err := allowlistRepo.Create(ctx, &allowlist); err != nil {
			panic(err)
		}
	}
}
