package model

import (
	"time"

	"github.com/allowx-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:            user.ID,
		Name:          user.Name,
		WalletAddress: user.WalletAddress,
		TwitterHandle: user.TwitterHandle,
		DiscordID:     user.DiscordID,
		TelegramID:    user.TelegramID,
	}
}

func ConvertSocialTasks(tasks []entity.SocialTask) []SocialTask {
	modelTasks := []SocialTask{}
	for _, t := range tasks {
		modelTasks = append(modelTasks, SocialTask{
			ID:       t.ID,
			Type:     string(t.Type),
			Required: t.Required,
			Points:   t.Points,
			Payload:  t.Payload,
		})
	}
	return modelTasks
}

func ConvertAccessRequirements(requirements []entity.AccessRequirement) []AccessRequirement {
	modelRequirements := []AccessRequirement{}
	for _, r := range requirements {
		modelRequirements = append(modelRequirements, AccessRequirement{
			Type:            string(r.Type),
			ContractAddress: r.ContractAddress,
			Chain:           r.Chain,
			MinAmount:       r.MinAmount,
			GuildID:         r.GuildID,
		})
	}
	return modelRequirements
}

func ConvertAllowlist(allowlist *entity.Allowlist) Allowlist {
	if allowlist == nil {
		return Allowlist{}
	}

	return Allowlist{
		ID:                     allowlist.ID,
		Title:                  allowlist.Title,
		Description:            string(allowlist.Description),
		Status:                 string(allowlist.Status),
		CreatedBy:              allowlist.CreatedBy,
		EntryPriceToken:        allowlist.EntryPriceToken,
		EntryPriceAmount:       allowlist.EntryPriceAmount,
		WinnerCount:            allowlist.WinnerCount,
		ProfitGuaranteePercent: allowlist.ProfitGuaranteePercent,
		MaxEntries:             allowlist.MaxEntries,
		EntriesUsed:            allowlist.EntriesUsed,
		EndTime:                allowlist.EndTime.Format(DefaultTimeLayout),
		Tasks:                  ConvertSocialTasks(allowlist.Tasks),
		Requirements:           ConvertAccessRequirements(allowlist.Requirements),
		AllowDuplicateWallet:   allowlist.AllowDuplicateWallet,
		CreatedAt:              allowlist.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:              allowlist.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertTaskCompletions(completions []entity.TaskCompletion) []TaskCompletion {
	modelCompletions := []TaskCompletion{}
	for _, c := range completions {
		modelCompletions = append(modelCompletions, TaskCompletion{
			TaskID:           c.TaskID,
			Completed:        c.Completed,
			CompletedAt:      c.CompletedAt.Format(DefaultTimeLayout),
			VerificationData: c.VerificationData,
			Points:           c.Points,
		})
	}
	return modelCompletions
}

func ConvertParticipation(participation *entity.Participation) Participation {
	if participation == nil {
		return Participation{}
	}

	return Participation{
		ID:               participation.ID,
		AllowlistID:      participation.AllowlistID,
		UserID:           participation.UserID,
		WalletAddress:    participation.WalletAddress,
		EntryPriceToken:  participation.EntryPriceToken,
		EntryPriceAmount: participation.EntryPriceAmount,
		Completions:      ConvertTaskCompletions(participation.Completions),
		CreatedAt:        participation.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertWinner(winner *entity.Winner) Winner {
	if winner == nil {
		return Winner{}
	}

	claimedAt := ""
	if winner.ClaimedAt.Valid {
		claimedAt = winner.ClaimedAt.Time.Format(DefaultTimeLayout)
	}

	return Winner{
		ID:              winner.ID,
		ParticipationID: winner.ParticipationID,
		AllowlistID:     winner.AllowlistID,
		UserID:          winner.UserID,
		Position:        winner.Position,
		Status:          string(winner.Status),
		ClaimExpiresAt:  winner.ClaimExpiresAt.Format(DefaultTimeLayout),
		ClaimedAt:       claimedAt,
	}
}
