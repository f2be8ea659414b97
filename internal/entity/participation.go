package entity

import "time"

type TaskCompletion struct {
	TaskID           string    `json:"task_id"`
	Completed        bool      `json:"completed"`
	CompletedAt      time.Time `json:"completed_at"`
	VerificationData Map       `json:"verification_data"`
	Points           uint64    `json:"points"`
}

type Participation struct {
	Base

	AllowlistID string    `gorm:"uniqueIndex:idx_participations_entry"`
	Allowlist   Allowlist `gorm:"foreignKey:AllowlistID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	WalletAddress string `gorm:"uniqueIndex:idx_participations_entry"`

	// EntryKey completes the wallet uniqueness index. It stays empty on
	// lists that deduplicate wallets, so a second entry collides, and holds
	// the row id on lists that allow duplicate wallets.
	EntryKey string `gorm:"uniqueIndex:idx_participations_entry"`

	// The entry price actually charged, snapshotted at submission so later
	// price changes cannot rewrite history.
	EntryPriceToken  string
	EntryPriceAmount string

	Completions Array[TaskCompletion]
}
