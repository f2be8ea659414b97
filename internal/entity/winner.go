package entity

import (
	"database/sql"
	"time"

	"github.com/allowx-lab/backend/pkg/enum"
)

type WinnerStatus string

var (
	WinnerPending = enum.New(WinnerStatus("pending"))
	WinnerClaimed = enum.New(WinnerStatus("claimed"))
	WinnerExpired = enum.New(WinnerStatus("expired"))
)

type Winner struct {
	Base

	ParticipationID string
	Participation   Participation `gorm:"foreignKey:ParticipationID"`

	AllowlistID string    `gorm:"uniqueIndex:idx_winners_allowlist_position"`
	Allowlist   Allowlist `gorm:"foreignKey:AllowlistID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	// Position is the 1-based rank of the winner within its allowlist.
	Position int `gorm:"uniqueIndex:idx_winners_allowlist_position"`

	Status         WinnerStatus
	ClaimExpiresAt time.Time
	ClaimedAt      sql.NullTime
}
