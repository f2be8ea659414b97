package entity

import (
	"time"

	"github.com/allowx-lab/backend/pkg/enum"
)

type AllowlistStatus string

var (
	AllowlistActive    = enum.New(AllowlistStatus("active"))
	AllowlistCompleted = enum.New(AllowlistStatus("completed"))
	AllowlistCancelled = enum.New(AllowlistStatus("cancelled"))
)

type SocialTaskType string

var (
	TaskTwitterFollow = enum.New(SocialTaskType("twitter_follow"))
	TaskDiscordJoin   = enum.New(SocialTaskType("discord_join"))
	TaskTelegramJoin  = enum.New(SocialTaskType("telegram_join"))
	TaskCustom        = enum.New(SocialTaskType("custom"))
)

type AccessRequirementType string

var (
	RequirementNFTOwnership    = enum.New(AccessRequirementType("nft_ownership"))
	RequirementTokenBalance    = enum.New(AccessRequirementType("token_balance"))
	RequirementCommunityMember = enum.New(AccessRequirementType("community_member"))
)

// WinnerCountEveryone marks an allowlist where every participant wins.
const WinnerCountEveryone = -1

type SocialTask struct {
	ID       string         `json:"id"`
	Type     SocialTaskType `json:"type"`
	Required bool           `json:"required"`
	Points   uint64         `json:"points"`
	Payload  Map            `json:"payload"`
}

type AccessRequirement struct {
	Type AccessRequirementType `json:"type"`

	// ContractAddress applies to nft_ownership and token_balance. An empty
	// address with token_balance means the chain's native token.
	ContractAddress string `json:"contract_address,omitempty"`
	Chain           string `json:"chain,omitempty"`
	MinAmount       string `json:"min_amount,omitempty"`

	// GuildID applies to community_member.
	GuildID string `json:"guild_id,omitempty"`
}

type Allowlist struct {
	Base

	Title       string
	Description []byte `gorm:"type:longtext"`
	Status      AllowlistStatus
	CreatedBy   string

	// EntryPriceAmount is a decimal string in base units of the token, "0"
	// means a free entry.
	EntryPriceToken  string
	EntryPriceAmount string

	// WinnerCount is a positive number or WinnerCountEveryone.
	WinnerCount            int
	ProfitGuaranteePercent int

	// MaxEntries caps the number of participations, zero means unlimited.
	// EntriesUsed is the authoritative counter, only modified through
	// conditional updates.
	MaxEntries  int
	EntriesUsed int

	EndTime time.Time

	Tasks                Array[SocialTask]
	Requirements         Array[AccessRequirement]
	AllowDuplicateWallet bool
}
