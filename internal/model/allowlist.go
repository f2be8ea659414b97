package model

type SocialTask struct {
	ID       string         `json:"id,omitempty"`
	Type     string         `json:"type,omitempty"`
	Required bool           `json:"required,omitempty"`
	Points   uint64         `json:"points,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
}

type AccessRequirement struct {
	Type            string `json:"type,omitempty"`
	ContractAddress string `json:"contract_address,omitempty"`
	Chain           string `json:"chain,omitempty"`
	MinAmount       string `json:"min_amount,omitempty"`
	GuildID         string `json:"guild_id,omitempty"`
}

type Allowlist struct {
	ID                     string              `json:"id,omitempty"`
	Title                  string              `json:"title,omitempty"`
	Description            string              `json:"description,omitempty"`
	Status                 string              `json:"status,omitempty"`
	CreatedBy              string              `json:"created_by,omitempty"`
	EntryPriceToken        string              `json:"entry_price_token,omitempty"`
	EntryPriceAmount       string              `json:"entry_price_amount,omitempty"`
	WinnerCount            int                 `json:"winner_count,omitempty"`
	ProfitGuaranteePercent int                 `json:"profit_guarantee_percent,omitempty"`
	MaxEntries             int                 `json:"max_entries,omitempty"`
	EntriesUsed            int                 `json:"entries_used,omitempty"`
	EndTime                string              `json:"end_time,omitempty"`
	Tasks                  []SocialTask        `json:"tasks,omitempty"`
	Requirements           []AccessRequirement `json:"requirements,omitempty"`
	AllowDuplicateWallet   bool                `json:"allow_duplicate_wallet,omitempty"`
	CreatedAt              string              `json:"created_at,omitempty"`
	UpdatedAt              string              `json:"updated_at,omitempty"`
}

type CreateAllowlistRequest struct {
	Title                  string              `json:"title"`
	Description            string              `json:"description"`
	EntryPriceToken        string              `json:"entry_price_token"`
	EntryPriceAmount       string              `json:"entry_price_amount"`
	WinnerCount            int                 `json:"winner_count"`
	ProfitGuaranteePercent int                 `json:"profit_guarantee_percent"`
	MaxEntries             int                 `json:"max_entries"`
	EndTime                string              `json:"end_time"`
	Tasks                  []SocialTask        `json:"tasks"`
	Requirements           []AccessRequirement `json:"requirements"`
	AllowDuplicateWallet   bool                `json:"allow_duplicate_wallet"`
}

type CreateAllowlistResponse struct {
	ID string `json:"id"`
}

type GetAllowlistRequest struct {
	ID string `json:"id" form:"id"`
}

type GetAllowlistResponse Allowlist

type GetListAllowlistRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetListAllowlistResponse struct {
	Allowlists []Allowlist `json:"allowlists"`
}

type CompleteAllowlistRequest struct {
	ID string `json:"id"`
}

type CompleteAllowlistResponse struct {
	Winners []Winner `json:"winners"`
}

type CancelAllowlistRequest struct {
	ID string `json:"id"`
}

type CancelAllowlistResponse struct{}
