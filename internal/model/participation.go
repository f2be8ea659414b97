package model

type TaskCompletion struct {
	TaskID           string         `json:"task_id,omitempty"`
	Completed        bool           `json:"completed,omitempty"`
	CompletedAt      string         `json:"completed_at,omitempty"`
	VerificationData map[string]any `json:"verification_data,omitempty"`
	Points           uint64         `json:"points,omitempty"`
}

type Participation struct {
	ID               string           `json:"id,omitempty"`
	AllowlistID      string           `json:"allowlist_id,omitempty"`
	UserID           string           `json:"user_id,omitempty"`
	WalletAddress    string           `json:"wallet_address,omitempty"`
	EntryPriceToken  string           `json:"entry_price_token,omitempty"`
	EntryPriceAmount string           `json:"entry_price_amount,omitempty"`
	Completions      []TaskCompletion `json:"completions,omitempty"`
	CreatedAt        string           `json:"created_at,omitempty"`
}

type StartParticipationRequest struct {
	AllowlistID string `json:"allowlist_id"`
}

type StartParticipationResponse struct {
	State string `json:"state"`
}

type GetParticipationStateRequest struct {
	AllowlistID string `json:"allowlist_id" form:"allowlist_id"`
}

type GetParticipationStateResponse struct {
	State       string           `json:"state"`
	Completions []TaskCompletion `json:"completions,omitempty"`
}

type CompleteTaskRequest struct {
	AllowlistID string         `json:"allowlist_id"`
	TaskID      string         `json:"task_id"`
	Proof       map[string]any `json:"proof"`
}

type CompleteTaskResponse struct {
	Completed bool   `json:"completed"`
	Points    uint64 `json:"points"`
}

type AdvanceParticipationRequest struct {
	AllowlistID string `json:"allowlist_id"`
}

type AdvanceParticipationResponse struct {
	State string `json:"state"`
}

type BackParticipationRequest struct {
	AllowlistID string `json:"allowlist_id"`

	// To is the target state, either requirements_check or task_verification.
	To string `json:"to"`
}

type BackParticipationResponse struct {
	State string `json:"state"`
}

type SubmitEntryRequest struct {
	AllowlistID string `json:"allowlist_id"`
	Consent     bool   `json:"consent"`
}

type SubmitEntryResponse struct {
	ParticipationID string `json:"participation_id"`
	State           string `json:"state"`
}

type CancelParticipationRequest struct {
	AllowlistID string `json:"allowlist_id"`
}

type CancelParticipationResponse struct {
	State string `json:"state"`
}
