package model

type Winner struct {
	ID              string `json:"id,omitempty"`
	ParticipationID string `json:"participation_id,omitempty"`
	AllowlistID     string `json:"allowlist_id,omitempty"`
	UserID          string `json:"user_id,omitempty"`
	Position        int    `json:"position,omitempty"`
	Status          string `json:"status,omitempty"`
	ClaimExpiresAt  string `json:"claim_expires_at,omitempty"`
	ClaimedAt       string `json:"claimed_at,omitempty"`
}

type GetPendingWinnersRequest struct{}

type GetPendingWinnersResponse struct {
	Winners []Winner `json:"winners"`
}

type ClaimWinnerRequest struct {
	WinnerID string `json:"winner_id"`
}

type ClaimWinnerResponse struct {
	ClaimedAt string `json:"claimed_at"`
}

type GetWinnersRequest struct {
	AllowlistID string `json:"allowlist_id" form:"allowlist_id"`
}

type GetWinnersResponse struct {
	Winners []Winner `json:"winners"`
}
