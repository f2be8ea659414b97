package model

type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Points uint64 `json:"points"`
	Rank   int    `json:"rank"`
}

type GetLeaderboardRequest struct {
	AllowlistID string `form:"allowlist_id"`
	Offset      int    `form:"offset"`
	Limit       int    `form:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`

	// MyRank is the 1-based rank of the requesting user, 0 when the user is
	// anonymous or has no points yet.
	MyRank int `json:"my_rank"`
}
