package model

type User struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
	TwitterHandle string `json:"twitter_handle,omitempty"`
	DiscordID     string `json:"discord_id,omitempty"`
	TelegramID    string `json:"telegram_id,omitempty"`
}

type LoginRequest struct {
	WalletAddress string `json:"wallet_address"`
	Name          string `json:"name"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type GetMeRequest struct{}

type GetMeResponse User
