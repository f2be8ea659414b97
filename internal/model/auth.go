package model

type AccessToken struct {
	ID            string `json:"id"`
	WalletAddress string `json:"wallet_address"`
}
