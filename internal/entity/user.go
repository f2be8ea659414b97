package entity

type User struct {
	Base

	Name          string
	WalletAddress string `gorm:"uniqueIndex"`

	// Linked social accounts, used when verifying membership requirements
	// on behalf of the wallet owner.
	TwitterHandle string
	DiscordID     string
	TelegramID    string
}
