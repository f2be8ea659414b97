package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Allowlist AllowlistConfigs
	Twitter   TwitterConfigs
	Discord   DiscordConfigs
	Telegram  TelegramConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Chains    map[string]ChainConfig
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type AllowlistConfigs struct {
	// ClaimWindow is the default duration a winner has to claim after the
	// drawing created the winner record.
	ClaimWindow time.Duration

	// WinnerRefreshInterval is the cadence at which pending winner records
	// are re-evaluated for expiry.
	WinnerRefreshInterval time.Duration

	MaxTasksPerAllowlist int
}

type TwitterConfigs struct {
	APIEndpoints   []string
	AppAccessToken string
}

type DiscordConfigs struct {
	BotToken string
}

type TelegramConfigs struct {
	BotToken string
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr     string
	ClientID string
}

type ChainConfig struct {
	Chain string   `toml:"chain" json:"chain"`
	Rpcs  []string `toml:"rpcs" json:"rpcs"`
}
