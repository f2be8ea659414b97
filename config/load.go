package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Load builds the configurations from environment variables. Chain configs
// are loaded from the TOML file pointed to by CHAINS_CONFIG, if any.
func Load() Configs {
	return Configs{
		Env: getEnv("ENV", "local"),
		Database: DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "allowlist"),
			User:     getEnv("MYSQL_USER", "allowlist"),
			Password: getEnv("MYSQL_PASSWORD", "secret"),
		},
		ApiServer: ServerConfigs{
			Host: getEnv("API_HOST", "localhost"),
			Port: getEnv("API_PORT", "8080"),
		},
		Auth: AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: getDuration("ACCESS_TOKEN_DURATION", time.Hour*24),
			},
		},
		Allowlist: AllowlistConfigs{
			ClaimWindow:           getDuration("CLAIM_WINDOW", time.Hour*48),
			WinnerRefreshInterval: getDuration("WINNER_REFRESH_INTERVAL", time.Second*30),
			MaxTasksPerAllowlist:  getInt("MAX_TASKS_PER_ALLOWLIST", 20),
		},
		Twitter: TwitterConfigs{
			APIEndpoints:   strings.Fields(getEnv("TWITTER_API_ENDPOINTS", "")),
			AppAccessToken: getEnv("TWITTER_APP_ACCESS_TOKEN", ""),
		},
		Discord: DiscordConfigs{
			BotToken: getEnv("DISCORD_BOT_TOKEN", ""),
		},
		Telegram: TelegramConfigs{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
		Redis: RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfigs{
			Addr:     getEnv("KAFKA_ADDR", "localhost:9092"),
			ClientID: getEnv("KAFKA_CLIENT_ID", "allowlist-backend"),
		},
		Chains: loadChains(getEnv("CHAINS_CONFIG", "")),
	}
}

func loadChains(path string) map[string]ChainConfig {
	if path == "" {
		return nil
	}

	var file struct {
		Chains []ChainConfig `toml:"chains"`
	}

	if _, err := toml.DecodeFile(path, &file); err != nil {
		panic(err)
	}

	chains := make(map[string]ChainConfig)
	for _, chain := range file.Chains {
		chains[chain.Chain] = chain
	}

	return chains
}

func getEnv(key, def string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return def
}

func getInt(key string, def int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}

	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}

	return d
}
