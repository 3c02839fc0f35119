package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Telegram TelegramConfig
	GitHub   GitHubConfig
	Payroll  PayrollConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	PageSize int
}

type TelegramConfig struct {
	Token          string
	WebhookURL     string
	WebhookSecret  string
	AllowedChatIDs []int64
}

type GitHubConfig struct {
	Token    string
	Repo     string
	FilePath string
	Branch   string
}

type PayrollConfig struct {
	OTBlockMinutes int
	OTBlockPay     int
}

func Load() (*Config, error) {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	pageSize, err := strconv.Atoi(getEnv("LIST_PAGE_SIZE", "5"))
	if err != nil || pageSize < 1 {
		return nil, fmt.Errorf("invalid LIST_PAGE_SIZE")
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		PageSize: pageSize,
	}

	allowedChatIDs, err := getEnvInt64Slice("TELEGRAM_ALLOWED_CHAT_IDS")
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_CHAT_IDS: %w", err)
	}

	config.Telegram = TelegramConfig{
		Token:          getEnv("TELEGRAM_TOKEN", ""),
		WebhookURL:     getEnv("TELEGRAM_WEBHOOK_URL", ""),
		WebhookSecret:  getEnv("TELEGRAM_WEBHOOK_SECRET", ""),
		AllowedChatIDs: allowedChatIDs,
	}

	config.GitHub = GitHubConfig{
		Token:    getEnv("GITHUB_TOKEN", ""),
		Repo:     getEnv("GITHUB_REPO", ""),
		FilePath: getEnv("GITHUB_FILE_PATH", "data/shifts.csv"),
		Branch:   getEnv("GITHUB_BRANCH", "main"),
	}

	otBlockMinutes, err := strconv.Atoi(getEnv("OT_BLOCK_MINUTES", "15"))
	if err != nil || otBlockMinutes < 1 {
		return nil, fmt.Errorf("invalid OT_BLOCK_MINUTES")
	}
	otBlockPay, err := strconv.Atoi(getEnv("OT_BLOCK_PAY", "50000"))
	if err != nil || otBlockPay < 0 {
		return nil, fmt.Errorf("invalid OT_BLOCK_PAY")
	}
	config.Payroll = PayrollConfig{
		OTBlockMinutes: otBlockMinutes,
		OTBlockPay:     otBlockPay,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.GitHub.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN is required")
	}
	if c.GitHub.Repo == "" {
		return fmt.Errorf("GITHUB_REPO is required")
	}
	if !strings.Contains(c.GitHub.Repo, "/") {
		return fmt.Errorf("GITHUB_REPO must be in the format 'owner/name'")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64Slice(env string) ([]int64, error) {
	value := getEnv(env, "")
	if value == "" {
		return nil, nil
	}
	var result []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	return result, nil
}
