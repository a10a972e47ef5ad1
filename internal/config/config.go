package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL             string `yaml:"base_url"`
		APIKey              string `yaml:"api_key"`
		ChartDays           int    `yaml:"chart_days"`
		RequestDelaySeconds int    `yaml:"request_delay_seconds"`
		CacheTTLMinutes     int    `yaml:"cache_ttl_minutes"`
	} `yaml:"data_source"`
	Holdings struct {
		FilePath string `yaml:"file_path"`
	} `yaml:"holdings"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		PortfolioCron string `yaml:"portfolio_cron"`
		SignalCron    string `yaml:"signal_cron"`
	} `yaml:"schedule"`
	API struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"api"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A .env file next to the binary is honored if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HOLDINGS_FILE"); v != "" {
		cfg.Holdings.FilePath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("API_LISTEN_ADDR"); v != "" {
		cfg.API.ListenAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CHART_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.ChartDays = days
		}
	}

	// Defaults
	if cfg.DataSource.ChartDays == 0 {
		cfg.DataSource.ChartDays = 365
	}
	if cfg.DataSource.RequestDelaySeconds == 0 {
		cfg.DataSource.RequestDelaySeconds = 2
	}
	if cfg.DataSource.CacheTTLMinutes == 0 {
		cfg.DataSource.CacheTTLMinutes = 10
	}
	if cfg.Holdings.FilePath == "" {
		cfg.Holdings.FilePath = "data/holdings.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/coin_sentinel.db"
	}
	if cfg.Schedule.PortfolioCron == "" {
		cfg.Schedule.PortfolioCron = "0 0 8 * * *" // daily 08:00
	}
	if cfg.Schedule.SignalCron == "" {
		cfg.Schedule.SignalCron = "0 0 */6 * * *" // every 6 hours
	}
	if cfg.API.ListenAddr == "" {
		cfg.API.ListenAddr = ":8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.DataSource.ChartDays < 2 {
		return fmt.Errorf("data_source.chart_days must be at least 2")
	}
	if c.DataSource.RequestDelaySeconds < 0 {
		return fmt.Errorf("data_source.request_delay_seconds must not be negative")
	}
	if c.Holdings.FilePath == "" {
		return fmt.Errorf("holdings.file_path is required")
	}
	// Telegram is optional, but must be configured as a pair.
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
