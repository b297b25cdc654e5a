package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type StorageConfig struct {
	Backend     string `yaml:"backend"`
	DatabaseURL string `yaml:"database_url"`
	Key         string `yaml:"key"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type DigestConfig struct {
	// Time is the daily HH:MM (or a six-field cron expression) at which the
	// digest is sent. Empty disables it.
	Time string `yaml:"time"`
	// Interval sends an extra digest every N hours when positive.
	IntervalHours int `yaml:"interval_hours"`
}

// Config keeps runtime settings for the tracker.
type Config struct {
	Storage     StorageConfig  `yaml:"storage"`
	Redis       RedisConfig    `yaml:"redis"`
	Telegram    TelegramConfig `yaml:"telegram"`
	Digest      DigestConfig   `yaml:"digest"`
	MetricsAddr string         `yaml:"metrics_addr"`
	LogLevel    string         `yaml:"log_level"`
}

// ReportInterval is the interval digest period, zero when disabled.
func (c Config) ReportInterval() time.Duration {
	if c.Digest.IntervalHours <= 0 {
		return 0
	}
	return time.Duration(c.Digest.IntervalHours) * time.Hour
}

// BotEnabled reports whether the telegram consumer should run.
func (c Config) BotEnabled() bool {
	return c.Telegram.Token != ""
}

func defaults() Config {
	return Config{
		Storage: StorageConfig{
			Backend:     StorageSQLite,
			DatabaseURL: "devtracker.db",
		},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Digest: DigestConfig{Time: "08:00"},
	}
}

// Load reads an optional YAML file and applies environment overrides on top.
// A missing file at path is not an error.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("decode %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := overrideFromEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func overrideFromEnv(cfg *Config) error {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
		return nil
	}

	str("DEVTRACKER_STORAGE", &cfg.Storage.Backend)
	str("DATABASE_URL", &cfg.Storage.DatabaseURL)
	str("DEVTRACKER_KEY", &cfg.Storage.Key)
	str("REDIS_ADDR", &cfg.Redis.Addr)
	str("REDIS_PASSWORD", &cfg.Redis.Password)
	str("TELEGRAM_TOKEN", &cfg.Telegram.Token)
	str("DIGEST_TIME", &cfg.Digest.Time)
	str("METRICS_ADDR", &cfg.MetricsAddr)
	str("LOG_LEVEL", &cfg.LogLevel)

	if err := num("REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}
	if err := num("REPORT_INTERVAL_HOURS", &cfg.Digest.IntervalHours); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = id
	}
	return nil
}

// Validate checks combinations that would fail later at startup.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case StorageSQLite, StorageMemory:
	case StorageRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis storage requires redis.addr")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	if c.Digest.IntervalHours < 0 {
		return fmt.Errorf("report interval must not be negative")
	}
	return nil
}
