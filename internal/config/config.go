package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/xxxsen/common/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultMaxFileSize = 50 * 1024 * 1024
)

type Config struct {
	Port        int              `json:"port"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	LogConfig   logger.LogConfig `json:"log_config"`
	Database    DatabaseConfig   `json:"database"`
	FileStore   FileStoreConfig  `json:"file_store"`
	Upload      UploadConfig     `json:"upload"`
	AI          AIConfig         `json:"ai"`
	CORS        []string         `json:"cors_allowlist"`
}

type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Path     string `json:"path"`
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

// FileStoreConfig selects a filestore implementation; Data is handed to the
// registered factory untouched.
type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type UploadConfig struct {
	MaxFileSize int64 `json:"max_file_size"`
}

type AIConfig struct {
	Provider        string      `json:"provider"`
	Model           string      `json:"model"`
	Data            interface{} `json:"data"`
	MaxInputChars   int         `json:"max_input_chars"`
	CacheSize       int         `json:"cache_size"`
	CacheTTLMinutes int         `json:"cache_ttl_minutes"`
}

func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.JWTSecret, validation.Required),
		validation.Field(&c.JWTTTLHours, validation.Min(1)),
	); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.AI.Validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}
	return validation.ValidateStruct(&c.FileStore,
		validation.Field(&c.FileStore.Type, validation.Required, validation.In("local", "s3")),
	)
}

func (c *DatabaseConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverSQLite, DriverPostgres)),
	); err != nil {
		return err
	}
	switch c.Driver {
	case DriverSQLite:
		return validation.ValidateStruct(c, validation.Field(&c.Path, validation.Required))
	default:
		if c.DSN != "" {
			return nil
		}
		return validation.ValidateStruct(c,
			validation.Field(&c.Host, validation.Required),
			validation.Field(&c.DBName, validation.Required),
		)
	}
}

func (c *AIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.Required),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.MaxInputChars, validation.Min(0)),
		validation.Field(&c.CacheSize, validation.Min(0)),
		validation.Field(&c.CacheTTLMinutes, validation.Min(0)),
	)
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSQLite
	}
	if cfg.Database.Driver == DriverPostgres && cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	cfg.FileStore.Type = strings.ToLower(strings.TrimSpace(cfg.FileStore.Type))
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	if cfg.Upload.MaxFileSize <= 0 {
		cfg.Upload.MaxFileSize = defaultMaxFileSize
	}
}
