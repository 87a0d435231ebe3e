// config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceFiles = "files"
	SourceMySQL = "mysql"
)

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	PingMessage    string   `yaml:"ping_message"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type DataConfig struct {
	Source          string        `yaml:"source"` // "files" or "mysql"
	Directory       string        `yaml:"directory"`
	LTPHubFile      string        `yaml:"ltp_hub_file"`
	AFEDataFile     string        `yaml:"afe_data_file"`
	FetchTimeoutStr string        `yaml:"fetch_timeout"`
	MaxUploadMB     int64         `yaml:"max_upload_mb"`
	FetchTimeout    time.Duration `yaml:"-"` // Parsed duration
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

var AppConfig Config

// Default returns the configuration used when no file sets a value.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
			PingMessage:    "ping",
		},
		Data: DataConfig{
			Source:       SourceFiles,
			Directory:    "data",
			LTPHubFile:   "ltphub.csv",
			AFEDataFile:  "AFE_data.iqy",
			MaxUploadMB:  32,
			FetchTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: "3306",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig reads configuration into AppConfig. A .env file next to the
// working directory is loaded first if present, then the YAML file at
// configPath (skipped when empty), then environment overrides.
func LoadConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load is LoadConfig without touching AppConfig.
func Load(configPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()
	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnv(&cfg)

	// Parse durations
	if cfg.Data.FetchTimeoutStr != "" {
		d, err := time.ParseDuration(cfg.Data.FetchTimeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse fetch_timeout: %w", err)
		}
		cfg.Data.FetchTimeout = d
	}

	switch cfg.Data.Source {
	case SourceFiles, SourceMySQL:
	default:
		return Config{}, fmt.Errorf("unknown data source %q, expected %q or %q", cfg.Data.Source, SourceFiles, SourceMySQL)
	}

	if cfg.Data.Directory != "" {
		abs, err := filepath.Abs(cfg.Data.Directory)
		if err != nil {
			return Config{}, fmt.Errorf("error getting absolute path of data directory: %w", err)
		}
		cfg.Data.Directory = abs
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Server.Port, "PORT")
	set(&cfg.Server.PingMessage, "PING_MESSAGE")
	set(&cfg.Data.Source, "LTPDASH_DATA_SOURCE")
	set(&cfg.Data.Directory, "LTPDASH_DATA_DIR")
	set(&cfg.Database.Host, "DB_HOST")
	set(&cfg.Database.Port, "DB_PORT")
	set(&cfg.Database.User, "DB_USER")
	set(&cfg.Database.Password, "DB_PASSWORD")
	set(&cfg.Database.DBName, "DB_NAME")
	set(&cfg.Logging.Level, "LOG_LEVEL")
}
