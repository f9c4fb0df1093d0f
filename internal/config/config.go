package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultServerName      = "deskmcp"
	DefaultServerVersion   = "1.0.0"
	DefaultTransport       = "stdio" // "stdio" or "http"
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 18420
	DefaultDispatchTimeout = 40 // seconds
	DefaultRetentionDays   = 30
	DefaultSweepSchedule   = "0 0 3 * * *" // daily 03:00, with seconds field
)

type Config struct {
	Server      ServerConfig      `json:"server"`
	Dispatch    DispatchConfig    `json:"dispatch"`
	Notify      NotifyConfig      `json:"notify"`
	Maintenance MaintenanceConfig `json:"maintenance"`
}

type ServerConfig struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Transport string `json:"transport"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
}

type DispatchConfig struct {
	TimeoutSeconds int `json:"timeoutSeconds"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

type TelegramConfig struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
	ChatID  int64  `json:"chatId"`
	Proxy   string `json:"proxy,omitempty"`
}

type MaintenanceConfig struct {
	Enabled            bool   `json:"enabled"`
	RetentionDays      int    `json:"retentionDays"`
	SweepSchedule      string `json:"sweepSchedule"`
	RediscoverSchedule string `json:"rediscoverSchedule,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      DefaultServerName,
			Version:   DefaultServerVersion,
			Transport: DefaultTransport,
			Host:      DefaultHost,
			Port:      DefaultPort,
		},
		Dispatch: DispatchConfig{
			TimeoutSeconds: DefaultDispatchTimeout,
		},
		Notify: NotifyConfig{},
		Maintenance: MaintenanceConfig{
			Enabled:       false,
			RetentionDays: DefaultRetentionDays,
			SweepSchedule: DefaultSweepSchedule,
		},
	}
}

func ConfigDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".deskmcp")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if transport := os.Getenv("DESKMCP_TRANSPORT"); transport != "" {
		cfg.Server.Transport = transport
	}
	if host := os.Getenv("DESKMCP_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("DESKMCP_PORT"); port != "" {
		if parsed, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = parsed
		}
	}
	if timeout := os.Getenv("DESKMCP_DISPATCH_TIMEOUT"); timeout != "" {
		if parsed, err := strconv.Atoi(timeout); err == nil {
			cfg.Dispatch.TimeoutSeconds = parsed
		}
	}
	if token := os.Getenv("DESKMCP_TELEGRAM_TOKEN"); token != "" {
		cfg.Notify.Telegram.Token = token
		cfg.Notify.Telegram.Enabled = true
	}
	if chatID := os.Getenv("DESKMCP_TELEGRAM_CHAT_ID"); chatID != "" {
		if parsed, err := strconv.ParseInt(chatID, 10, 64); err == nil {
			cfg.Notify.Telegram.ChatID = parsed
		}
	}
	if enabled := os.Getenv("DESKMCP_MAINTENANCE_ENABLED"); enabled != "" {
		if parsed, err := strconv.ParseBool(enabled); err == nil {
			cfg.Maintenance.Enabled = parsed
		}
	}
	if days := os.Getenv("DESKMCP_RETENTION_DAYS"); days != "" {
		if parsed, err := strconv.Atoi(days); err == nil {
			cfg.Maintenance.RetentionDays = parsed
		}
	}

	if cfg.Server.Transport != "stdio" && cfg.Server.Transport != "http" {
		return nil, fmt.Errorf("invalid transport %q: must be stdio or http", cfg.Server.Transport)
	}
	if cfg.Dispatch.TimeoutSeconds <= 0 {
		cfg.Dispatch.TimeoutSeconds = DefaultDispatchTimeout
	}
	if cfg.Maintenance.RetentionDays <= 0 {
		cfg.Maintenance.RetentionDays = DefaultRetentionDays
	}
	if cfg.Maintenance.SweepSchedule == "" {
		cfg.Maintenance.SweepSchedule = DefaultSweepSchedule
	}

	return cfg, nil
}

// Addr returns the HTTP listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func SaveConfig(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(ConfigPath(), data, 0644)
}
