package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.Server.Name != DefaultServerName {
		t.Errorf("name = %q, want %q", cfg.Server.Name, DefaultServerName)
	}
	if cfg.Server.Transport != DefaultTransport {
		t.Errorf("transport = %q, want %q", cfg.Server.Transport, DefaultTransport)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Dispatch.TimeoutSeconds != DefaultDispatchTimeout {
		t.Errorf("dispatch timeout = %d, want %d", cfg.Dispatch.TimeoutSeconds, DefaultDispatchTimeout)
	}
	if cfg.Notify.Telegram.Enabled {
		t.Error("telegram notify should be disabled by default")
	}
	if cfg.Maintenance.Enabled {
		t.Error("maintenance should be disabled by default")
	}
	if cfg.Maintenance.RetentionDays != DefaultRetentionDays {
		t.Errorf("retentionDays = %d, want %d", cfg.Maintenance.RetentionDays, DefaultRetentionDays)
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	tmpDir := t.TempDir()
	origHome := os.Getenv("HOME")
	t.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Server.Transport != DefaultTransport {
		t.Errorf("expected default transport %q, got %q", DefaultTransport, cfg.Server.Transport)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	origHome := os.Getenv("HOME")
	t.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	cfgDir := filepath.Join(tmpDir, ".deskmcp")
	os.MkdirAll(cfgDir, 0755)

	testCfg := map[string]any{
		"server": map[string]any{
			"transport": "http",
			"port":      9000,
		},
		"dispatch": map[string]any{
			"timeoutSeconds": 10,
		},
	}
	data, _ := json.MarshalIndent(testCfg, "", "  ")
	os.WriteFile(filepath.Join(cfgDir, "config.json"), data, 0644)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Server.Transport != "http" {
		t.Errorf("transport = %q, want http", cfg.Server.Transport)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Dispatch.TimeoutSeconds != 10 {
		t.Errorf("dispatch timeout = %d, want 10", cfg.Dispatch.TimeoutSeconds)
	}
	// Fields the file does not set keep their defaults.
	if cfg.Server.Host != DefaultHost {
		t.Errorf("host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	origHome := os.Getenv("HOME")
	t.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	t.Setenv("DESKMCP_TRANSPORT", "http")
	t.Setenv("DESKMCP_HOST", "127.0.0.1")
	t.Setenv("DESKMCP_PORT", "8088")
	t.Setenv("DESKMCP_DISPATCH_TIMEOUT", "15")
	t.Setenv("DESKMCP_RETENTION_DAYS", "7")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Server.Transport != "http" {
		t.Errorf("transport = %q, want http", cfg.Server.Transport)
	}
	if cfg.Addr() != "127.0.0.1:8088" {
		t.Errorf("addr = %q, want 127.0.0.1:8088", cfg.Addr())
	}
	if cfg.Dispatch.TimeoutSeconds != 15 {
		t.Errorf("dispatch timeout = %d, want 15", cfg.Dispatch.TimeoutSeconds)
	}
	if cfg.Maintenance.RetentionDays != 7 {
		t.Errorf("retentionDays = %d, want 7", cfg.Maintenance.RetentionDays)
	}
}

func TestLoadConfig_TelegramTokenEnablesNotify(t *testing.T) {
	tmpDir := t.TempDir()
	origHome := os.Getenv("HOME")
	t.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	t.Setenv("DESKMCP_TELEGRAM_TOKEN", "test-telegram-token")
	t.Setenv("DESKMCP_TELEGRAM_CHAT_ID", "123456")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Notify.Telegram.Token != "test-telegram-token" {
		t.Errorf("telegram token = %q, want test-telegram-token", cfg.Notify.Telegram.Token)
	}
	if !cfg.Notify.Telegram.Enabled {
		t.Error("setting a token via env should enable the notifier")
	}
	if cfg.Notify.Telegram.ChatID != 123456 {
		t.Errorf("chatId = %d, want 123456", cfg.Notify.Telegram.ChatID)
	}
}

func TestLoadConfig_InvalidTransport(t *testing.T) {
	tmpDir := t.TempDir()
	origHome := os.Getenv("HOME")
	t.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	t.Setenv("DESKMCP_TRANSPORT", "grpc")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for unknown transport")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	origHome := os.Getenv("HOME")
	t.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	cfgDir := filepath.Join(tmpDir, ".deskmcp")
	os.MkdirAll(cfgDir, 0755)
	os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte("invalid json"), 0644)

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadConfig_ZeroTimeoutFallsBack(t *testing.T) {
	tmpDir := t.TempDir()
	origHome := os.Getenv("HOME")
	t.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	cfgDir := filepath.Join(tmpDir, ".deskmcp")
	os.MkdirAll(cfgDir, 0755)
	testCfg := map[string]any{
		"dispatch": map[string]any{"timeoutSeconds": 0},
	}
	data, _ := json.MarshalIndent(testCfg, "", "  ")
	os.WriteFile(filepath.Join(cfgDir, "config.json"), data, 0644)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Dispatch.TimeoutSeconds != DefaultDispatchTimeout {
		t.Errorf("dispatch timeout = %d, want default %d", cfg.Dispatch.TimeoutSeconds, DefaultDispatchTimeout)
	}
}

func TestSaveConfig(t *testing.T) {
	tmpDir := t.TempDir()
	origHome := os.Getenv("HOME")
	t.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", origHome)

	cfg := DefaultConfig()
	cfg.Notify.Telegram.Token = "saved-token"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, ".deskmcp", "config.json"))
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}
	if loaded.Notify.Telegram.Token != "saved-token" {
		t.Errorf("saved token = %q, want saved-token", loaded.Notify.Telegram.Token)
	}
}
