package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// appConfig holds connection and session secrets, sourced from the
// environment (optionally seeded from a .env file).
type appConfig struct {
	DatabaseURL string
	AccessToken string
}

func loadAppConfig() (*appConfig, error) {
	// Missing .env is fine; secrets may come from the environment directly.
	_ = godotenv.Load()

	cfg := &appConfig{
		DatabaseURL: strings.TrimSpace(os.Getenv("PEDIDOS_DATABASE_URL")),
		AccessToken: strings.TrimSpace(os.Getenv("PEDIDOS_ACCESS_TOKEN")),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PEDIDOS_DATABASE_URL must be set (see .env.example)")
	}
	return cfg, nil
}

// uiConfig keeps presentation preferences. Column layout does not live here;
// that goes through the sqlite layout store.
type uiConfig struct {
	Theme    string `yaml:"theme,omitempty"`
	ViewMode string `yaml:"viewMode,omitempty"`
	Sound    *bool  `yaml:"sound,omitempty"`
}

func loadUIConfig() (*uiConfig, string) {
	configDir := resolveConfigDir()
	_ = os.MkdirAll(configDir, 0o755)
	return loadUIConfigAt(filepath.Join(configDir, "ui.yaml"))
}

func loadUIConfigAt(path string) (*uiConfig, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &uiConfig{}, path
	}
	var cfg uiConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &uiConfig{}, path
	}
	return &cfg, path
}

func saveUIConfig(cfg *uiConfig, path string) error {
	if cfg == nil {
		cfg = &uiConfig{}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *uiConfig) soundEnabled() bool {
	if c == nil || c.Sound == nil {
		return true
	}
	return *c.Sound
}

func (c *uiConfig) viewMode() viewMode {
	if c != nil && c.ViewMode == string(viewModeCompact) {
		return viewModeCompact
	}
	return viewModeItems
}

func resolveConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "pedidos-tui")
}
