package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUIConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.yaml")
	off := false
	cfg := &uiConfig{Theme: "dark", ViewMode: "compact", Sound: &off}
	require.NoError(t, saveUIConfig(cfg, path))

	loaded, loadedPath := loadUIConfigAt(path)
	assert.Equal(t, path, loadedPath)
	assert.Equal(t, "dark", loaded.Theme)
	assert.Equal(t, viewModeCompact, loaded.viewMode())
	assert.False(t, loaded.soundEnabled())
}

func TestLoadUIConfigMissingFileFallsBack(t *testing.T) {
	cfg, _ := loadUIConfigAt(filepath.Join(t.TempDir(), "ui.yaml"))
	require.NotNil(t, cfg)
	assert.True(t, cfg.soundEnabled())
}

func TestUIConfigDefaults(t *testing.T) {
	cfg := &uiConfig{}
	assert.True(t, cfg.soundEnabled())
	assert.Equal(t, viewModeItems, cfg.viewMode())

	var nilCfg *uiConfig
	assert.True(t, nilCfg.soundEnabled())
	assert.Equal(t, viewModeItems, nilCfg.viewMode())
}

func TestLoadAppConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("PEDIDOS_DATABASE_URL", "")
	t.Setenv("PEDIDOS_ACCESS_TOKEN", "")
	_, err := loadAppConfig()
	assert.Error(t, err)

	t.Setenv("PEDIDOS_DATABASE_URL", "postgres://localhost/pedidos")
	cfg, err := loadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/pedidos", cfg.DatabaseURL)
}
