package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Statements.SkipRows = 3
	cfg.LineItems.Revenue = "VENTAS NETAS"
	cfg.Auth.Users = []Credential{{Username: "ana", Password: "s3cret"}}
	cfg.Server.SessionTTL = 30 * time.Minute

	path := filepath.Join(t.TempDir(), "ratios.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, got.Statements.SkipRows)
	assert.Equal(t, cfg.Statements.AssetsSheet, got.Statements.AssetsSheet)
	assert.Equal(t, "VENTAS NETAS", got.LineItems.Revenue)
	assert.Equal(t, cfg.LineItems.NetIncome, got.LineItems.NetIncome)
	assert.Equal(t, 30*time.Minute, got.Server.SessionTTL)
	assert.InDelta(t, cfg.Server.LoginRate, got.Server.LoginRate, 0.001)
	require.Len(t, got.Auth.Users, 1)
	assert.Equal(t, "ana", got.Auth.Users[0].Username)
	assert.Equal(t, cfg.Export, got.Export)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Activo", cfg.Statements.AssetsSheet)
	assert.Equal(t, "Pasivo", cfg.Statements.LiabilitiesSheet)
	assert.Equal(t, "Cuenta de Pérdidas y Ganancias", cfg.Statements.IncomeSheet)
	assert.Equal(t, 5, cfg.Statements.SkipRows)
	assert.Equal(t, "ratios_financieros.xlsx", cfg.Export.FileName)
	assert.Equal(t, "Ratios 2024", cfg.Export.SheetName)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptyPath(t *testing.T) {
	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().LineItems, got.LineItems)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratios.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: 127.0.0.1:9000\n"), 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", got.Server.Addr)
	assert.Equal(t, 5, got.Statements.SkipRows)
	assert.Equal(t, "Ratios 2024", got.Export.SheetName)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RATIOS_SERVER_ADDR", ":9090")
	t.Setenv("RATIOS_LOG_LEVEL", "debug")
	t.Setenv("RATIOS_SERVER_SESSION_TTL", "2h")

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", got.Server.Addr)
	assert.Equal(t, "debug", got.Log.Level)
	assert.Equal(t, 2*time.Hour, got.Server.SessionTTL)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratios.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Log.Level")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty sheet", func(c *Config) { c.Statements.IncomeSheet = "" }, "Config.Statements.IncomeSheet"},
		{"negative skip", func(c *Config) { c.Statements.SkipRows = -1 }, "Config.Statements.SkipRows"},
		{"empty key", func(c *Config) { c.LineItems.Cash = "" }, "Config.LineItems.Cash"},
		{"long sheet name", func(c *Config) { c.Export.SheetName = "this sheet name is far too long for excel" }, "Config.Export.SheetName"},
		{"unknown format", func(c *Config) { c.Export.Format = "ods" }, "Config.Export.Format"},
		{"zero ttl", func(c *Config) { c.Server.SessionTTL = 0 }, "Config.Server.SessionTTL"},
		{"blank password", func(c *Config) { c.Auth.Users[0].Password = "" }, "Config.Auth.Users[0].Password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratios.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "assets_sheet: Activo")
	assert.Contains(t, contents, "skip_rows: 5")
	assert.Contains(t, contents, "file_name: ratios_financieros.xlsx")
	assert.Contains(t, contents, "current_assets:")
}
