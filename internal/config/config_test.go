package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 200, cfg.PageSize)
	assert.Equal(t, 5000, cfg.MaxCommits)
	assert.Equal(t, 3, cfg.ContextLines)
	assert.Equal(t, 400, cfg.WordDiffMaxTokens)
	assert.False(t, cfg.PrefixRefMatch)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
pageSize: 50
palette: ["#111", "#222"]
prefixRefMatch: true
`), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFile(path))
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, []string{"#111", "#222"}, cfg.Palette)
	assert.True(t, cfg.PrefixRefMatch)
	assert.Equal(t, 3, cfg.ContextLines, "unset fields keep defaults")

	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{
		"GITVIEW_ADDR":             ":7000",
		"GITVIEW_CONTEXT_LINES":    "5",
		"GITVIEW_PALETTE":          "red, green ,",
		"GITVIEW_PREFIX_REF_MATCH": "false",
	})))
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, 5, cfg.ContextLines)
	assert.Equal(t, []string{"red", "green"}, cfg.Palette)
	assert.False(t, cfg.PrefixRefMatch)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestApplyEnv_BadNumbers(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"GITVIEW_PAGE_SIZE":        "lots",
		"GITVIEW_PREFIX_REF_MATCH": "maybe",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITVIEW_PAGE_SIZE")
	assert.Contains(t, err.Error(), "GITVIEW_PREFIX_REF_MATCH")
	assert.Equal(t, 200, cfg.PageSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(*Config)
		check func(*testing.T, *Config)
	}{
		{"negative page", func(c *Config) { c.PageSize = -1 }, func(t *testing.T, c *Config) { assert.Equal(t, 200, c.PageSize) }},
		{"page over cap", func(c *Config) { c.PageSize = 10; c.MaxCommits = 5 }, func(t *testing.T, c *Config) { assert.Equal(t, 5, c.PageSize) }},
		{"negative context", func(c *Config) { c.ContextLines = -2 }, func(t *testing.T, c *Config) { assert.Equal(t, 3, c.ContextLines) }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, func(t *testing.T, c *Config) { assert.Equal(t, "info", c.LogLevel) }},
		{"empty addr", func(c *Config) { c.Addr = "" }, func(t *testing.T, c *Config) { assert.Equal(t, ":8080", c.Addr) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.tweak(cfg)
			assert.Error(t, cfg.Validate())
			tt.check(t, cfg)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("GITVIEW_CONFIG", "")
	t.Setenv("GITVIEW_MAX_COMMITS", "100")
	t.Setenv("GITVIEW_PAGE_SIZE", "20")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.MaxCommits)
	assert.Equal(t, 20, cfg.PageSize)

	t.Setenv("GITVIEW_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	assert.Error(t, err)
}
