// Package config provides centralized configuration for the gitview server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds application-wide configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// DefaultRepo is opened when a request names no repository.
	DefaultRepo string `yaml:"defaultRepo"`
	LogLevel    string `yaml:"logLevel"`
	// PageSize is the history page length when a request sets none.
	PageSize int `yaml:"pageSize"`
	// MaxCommits caps a single history page.
	MaxCommits   int `yaml:"maxCommits"`
	ContextLines int `yaml:"contextLines"`
	// WordDiffMaxTokens caps the tokens per line handed to word highlighting.
	WordDiffMaxTokens int      `yaml:"wordDiffMaxTokens"`
	Palette           []string `yaml:"palette"`
	// PrefixRefMatch lets refs holding abbreviated ids attach to the one
	// commit with that prefix.
	PrefixRefMatch bool `yaml:"prefixRefMatch"`
}

const envPrefix = "GITVIEW_"

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:              ":8080",
		LogLevel:          "info",
		PageSize:          200,
		MaxCommits:        5000,
		ContextLines:      3,
		WordDiffMaxTokens: 400,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// GITVIEW_CONFIG, then GITVIEW_* variables. Invalid values are reset to
// their defaults and reported in the returned error; the config is usable
// either way.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	envErr := cfg.ApplyEnv(os.LookupEnv)
	return cfg, errors.Join(envErr, cfg.Validate())
}

// LoadFile overlays the fields set in a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays GITVIEW_* variables read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(envPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = n
		}
	}

	str("ADDR", &c.Addr)
	str("DEFAULT_REPO", &c.DefaultRepo)
	str("LOG_LEVEL", &c.LogLevel)
	num("PAGE_SIZE", &c.PageSize)
	num("MAX_COMMITS", &c.MaxCommits)
	num("CONTEXT_LINES", &c.ContextLines)
	num("WORD_DIFF_MAX_TOKENS", &c.WordDiffMaxTokens)
	if v, ok := lookup(envPrefix + "PALETTE"); ok {
		c.Palette = nil
		for _, color := range strings.Split(v, ",") {
			if color = strings.TrimSpace(color); color != "" {
				c.Palette = append(c.Palette, color)
			}
		}
	}
	if v, ok := lookup(envPrefix + "PREFIX_REF_MATCH"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sPREFIX_REF_MATCH: %w", envPrefix, err))
		} else {
			c.PrefixRefMatch = b
		}
	}
	return errors.Join(errs...)
}

// Validate resets out-of-range values to their defaults and reports them.
func (c *Config) Validate() error {
	def := DefaultConfig()
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is empty"))
		c.Addr = def.Addr
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("pageSize %d must be positive", c.PageSize))
		c.PageSize = def.PageSize
	}
	if c.MaxCommits <= 0 {
		errs = append(errs, fmt.Errorf("maxCommits %d must be positive", c.MaxCommits))
		c.MaxCommits = def.MaxCommits
	}
	if c.PageSize > c.MaxCommits {
		errs = append(errs, fmt.Errorf("pageSize %d exceeds maxCommits %d", c.PageSize, c.MaxCommits))
		c.PageSize = c.MaxCommits
	}
	if c.ContextLines < 0 {
		errs = append(errs, fmt.Errorf("contextLines %d must not be negative", c.ContextLines))
		c.ContextLines = def.ContextLines
	}
	if c.WordDiffMaxTokens < 0 {
		errs = append(errs, fmt.Errorf("wordDiffMaxTokens %d must not be negative", c.WordDiffMaxTokens))
		c.WordDiffMaxTokens = def.WordDiffMaxTokens
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		errs = append(errs, fmt.Errorf("unknown logLevel %q", c.LogLevel))
		c.LogLevel = def.LogLevel
	}
	return errors.Join(errs...)
}

// Global is the application-wide configuration instance. cmd/server replaces
// it with the loaded configuration at startup.
var Global = DefaultConfig()
