// Package config loads and validates the tool's configuration from
// ~/.config/plexjellyfin/config.toml with PLEXJELLYFIN_* environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/paths"
)

type Config struct {
	Plex     PlexConfig     `mapstructure:"plex"`
	Jellyfin JellyfinConfig `mapstructure:"jellyfin"`
	Options  OptionsConfig  `mapstructure:"options"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	History  HistoryConfig  `mapstructure:"history"`
}

// PlexConfig holds Plex server connection settings.
type PlexConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// JellyfinConfig holds Jellyfin server connection settings.
type JellyfinConfig struct {
	URL      string `mapstructure:"url"`
	APIKey   string `mapstructure:"api_key"`
	Username string `mapstructure:"username"`
}

// OptionsConfig contains general options.
type OptionsConfig struct {
	// Threshold is the fuzzy match score [0,100] below which titles are
	// considered different.
	Threshold int  `mapstructure:"threshold"`
	DryRun    bool `mapstructure:"dry_run"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// HistoryConfig controls the sync history database.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Options: OptionsConfig{
			Threshold: 85,
			DryRun:    false,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "",
		},
	}
}

// Load loads configuration from file or returns defaults. The config
// file is optional; environment variables override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	configPath := cfgFile
	if configPath == "" {
		var err error
		configPath, err = paths.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get config path: %w", err)
		}
	}
	v.SetConfigFile(configPath)

	v.SetEnvPrefix("PLEXJELLYFIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate rejects invalid settings before any catalog I/O happens.
func (c *Config) Validate() error {
	if c.Options.Threshold < 0 || c.Options.Threshold > 100 {
		return fmt.Errorf("%w: %d", catalog.ErrInvalidThreshold, c.Options.Threshold)
	}
	return nil
}

// RequirePlex checks the Plex connection settings are present.
func (c *Config) RequirePlex() error {
	if c.Plex.URL == "" {
		return fmt.Errorf("plex.url is not configured")
	}
	if c.Plex.Token == "" {
		return fmt.Errorf("plex.token is not configured")
	}
	return nil
}

// RequireJellyfin checks the Jellyfin connection settings are present.
func (c *Config) RequireJellyfin() error {
	if c.Jellyfin.URL == "" {
		return fmt.Errorf("jellyfin.url is not configured")
	}
	if c.Jellyfin.APIKey == "" {
		return fmt.Errorf("jellyfin.api_key is not configured")
	}
	if c.Jellyfin.Username == "" {
		return fmt.Errorf("jellyfin.username is not configured")
	}
	return nil
}

// Save saves configuration to file
func (c *Config) Save() error {
	configFile, err := paths.ConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configFile)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}

	return os.WriteFile(configFile, []byte(c.ToTOML()), 0600)
}

func ConfigExists() bool {
	path, err := paths.ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# plexjellyfin configuration
# Generated by: plexjellyfin config init

# ============================================================================
# PLEX SERVER
# Token: Plex Web -> any item -> Get Info -> View XML -> X-Plex-Token param
# ============================================================================
[plex]
url = "%s"
token = "%s"

# ============================================================================
# JELLYFIN SERVER
# API key from: Dashboard -> API Keys. Username is the library owner.
# ============================================================================
[jellyfin]
url = "%s"
api_key = "%s"
username = "%s"

# ============================================================================
# GENERAL OPTIONS
# ============================================================================
[options]
# Fuzzy title match threshold, 0-100
threshold = %d

# Preview mode - compute sync plans but never write to a backend
dry_run = %v

# ============================================================================
# SYNC HISTORY
# Records applied sync runs in a local sqlite database
# ============================================================================
[history]
enabled = %v
path = "%s"

# ============================================================================
# LOGGING
# ============================================================================
[logging]
level = "%s"
file = "%s"
max_size_mb = %d
max_backups = %d
`,
		c.Plex.URL,
		c.Plex.Token,
		c.Jellyfin.URL,
		c.Jellyfin.APIKey,
		c.Jellyfin.Username,
		c.Options.Threshold,
		c.Options.DryRun,
		c.History.Enabled,
		c.History.Path,
		c.Logging.Level,
		c.Logging.File,
		c.Logging.MaxSizeMB,
		c.Logging.MaxBackups,
	)
}
