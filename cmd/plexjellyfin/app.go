package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/config"
	"github.com/logictoad/plex-jellyfin-cli/internal/history"
	"github.com/logictoad/plex-jellyfin-cli/internal/jellyfin"
	"github.com/logictoad/plex-jellyfin-cli/internal/logging"
	"github.com/logictoad/plex-jellyfin-cli/internal/match"
	"github.com/logictoad/plex-jellyfin-cli/internal/plex"
	"github.com/spf13/cobra"
)

const (
	serverPlex     = "plex"
	serverJellyfin = "jellyfin"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the file logger. A logger that cannot open its file
// degrades to a no-op rather than blocking the command.
func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{
		Level:      level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		return logging.Nop()
	}
	return logger
}

// openCatalog resolves a server name to a connected catalog adapter.
// Credentials are checked here so a misconfigured server fails before
// any request goes out.
func openCatalog(cfg *config.Config, server string) (catalog.Catalog, error) {
	switch strings.ToLower(server) {
	case serverPlex:
		if err := cfg.RequirePlex(); err != nil {
			return nil, err
		}
		client := plex.NewClient(plex.Config{
			URL:   cfg.Plex.URL,
			Token: cfg.Plex.Token,
		})
		return plex.NewAdapter(client), nil
	case serverJellyfin:
		if err := cfg.RequireJellyfin(); err != nil {
			return nil, err
		}
		client := jellyfin.NewClient(jellyfin.Config{
			URL:      cfg.Jellyfin.URL,
			APIKey:   cfg.Jellyfin.APIKey,
			Username: cfg.Jellyfin.Username,
		})
		return jellyfin.NewAdapter(client), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected %q or %q)", catalog.ErrUnknownServer, server, serverPlex, serverJellyfin)
	}
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	if cfg.History.Path != "" {
		return history.OpenPath(cfg.History.Path)
	}
	return history.Open()
}

// commandContext returns a context cancelled by Ctrl-C or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// resolveThreshold picks the command-line threshold when the flag was
// set, the configured one otherwise, and validates it before any
// catalog I/O happens.
func resolveThreshold(cmd *cobra.Command, cfg *config.Config, flagValue int) (int, error) {
	t := cfg.Options.Threshold
	if cmd.Flags().Changed("threshold") {
		t = flagValue
	}
	if err := match.ValidateThreshold(t); err != nil {
		return 0, err
	}
	return t, nil
}

// resolveDryRun lets an explicit --dry-run flag win over the configured
// default in either direction, so dry_run = true in config can still be
// overridden with --dry-run=false for a real sync.
func resolveDryRun(cmd *cobra.Command, cfg *config.Config, flagValue bool) bool {
	if cmd.Flags().Changed("dry-run") {
		return flagValue
	}
	return cfg.Options.DryRun
}

var titleCaser = cases.Title(language.English)

// displayKind renders a kind for human output ("movie" -> "Movies").
func displayKind(kind catalog.Kind) string {
	return titleCaser.String(string(kind)) + "s"
}

// sortByTitle orders items case-insensitively for stable display.
func sortByTitle(items []catalog.MediaItem) {
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
	})
}
