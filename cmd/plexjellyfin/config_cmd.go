package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/config"
	"github.com/logictoad/plex-jellyfin-cli/internal/paths"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func runConfigInit(force bool) error {
	configFile, err := paths.ConfigPath()
	if err != nil {
		return err
	}
	if config.ConfigExists() && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", configFile)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", configFile)
	fmt.Println("Edit it to add your Plex token and Jellyfin API key.")
	return nil
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Print(cfg.ToTOML())
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := paths.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Println(configFile)
			return nil
		},
	}
}
