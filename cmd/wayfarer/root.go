package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/wayfarer/internal/cli"
	"github.com/aretw0/wayfarer/internal/config"
	"github.com/spf13/cobra"
)

// defaultConfigFile is picked up from the working directory when --config is not set.
const defaultConfigFile = "wayfarer.yaml"

var rootCmd = &cobra.Command{
	Use:   "wayfarer",
	Short: "Wayfarer is a trip builder wizard",
	Long: `Wayfarer walks a traveller from a destination and a set of interests to a
selection of places, over HTTP, MCP or an interactive terminal session.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./wayfarer.yaml if present)")
	rootCmd.PersistentFlags().String("store", "", "Session store backend: memory, file or redis")
	rootCmd.PersistentFlags().String("catalog", "", "Catalog file (YAML/JSON) or Loam directory")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// loadConfig reads the config file and environment, then applies the command flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Backend = v
	}
	if v, _ := cmd.Flags().GetString("catalog"); v != "" {
		cfg.Catalog.Path = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.NewLogger(cfg.SlogLevel(), debug)
}

// errMemoryStore is returned by session commands run against the memory backend.
var errMemoryStore = errors.New("the memory store does not outlive the process; use --store file or redis")
