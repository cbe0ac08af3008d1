package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/wayfarer/internal/cli"
	"github.com/aretw0/wayfarer/internal/config"
	"github.com/aretw0/wayfarer/internal/presentation/tui"
	"github.com/aretw0/wayfarer/pkg/ports"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persistent sessions",
	Long:  `List, inspect, and remove sessions kept by the file or redis store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.SessionStore) error {
			sessions, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found.")
				return nil
			}

			fmt.Fprintln(out, "Sessions:")
			for _, s := range sessions {
				fmt.Fprintln(out, "- "+s)
			}
			return nil
		})
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]
		return withStore(cmd, func(store ports.SessionStore) error {
			sess, err := store.Load(cmd.Context(), sessionID)
			if err != nil {
				return fmt.Errorf("error loading session '%s': %w", sessionID, err)
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				data, err := json.MarshalIndent(sess, "", "  ")
				if err != nil {
					return fmt.Errorf("error marshaling session: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			rendered, err := tui.NewRenderer()(tui.SessionMarkdown(sess))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, rendered)
			return nil
		})
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.SessionStore) error {
			out := cmd.OutOrStdout()
			hasError := false
			for _, sessionID := range args {
				if err := store.Delete(cmd.Context(), sessionID); err != nil {
					fmt.Fprintf(out, "Error removing '%s': %v\n", sessionID, err)
					hasError = true
				} else {
					fmt.Fprintf(out, "Removed session '%s'\n", sessionID)
				}
			}
			if hasError {
				return fmt.Errorf("some sessions could not be removed")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)

	sessionInspectCmd.Flags().Bool("json", false, "Print the raw session as JSON")
}

// withStore opens the configured persistent store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ports.SessionStore) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Store.Backend == config.BackendMemory {
		return errMemoryStore
	}

	backend, err := cli.OpenStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer backend.Close()
	return fn(backend.Store)
}
