package main

import (
	"fmt"
	"os"

	"github.com/aretw0/wayfarer"
	"github.com/aretw0/wayfarer/internal/cli"
	"github.com/aretw0/wayfarer/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a trip interactively",
	Long: `Walks through login, destination, interests and place selection in the terminal.
Answers are saved as you go; with a persistent store, quit and resume with --session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd, cfg)

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		rt, err := cli.Build(sc, cfg, logger, nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		var render tui.Renderer = tui.PlainRenderer
		if cli.IsTerminal(os.Stdout) {
			render = tui.NewRenderer()
		}
		tui.PrintBanner(out, wayfarer.Version)

		sessionID, _ := cmd.Flags().GetString("session")
		restart, _ := cmd.Flags().GetBool("restart")

		in := cli.NewInterruptibleReader(os.Stdin, sc.Done())
		prompt := cli.NewTerminalPrompter(os.Stdin, in, out)

		_, err = cli.RunPlan(sc, rt.Planner, prompt, out, cli.PlanOptions{
			SessionID: sessionID,
			Restart:   restart,
			Render:    render,
		})
		if err != nil {
			if sc.Signal() != nil {
				fmt.Fprintln(out)
				tui.Warning(out, "Interrupted (%s).", sc.Signal())
			}
			return cli.HandleExecutionError(err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().String("session", "", "Resume (or create) a named session")
	planCmd.Flags().Bool("restart", false, "Ask for destination and interests again on a resumed session")
}
