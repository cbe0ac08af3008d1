package main

import (
	"fmt"

	"github.com/aretw0/wayfarer"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Wayfarer",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wayfarer version %s\n", wayfarer.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
