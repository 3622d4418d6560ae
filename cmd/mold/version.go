package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/mold"
	"github.com/aretw0/mold/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mold",
	Run: func(cmd *cobra.Command, args []string) {
		version := strings.TrimSpace(mold.Version)
		out := cmd.OutOrStdout()
		if isTerminal(out) {
			tui.PrintBanner(out, version)
			return
		}
		fmt.Fprintf(out, "mold version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
