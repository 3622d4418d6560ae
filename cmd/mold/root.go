package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/mold/internal/logging"
)

var logger = logging.NewNop()

var rootCmd = &cobra.Command{
	Use:   "mold",
	Short: "mold checks data against schema definitions",
	Long: `mold loads YAML or JSON documents through types declared in a schema
definition file and reports every validation problem at once.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		var opts []logging.Option
		if jsonLogs {
			opts = append(opts, logging.WithJSON())
		}
		logger = logging.New(level, opts...)
	},
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
	rootCmd.PersistentFlags().StringP("schema", "s", "schema.yaml", "Schema definition file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
}
