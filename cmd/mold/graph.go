package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/mold/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the type reference graph",
	Long:  `Reads the schema and outputs a Mermaid diagram (graph TD) of how its types refer to each other.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadSchema(cmd)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if focus, _ := cmd.Flags().GetString("type"); focus != "" {
			if _, err := lookupType(reg, focus); err != nil {
				return err
			}
			overlay = &graph.GraphOverlay{Focus: focus}
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(reg, overlay))
		return err
	},
}

func init() {
	graphCmd.Flags().StringP("type", "t", "", "Highlight this type")
	rootCmd.AddCommand(graphCmd)
}
