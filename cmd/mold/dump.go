package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/mold"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Load a document and write it back normalized",
	Long: `Loads the document through the chosen type, then dumps the result as YAML or JSON.
Defaults of optional fields are filled in and unknown keys are dropped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) > 0 {
			path = args[0]
		}
		typeName, _ := cmd.Flags().GetString("type")
		to, _ := cmd.Flags().GetString("to")

		reg, err := loadSchema(cmd)
		if err != nil {
			return err
		}
		t, err := lookupType(reg, typeName)
		if err != nil {
			return err
		}
		codec := mold.New(t, mold.WithLogger(logger))

		value, err := loadDocument(cmd, codec, path)
		if err != nil {
			return err
		}

		var raw []byte
		switch to {
		case "json":
			raw, err = codec.DumpJSON(cmd.Context(), value)
			raw = append(raw, '\n')
		case "yaml":
			raw, err = codec.DumpYAML(cmd.Context(), value)
		default:
			return fmt.Errorf("unknown output format %q", to)
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	},
}

func init() {
	dumpCmd.Flags().StringP("type", "t", "", "Name of the type to load with")
	dumpCmd.Flags().String("to", "yaml", "Output encoding: yaml or json")
	rootCmd.AddCommand(dumpCmd)
}
