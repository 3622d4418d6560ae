package main

import (
	"errors"
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/mold"
	"github.com/aretw0/mold/internal/presentation/report"
	"github.com/aretw0/mold/internal/presentation/tui"
)

var errInvalid = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check documents against a schema type",
	Long: `Loads each document through the chosen type and reports every problem found.
Documents ending in .json are read as JSON, anything else as YAML. Use "-" for stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args)
	},
}

func init() {
	validateCmd.Flags().StringP("type", "t", "", "Name of the type to validate against")
	validateCmd.Flags().StringP("format", "f", "text", "Output format: text, json or markdown")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	typeName, _ := cmd.Flags().GetString("type")
	format, _ := cmd.Flags().GetString("format")

	reg, err := loadSchema(cmd)
	if err != nil {
		return err
	}
	t, err := lookupType(reg, typeName)
	if err != nil {
		return err
	}
	codec := mold.New(t, mold.WithLogger(logger))

	out := cmd.OutOrStdout()
	invalid := 0
	for _, path := range args {
		_, loadErr := loadDocument(cmd, codec, path)
		res, err := report.NewResult(path, typeName, loadErr)
		if err != nil {
			return err
		}
		if !res.Valid {
			invalid++
		}

		switch format {
		case "json":
			err = report.JSON(out, res)
		case "markdown", "md":
			err = writeMarkdown(cmd, report.Markdown(res))
		case "text":
			profile := termenv.Ascii
			if isTerminal(out) {
				profile = termenv.ColorProfile()
			}
			err = report.Text(out, res, profile)
		default:
			return fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return err
		}
	}

	logger.Debug("validation finished", "documents", len(args), "invalid", invalid)
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d documents", errInvalid, invalid, len(args))
	}
	return nil
}

// writeMarkdown renders through glamour on a terminal and writes raw
// markdown otherwise.
func writeMarkdown(cmd *cobra.Command, md string) error {
	out := cmd.OutOrStdout()
	if isTerminal(out) {
		render, err := tui.NewRenderer(terminalWidth(out))
		if err != nil {
			return err
		}
		if md, err = render(md); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(out, md)
	return err
}
