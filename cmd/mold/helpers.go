package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/mold"
	"github.com/aretw0/mold/pkg/dsl"
	"github.com/aretw0/mold/pkg/registry"
	"github.com/aretw0/mold/pkg/schema"
)

func loadSchema(cmd *cobra.Command) (*registry.Registry, error) {
	path, _ := cmd.Flags().GetString("schema")
	reg, err := dsl.Load(path, dsl.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return reg, nil
}

func lookupType(reg *registry.Registry, name string) (schema.Type, error) {
	if name == "" {
		return nil, fmt.Errorf("--type is required (one of: %s)", strings.Join(reg.Names(), ", "))
	}
	t, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown type %q (one of: %s)", name, strings.Join(reg.Names(), ", "))
	}
	return t, nil
}

// loadDocument reads path ("-" for stdin) and loads it through codec.
// Files ending in .json are decoded as JSON, anything else as YAML.
func loadDocument(cmd *cobra.Command, codec *mold.Codec, path string) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return codec.LoadJSON(cmd.Context(), data)
	}
	return codec.LoadYAML(cmd.Context(), data)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
