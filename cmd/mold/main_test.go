package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mold/internal/testutils"
)

const schemaYAML = `
types:
  Person:
    fields:
      name:
        type: string
        validators:
          - length: {min: 1}
      age:
        type: integer
        optional: true
        default: 0
      tags: "[string]?"
`

// run executes the root command. Flags keep their values between runs, so
// callers pass every flag they depend on.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "mold version dev\n", out)
}

func TestValidateCommand(t *testing.T) {
	schemaPath := testutils.WriteFile(t, "schema.yaml", schemaYAML)
	valid := testutils.WriteFile(t, "ada.yaml", "name: Ada\nage: 36\n")
	invalid := testutils.WriteFile(t, "bad.json", `{"name": "", "tags": ["ok", 3]}`)

	t.Run("valid", func(t *testing.T) {
		out, err := run(t, "", "validate", "-s", schemaPath, "-t", "Person", "-f", "text", valid)
		require.NoError(t, err)
		assert.Equal(t, "✔ "+valid+" is a valid Person\n", out)
	})

	t.Run("invalid", func(t *testing.T) {
		out, err := run(t, "", "validate", "-s", schemaPath, "-t", "Person", "-f", "text", valid, invalid)
		assert.ErrorIs(t, err, errInvalid)
		assert.ErrorContains(t, err, "1 of 2 documents")
		assert.Contains(t, out, "is not a valid Person (2 problems)")
		assert.Contains(t, out, "  name: Length should be at least 1")
		assert.Contains(t, out, "  tags.1: Value should be string")
	})

	t.Run("json from stdin", func(t *testing.T) {
		out, err := run(t, "age: old\n", "validate", "-s", schemaPath, "-t", "Person", "-f", "json", "-")
		assert.ErrorIs(t, err, errInvalid)

		var res map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, "-", res["source"])
		assert.Equal(t, map[string]any{
			"age":  []any{"Value should be integer"},
			"name": []any{"Value is required"},
		}, res["errors"])
	})

	t.Run("markdown", func(t *testing.T) {
		out, err := run(t, "", "validate", "-s", schemaPath, "-t", "Person", "-f", "markdown", invalid)
		assert.ErrorIs(t, err, errInvalid)
		assert.Contains(t, out, "| `name` | Length should be at least 1 |")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "", "validate", "-s", schemaPath, "-t", "Person", "-f", "xml", valid)
		assert.ErrorContains(t, err, `unknown format "xml"`)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := run(t, "", "validate", "-s", schemaPath, "-t", "Robot", "-f", "text", valid)
		assert.ErrorContains(t, err, `unknown type "Robot" (one of: Person)`)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := run(t, "", "validate", "-s", schemaPath, "-t", "", "-f", "text", valid)
		assert.ErrorContains(t, err, "--type is required")
	})

	t.Run("missing schema", func(t *testing.T) {
		_, err := run(t, "", "validate", "-s", schemaPath+".missing", "-t", "Person", "-f", "text", valid)
		assert.ErrorContains(t, err, "failed to load schema")
	})
}

func TestDumpCommand(t *testing.T) {
	schemaPath := testutils.WriteFile(t, "schema.yaml", schemaYAML)
	doc := testutils.WriteFile(t, "ada.yaml", "name: Ada\nextra: dropped\n")

	out, err := run(t, "", "dump", "-s", schemaPath, "-t", "Person", "--to", "json", doc)
	require.NoError(t, err)
	assert.Equal(t, `{"age":0,"name":"Ada"}`+"\n", out)

	out, err = run(t, "name: Grace\n", "dump", "-s", schemaPath, "-t", "Person", "--to", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "age: 0\nname: Grace\n", out)

	_, err = run(t, "", "dump", "-s", schemaPath, "-t", "Person", "--to", "toml", doc)
	assert.ErrorContains(t, err, `unknown output format "toml"`)

	_, err = run(t, "age: 1\n", "dump", "-s", schemaPath, "-t", "Person", "--to", "yaml")
	assert.Error(t, err)
}

func TestGraphCommand(t *testing.T) {
	schemaPath := testutils.WriteFile(t, "schema.yaml", `
types:
  Person:
    fields:
      books: "[Book]?"
  Book:
    fields:
      author: Person
`)

	out, err := run(t, "", "graph", "-s", schemaPath, "-t", "")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, `Person -- "books" --> Book`)
	assert.NotContains(t, out, "classDef focus")

	out, err = run(t, "", "graph", "-s", schemaPath, "-t", "Book")
	require.NoError(t, err)
	assert.Contains(t, out, "class Book focus;")

	_, err = run(t, "", "graph", "-s", schemaPath, "-t", "Nope")
	assert.Error(t, err)
}
