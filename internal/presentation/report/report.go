package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/mold/pkg/schema"
)

// Result is the outcome of checking one document against one type.
type Result struct {
	Source string              `json:"source"`
	Type   string              `json:"type"`
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// NewResult builds a Result from the error returned by a load.
// Errors other than validation failures are not results and are returned.
func NewResult(source, typeName string, err error) (Result, error) {
	r := Result{Source: source, Type: typeName, Valid: err == nil}
	if err == nil {
		return r, nil
	}
	ve, ok := schema.AsValidationError(err)
	if !ok {
		return r, err
	}
	r.Errors = ve.Flatten()
	return r, nil
}

// Count returns the number of messages in r.
func (r Result) Count() int {
	n := 0
	for _, msgs := range r.Errors {
		n += len(msgs)
	}
	return n
}

func (r Result) paths() []string {
	paths := make([]string, 0, len(r.Errors))
	for p := range r.Errors {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Text writes r for a terminal. Colors follow profile; termenv.Ascii
// disables them.
func Text(w io.Writer, r Result, profile termenv.Profile) error {
	out := termenv.NewOutput(w, termenv.WithProfile(profile))
	if r.Valid {
		_, err := fmt.Fprintf(w, "%s %s is a valid %s\n",
			out.String("✔").Foreground(out.Color("2")), r.Source, r.Type)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s %s is not a valid %s (%d %s)\n",
		out.String("✘").Foreground(out.Color("1")), r.Source, r.Type, r.Count(), plural(r.Count(), "problem")); err != nil {
		return err
	}
	for _, p := range r.paths() {
		for _, msg := range r.Errors[p] {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", out.String(p).Bold(), msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// JSON writes r as indented JSON.
func JSON(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Markdown renders r as a Markdown document.
func Markdown(r Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.Source)
	if r.Valid {
		fmt.Fprintf(&sb, "Valid **%s**.\n", r.Type)
		return sb.String()
	}

	fmt.Fprintf(&sb, "Not a valid **%s**: %d %s.\n\n", r.Type, r.Count(), plural(r.Count(), "problem"))
	sb.WriteString("| Path | Message |\n|---|---|\n")
	for _, p := range r.paths() {
		for _, msg := range r.Errors[p] {
			fmt.Fprintf(&sb, "| `%s` | %s |\n", p, strings.ReplaceAll(msg, "|", `\|`))
		}
	}
	return sb.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
