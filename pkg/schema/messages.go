package schema

import (
	"fmt"
	"regexp"
)

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ErrorMessages maps symbolic error keys to message templates. It is built
// once from a default table and optional overrides and never changes after.
type ErrorMessages struct {
	table map[string]string
}

// NewErrorMessages unions defaults with overrides; later overrides win.
func NewErrorMessages(defaults map[string]string, overrides ...map[string]string) ErrorMessages {
	table := make(map[string]string, len(defaults))
	for k, v := range defaults {
		table[k] = v
	}
	for _, o := range overrides {
		for k, v := range o {
			table[k] = v
		}
	}
	return ErrorMessages{table: table}
}

// Message returns the template registered for key.
func (m ErrorMessages) Message(key string) (string, bool) {
	msg, ok := m.table[key]
	return msg, ok
}

// Fail formats the template for key and returns it as a *ValidationError.
// An unknown key is a programming error and panics.
func (m ErrorMessages) Fail(key string, subs map[string]any) error {
	tmpl, ok := m.table[key]
	if !ok {
		panic(fmt.Sprintf("schema: no error message registered for key %q", key))
	}
	return &ValidationError{Messages: Format(tmpl, subs)}
}

// Format substitutes {name} placeholders with values from subs. Placeholders
// without a value are left as they are.
func Format(tmpl string, subs map[string]any) string {
	if len(subs) == 0 {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[1 : len(match)-1]
		v, ok := subs[name]
		if !ok {
			return match
		}
		return fmt.Sprint(v)
	})
}
