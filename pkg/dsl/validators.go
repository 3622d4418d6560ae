package dsl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/mold/internal/dto"
	"github.com/aretw0/mold/pkg/schema"
	"github.com/aretw0/mold/pkg/validators"
)

func (c *compilation) validators(entries []any) ([]schema.Validator, error) {
	out := make([]schema.Validator, 0, len(entries))
	for i, entry := range entries {
		v, err := c.validator(entry)
		if err != nil {
			return nil, invalid(c.current, "validator %d: %v", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// validator compiles a single-key map such as {length: {min: 1}}. Validators
// without arguments may be given by name alone.
func (c *compilation) validator(entry any) (schema.Validator, error) {
	kind, arg, err := single(entry)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "length":
		var s dto.LengthSpec
		if err := c.parser.Decode(arg, &s); err != nil {
			return nil, fmt.Errorf("length: %w", err)
		}
		var opts []validators.Option
		if s.Exact != nil {
			opts = append(opts, validators.Exact(*s.Exact))
		}
		if s.Min != nil {
			opts = append(opts, validators.MinLength(*s.Min))
		}
		if s.Max != nil {
			opts = append(opts, validators.MaxLength(*s.Max))
		}
		return validators.Length(append(opts, errorOption(s.Error)...)...), nil

	case "range":
		var s dto.RangeSpec
		if err := c.parser.Decode(arg, &s); err != nil {
			return nil, fmt.Errorf("range: %w", err)
		}
		var opts []validators.Option
		if s.Min != nil {
			opts = append(opts, validators.Min(s.Min))
		}
		if s.Max != nil {
			opts = append(opts, validators.Max(s.Max))
		}
		return validators.Range(append(opts, errorOption(s.Error)...)...), nil

	case "regexp":
		var s dto.RegexpSpec
		if pattern, ok := arg.(string); ok {
			s.Pattern = pattern
		} else if err := c.parser.Decode(arg, &s); err != nil {
			return nil, fmt.Errorf("regexp: %w", err)
		}
		flags, err := regexpFlags(s.Flags)
		if err != nil {
			return nil, err
		}
		v, err := validators.Regexp(s.Pattern, append(errorOption(s.Error), validators.Flags(flags))...)
		if err != nil {
			return nil, err
		}
		return v, nil

	case "any_of", "none_of":
		s, err := c.choices(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		if kind == "any_of" {
			return validators.AnyOf(s.Values, errorOption(s.Error)...), nil
		}
		return validators.NoneOf(s.Values, errorOption(s.Error)...), nil

	case "unique":
		var s dto.UniqueSpec
		if arg != nil {
			if err := c.parser.Decode(arg, &s); err != nil {
				return nil, fmt.Errorf("unique: %w", err)
			}
		}
		opts := errorOption(s.Error)
		if s.Key != "" {
			opts = append(opts, validators.Key(fieldKey(s.Key)))
		}
		return validators.Unique(opts...), nil

	case "each":
		list, ok := arg.([]any)
		if !ok {
			return nil, fmt.Errorf("each: want a list of validators, got %T", arg)
		}
		children := make([]schema.Validator, 0, len(list))
		for _, child := range list {
			v, err := c.validator(child)
			if err != nil {
				return nil, fmt.Errorf("each: %w", err)
			}
			children = append(children, v)
		}
		return validators.Each(children...), nil

	case "tag":
		var s dto.TagSpec
		if tag, ok := arg.(string); ok {
			s.Tag = tag
		} else if err := c.parser.Decode(arg, &s); err != nil {
			return nil, fmt.Errorf("tag: %w", err)
		}
		v, err := validators.ParseTag(s.Tag, errorOption(s.Error)...)
		if err != nil {
			return nil, err
		}
		return v, nil

	case "predicate":
		var s dto.PredicateSpec
		if name, ok := arg.(string); ok {
			s.Name = name
		} else if err := c.parser.Decode(arg, &s); err != nil {
			return nil, fmt.Errorf("predicate: %w", err)
		}
		p, ok := c.predicates[s.Name]
		if !ok {
			return nil, fmt.Errorf("predicate %q is not registered", s.Name)
		}
		return validators.Predicate(p, errorOption(s.Error)...), nil
	}
	return nil, fmt.Errorf("unknown validator %q", kind)
}

func (c *compilation) choices(arg any) (dto.ChoicesSpec, error) {
	var s dto.ChoicesSpec
	if list, ok := arg.([]any); ok {
		s.Values = list
		return s, nil
	}
	err := c.parser.Decode(arg, &s)
	return s, err
}

func single(entry any) (string, any, error) {
	if name, ok := entry.(string); ok {
		return name, nil, nil
	}
	m, ok := entry.(map[string]any)
	if !ok {
		return "", nil, fmt.Errorf("want a name or a single-key map, got %T", entry)
	}
	if len(m) != 1 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", nil, fmt.Errorf("want exactly one validator per entry, got [%s]", strings.Join(keys, ", "))
	}
	for k, v := range m {
		return k, v, nil
	}
	panic("unreachable")
}

func errorOption(msg string) []validators.Option {
	if msg == "" {
		return nil
	}
	return []validators.Option{validators.WithError(msg)}
}

func regexpFlags(s string) (validators.RegexpFlag, error) {
	var f validators.RegexpFlag
	for _, r := range s {
		switch r {
		case 'i':
			f |= validators.IgnoreCase
		case 'm':
			f |= validators.Multiline
		case 's':
			f |= validators.DotAll
		default:
			return 0, fmt.Errorf("regexp: unknown flag %q", r)
		}
	}
	return f, nil
}

// fieldKey makes items of a list of objects unique by one field.
func fieldKey(name string) validators.KeyFunc {
	return func(item any) any {
		if m, ok := item.(map[string]any); ok {
			return m[name]
		}
		return item
	}
}
