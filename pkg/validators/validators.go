package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/aretw0/mold/pkg/callable"
	"github.com/aretw0/mold/pkg/schema"
)

// --- Predicate ---

// PredicateValidator succeeds when its predicate accepts the value.
type PredicateValidator struct {
	predicate callable.Predicate
	messages  schema.ErrorMessages
}

// Predicate validates with p. Use callable.PredicateFunc for checks that
// ignore the context and callable.ContextPredicateFunc for checks that need
// it.
func Predicate(p callable.Predicate, opts ...Option) *PredicateValidator {
	o := newOptions(opts)
	return &PredicateValidator{
		predicate: p,
		messages:  o.table(map[string]string{"invalid": "Invalid data"}, "invalid"),
	}
}

func (v *PredicateValidator) Validate(value any, vctx any) error {
	if !v.predicate.Test(value, vctx) {
		return v.messages.Fail("invalid", map[string]any{"data": value})
	}
	return nil
}

// --- Range ---

// RangeValidator checks that an ordered value lies within bounds.
type RangeValidator struct {
	min, max any
	messages schema.ErrorMessages
}

// Range checks value against the bounds set with Min and Max. Without
// bounds it accepts everything.
func Range(opts ...Option) *RangeValidator {
	o := newOptions(opts)
	return &RangeValidator{
		min: o.min,
		max: o.max,
		messages: o.table(map[string]string{
			"min":     "Value should be at least {min}",
			"max":     "Value should be at most {max}",
			"range":   "Value should be at least {min} and at most {max}",
			"invalid": "Value is not comparable",
		}, "min", "max", "range"),
	}
}

func (v *RangeValidator) Validate(value any, _ any) error {
	switch {
	case v.min != nil && v.max != nil:
		lo, ok1 := compare(value, v.min)
		hi, ok2 := compare(value, v.max)
		if !ok1 || !ok2 {
			return v.fail("invalid", value)
		}
		if lo < 0 || hi > 0 {
			return v.fail("range", value)
		}
	case v.min != nil:
		c, ok := compare(value, v.min)
		if !ok {
			return v.fail("invalid", value)
		}
		if c < 0 {
			return v.fail("min", value)
		}
	case v.max != nil:
		c, ok := compare(value, v.max)
		if !ok {
			return v.fail("invalid", value)
		}
		if c > 0 {
			return v.fail("max", value)
		}
	}
	return nil
}

func (v *RangeValidator) fail(key string, value any) error {
	return v.messages.Fail(key, map[string]any{
		"data": value,
		"min":  v.min,
		"max":  v.max,
	})
}

// --- Length ---

// LengthValidator checks the length of strings and collections.
type LengthValidator struct {
	exact, min, max *int
	messages        schema.ErrorMessages
}

// Length checks the rune count of strings and the element count of slices,
// arrays and maps. Exact takes priority over MinLength and MaxLength.
func Length(opts ...Option) *LengthValidator {
	o := newOptions(opts)
	return &LengthValidator{
		exact: o.exact,
		min:   o.minLen,
		max:   o.maxLen,
		messages: o.table(map[string]string{
			"exact":   "Length should be {exact}",
			"min":     "Length should be at least {min}",
			"max":     "Length should be at most {max}",
			"range":   "Length should be at least {min} and at most {max}",
			"invalid": "Value has no length",
		}, "exact", "min", "max", "range"),
	}
}

func (v *LengthValidator) Validate(value any, _ any) error {
	n, ok := length(value)
	if !ok {
		return v.fail("invalid", value, 0)
	}
	switch {
	case v.exact != nil:
		if n != *v.exact {
			return v.fail("exact", value, n)
		}
	case v.min != nil && v.max != nil:
		if n < *v.min || n > *v.max {
			return v.fail("range", value, n)
		}
	case v.min != nil:
		if n < *v.min {
			return v.fail("min", value, n)
		}
	case v.max != nil:
		if n > *v.max {
			return v.fail("max", value, n)
		}
	}
	return nil
}

func (v *LengthValidator) fail(key string, value any, n int) error {
	return v.messages.Fail(key, map[string]any{
		"data":   value,
		"length": n,
		"exact":  deref(v.exact),
		"min":    deref(v.min),
		"max":    deref(v.max),
	})
}

func deref(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// --- Membership ---

// NoneOfValidator rejects members of a set of values.
type NoneOfValidator struct {
	values   []any
	messages schema.ErrorMessages
}

// NoneOf fails when the value equals one of values. Numbers compare equal
// across Go numeric types.
func NoneOf(values []any, opts ...Option) *NoneOfValidator {
	o := newOptions(opts)
	return &NoneOfValidator{
		values:   values,
		messages: o.table(map[string]string{"invalid": "Invalid data"}, "invalid"),
	}
}

func (v *NoneOfValidator) Validate(value any, _ any) error {
	if contains(v.values, value) {
		return v.messages.Fail("invalid", map[string]any{
			"data":   value,
			"values": v.values,
		})
	}
	return nil
}

// AnyOfValidator accepts only members of a set of choices.
type AnyOfValidator struct {
	choices  []any
	messages schema.ErrorMessages
}

// AnyOf fails when the value equals none of choices.
func AnyOf(choices []any, opts ...Option) *AnyOfValidator {
	o := newOptions(opts)
	return &AnyOfValidator{
		choices:  choices,
		messages: o.table(map[string]string{"invalid": "Invalid choice"}, "invalid"),
	}
}

func (v *AnyOfValidator) Validate(value any, _ any) error {
	if !contains(v.choices, value) {
		return v.messages.Fail("invalid", map[string]any{
			"data":    value,
			"choices": v.choices,
		})
	}
	return nil
}

// --- Regexp ---

// RegexpValidator matches strings against a pattern anchored at the start
// of the string. Text after the match is allowed.
type RegexpValidator struct {
	pattern  string
	re       *regexp.Regexp
	messages schema.ErrorMessages
}

// Regexp compiles pattern once and returns a validator for it.
func Regexp(pattern string, opts ...Option) (*RegexpValidator, error) {
	o := newOptions(opts)
	re, err := regexp.Compile(anchored(pattern, o.flags))
	if err != nil {
		return nil, fmt.Errorf("regexp %q: %w", pattern, err)
	}
	return newRegexp(pattern, re, o), nil
}

// MustRegexp is like Regexp but panics if pattern does not compile.
func MustRegexp(pattern string, opts ...Option) *RegexpValidator {
	v, err := Regexp(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// RegexpFrom uses an already compiled expression. Flags are ignored.
func RegexpFrom(re *regexp.Regexp, opts ...Option) *RegexpValidator {
	o := newOptions(opts)
	return newRegexp(re.String(), regexp.MustCompile(anchored(re.String(), 0)), o)
}

func newRegexp(pattern string, re *regexp.Regexp, o options) *RegexpValidator {
	return &RegexpValidator{
		pattern:  pattern,
		re:       re,
		messages: o.table(map[string]string{"invalid": "String does not match expected pattern"}, "invalid"),
	}
}

func anchored(pattern string, flags RegexpFlag) string {
	var f strings.Builder
	if flags&IgnoreCase != 0 {
		f.WriteByte('i')
	}
	if flags&Multiline != 0 {
		f.WriteByte('m')
	}
	if flags&DotAll != 0 {
		f.WriteByte('s')
	}
	prefix := ""
	if f.Len() > 0 {
		prefix = "(?" + f.String() + ")"
	}
	return prefix + `\A(?:` + pattern + `)`
}

// Pattern returns the pattern as given.
func (v *RegexpValidator) Pattern() string { return v.pattern }

func (v *RegexpValidator) Validate(value any, _ any) error {
	s, ok := value.(string)
	if !ok || !v.re.MatchString(s) {
		return v.messages.Fail("invalid", map[string]any{
			"data":   value,
			"regexp": v.pattern,
		})
	}
	return nil
}

// --- Unique ---

// UniqueValidator rejects sequences holding two items with the same key.
type UniqueValidator struct {
	key      KeyFunc
	messages schema.ErrorMessages
}

// Unique checks items for duplicates, comparing the items themselves unless
// Key is given. It stops at the first duplicate.
func Unique(opts ...Option) *UniqueValidator {
	o := newOptions(opts)
	key := o.key
	if key == nil {
		key = func(item any) any { return item }
	}
	return &UniqueValidator{
		key: key,
		messages: o.table(map[string]string{
			"invalid": "Value should be collection",
			"unique":  "Values are not unique",
		}, "unique"),
	}
}

func (v *UniqueValidator) Validate(value any, _ any) error {
	rv, ok := sequence(value)
	if !ok {
		return v.messages.Fail("invalid", map[string]any{"data": value})
	}

	seen := make(map[any]struct{}, rv.Len())
	var unhashable []any
	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i).Interface()
		k := v.key(item)

		dup := false
		if k == nil || reflect.ValueOf(k).Comparable() {
			hk := hashKey(k)
			_, dup = seen[hk]
			seen[hk] = struct{}{}
		} else {
			dup = contains(unhashable, k)
			unhashable = append(unhashable, k)
		}
		if dup {
			return v.messages.Fail("unique", map[string]any{
				"data": item,
				"key":  k,
			})
		}
	}
	return nil
}

// --- Each ---

// EachValidator runs validators against every item of a sequence.
type EachValidator struct {
	validators []schema.Validator
	messages   schema.ErrorMessages
}

// Each applies every validator to every item. Failures are collected per
// index and reported together.
func Each(validators ...schema.Validator) *EachValidator {
	return &EachValidator{
		validators: validators,
		messages: schema.NewErrorMessages(map[string]string{
			"invalid": "Value should be collection",
		}),
	}
}

func (v *EachValidator) Validate(value any, vctx any) error {
	rv, ok := sequence(value)
	if !ok {
		return v.messages.Fail("invalid", map[string]any{"data": value})
	}

	var b schema.ErrorBuilder
	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i).Interface()
		for _, child := range v.validators {
			if err := b.CollectAt(i, child.Validate(item, vctx)); err != nil {
				return err
			}
		}
	}
	return b.Err()
}
