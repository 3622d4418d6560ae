package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Type defines how a value moves between its plain representation and its
// native form.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "[integer]").
	Name() string
	// Load converts data to a native value, validating it on the way.
	Load(data any, vctx any) (any, error)
	// Dump converts a native value back to its representation.
	Dump(value any, vctx any) (any, error)
}

// Resolver is implemented by proxy types standing in for another Type.
type Resolver interface {
	Resolve() (Type, error)
}

// Underlying follows Resolver proxies until it reaches a concrete Type.
func Underlying(t Type) (Type, error) {
	for {
		r, ok := t.(Resolver)
		if !ok {
			return t, nil
		}
		next, err := r.Resolve()
		if err != nil {
			return nil, err
		}
		t = next
	}
}

// Validate loads data with t and returns only the error.
func Validate(t Type, data any, vctx any) error {
	_, err := t.Load(data, vctx)
	return err
}

var baseMessages = map[string]string{
	"required": "Value is required",
}

// Option configures a Type.
type Option func(*config)

type config struct {
	name        string
	validators  []Validator
	messages    map[string]string
	constructor Constructor
	extend      Type
	only        []string
	exclude     []string
}

// WithValidators appends validators run after a successful load.
func WithValidators(vs ...Validator) Option {
	return func(c *config) {
		c.validators = append(c.validators, vs...)
	}
}

// WithMessages overrides error message templates by key.
func WithMessages(messages map[string]string) Option {
	return func(c *config) {
		if c.messages == nil {
			c.messages = make(map[string]string, len(messages))
		}
		for k, v := range messages {
			c.messages[k] = v
		}
	}
}

// WithName overrides the name reported by Name.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// base carries what every built-in type shares.
type base struct {
	name       string
	validators []Validator
	messages   ErrorMessages
}

func newBase(name string, defaults map[string]string, c config) base {
	if c.name != "" {
		name = c.name
	}
	return base{
		name:       name,
		validators: c.validators,
		messages:   NewErrorMessages(baseMessages, defaults, c.messages),
	}
}

func (b *base) Name() string { return b.name }

func (b *base) fail(key string, data any) error {
	return b.messages.Fail(key, map[string]any{"data": data})
}

func (b *base) validate(value any, vctx any) (any, error) {
	if err := RunValidators(b.validators, value, vctx); err != nil {
		return nil, err
	}
	return value, nil
}

// --- Scalars ---

// AnyType passes values through unchanged.
type AnyType struct{ base }

func (t *AnyType) Load(data any, vctx any) (any, error) {
	return t.validate(data, vctx)
}

func (t *AnyType) Dump(value any, _ any) (any, error) {
	return value, nil
}

// StringType converts string values.
type StringType struct{ base }

func (t *StringType) Load(data any, vctx any) (any, error) {
	if data == nil {
		return nil, t.fail("required", data)
	}
	s, ok := data.(string)
	if !ok {
		return nil, t.fail("invalid", data)
	}
	return t.validate(s, vctx)
}

func (t *StringType) Dump(value any, _ any) (any, error) {
	if value == nil {
		return nil, t.fail("required", value)
	}
	s, ok := value.(string)
	if !ok {
		return nil, t.fail("invalid", value)
	}
	return s, nil
}

// IntegerType converts integral numbers to int.
type IntegerType struct{ base }

func (t *IntegerType) Load(data any, vctx any) (any, error) {
	if data == nil {
		return nil, t.fail("required", data)
	}
	i, ok := toInt(data)
	if !ok {
		return nil, t.fail("invalid", data)
	}
	return t.validate(i, vctx)
}

func (t *IntegerType) Dump(value any, _ any) (any, error) {
	if value == nil {
		return nil, t.fail("required", value)
	}
	i, ok := toInt(value)
	if !ok {
		return nil, t.fail("invalid", value)
	}
	return i, nil
}

// FloatType converts any number to float64.
type FloatType struct{ base }

func (t *FloatType) Load(data any, vctx any) (any, error) {
	if data == nil {
		return nil, t.fail("required", data)
	}
	f, ok := toFloat(data)
	if !ok {
		return nil, t.fail("invalid", data)
	}
	return t.validate(f, vctx)
}

func (t *FloatType) Dump(value any, _ any) (any, error) {
	if value == nil {
		return nil, t.fail("required", value)
	}
	f, ok := toFloat(value)
	if !ok {
		return nil, t.fail("invalid", value)
	}
	return f, nil
}

// BooleanType converts bool values.
type BooleanType struct{ base }

func (t *BooleanType) Load(data any, vctx any) (any, error) {
	if data == nil {
		return nil, t.fail("required", data)
	}
	b, ok := data.(bool)
	if !ok {
		return nil, t.fail("invalid", data)
	}
	return t.validate(b, vctx)
}

func (t *BooleanType) Dump(value any, _ any) (any, error) {
	if value == nil {
		return nil, t.fail("required", value)
	}
	b, ok := value.(bool)
	if !ok {
		return nil, t.fail("invalid", value)
	}
	return b, nil
}

// CustomType applies user-defined load and dump functions.
type CustomType struct {
	base
	load func(data any, vctx any) (any, error)
	dump func(value any, vctx any) (any, error)
}

func (t *CustomType) Load(data any, vctx any) (any, error) {
	v, err := t.load(data, vctx)
	if err != nil {
		return nil, err
	}
	return t.validate(v, vctx)
}

func (t *CustomType) Dump(value any, vctx any) (any, error) {
	if t.dump == nil {
		return value, nil
	}
	return t.dump(value, vctx)
}

// --- Wrappers ---

// OptionalType lets nil through, substituting a default on load.
type OptionalType struct {
	inner Type
	def   any
}

func (t *OptionalType) Name() string { return t.inner.Name() + "?" }

// Inner returns the wrapped type.
func (t *OptionalType) Inner() Type { return t.inner }

func (t *OptionalType) Load(data any, vctx any) (any, error) {
	if data == nil {
		return t.def, nil
	}
	return t.inner.Load(data, vctx)
}

func (t *OptionalType) Dump(value any, vctx any) (any, error) {
	if value == nil {
		return nil, nil
	}
	return t.inner.Dump(value, vctx)
}

// ValidatedType runs extra validators after its inner type loads.
type ValidatedType struct {
	inner      Type
	validators []Validator
}

func (t *ValidatedType) Name() string { return t.inner.Name() }

// Inner returns the wrapped type.
func (t *ValidatedType) Inner() Type { return t.inner }

func (t *ValidatedType) Load(data any, vctx any) (any, error) {
	v, err := t.inner.Load(data, vctx)
	if err != nil {
		return nil, err
	}
	if err := RunValidators(t.validators, v, vctx); err != nil {
		return nil, err
	}
	return v, nil
}

func (t *ValidatedType) Dump(value any, vctx any) (any, error) {
	return t.inner.Dump(value, vctx)
}

// --- Factory Functions ---

// Any creates a pass-through type.
func Any(opts ...Option) Type {
	return &AnyType{newBase("any", nil, newConfig(opts))}
}

// String creates a string type.
func String(opts ...Option) Type {
	return &StringType{newBase("string", map[string]string{
		"invalid": "Value should be string",
	}, newConfig(opts))}
}

// Integer creates an integer type. Whole floats (as produced by JSON
// decoding) are accepted.
func Integer(opts ...Option) Type {
	return &IntegerType{newBase("integer", map[string]string{
		"invalid": "Value should be integer",
	}, newConfig(opts))}
}

// Float creates a floating-point type.
func Float(opts ...Option) Type {
	return &FloatType{newBase("float", map[string]string{
		"invalid": "Value should be float",
	}, newConfig(opts))}
}

// Boolean creates a boolean type.
func Boolean(opts ...Option) Type {
	return &BooleanType{newBase("boolean", map[string]string{
		"invalid": "Value should be boolean",
	}, newConfig(opts))}
}

// Custom creates a type from user-defined functions. dump may be nil, in
// which case values are dumped unchanged.
func Custom(name string, load func(data any, vctx any) (any, error), dump func(value any, vctx any) (any, error), opts ...Option) Type {
	return &CustomType{
		base: newBase(name, nil, newConfig(opts)),
		load: load,
		dump: dump,
	}
}

// Optional wraps inner so nil loads to def and dumps to nil.
func Optional(inner Type, def any) Type {
	return &OptionalType{inner: inner, def: def}
}

// Validated decorates any type, including references, with more validators.
func Validated(inner Type, validators ...Validator) Type {
	if len(validators) == 0 {
		return inner
	}
	return &ValidatedType{inner: inner, validators: validators}
}

// --- Conversions ---

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case float32:
		return wholeFloat(float64(n))
	case float64:
		return wholeFloat(n)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	}
	return 0, false
}

func wholeFloat(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func typeName(prefix string, t Type, suffix string) string {
	return fmt.Sprintf("%s%s%s", prefix, t.Name(), suffix)
}
