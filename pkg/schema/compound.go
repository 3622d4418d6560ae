package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// ListType converts sequences element by element.
type ListType struct {
	base
	item Type
}

// Item returns the element type.
func (t *ListType) Item() Type { return t.item }

func (t *ListType) Load(data any, vctx any) (any, error) {
	if data == nil {
		return nil, t.fail("required", data)
	}
	rv, ok := sequence(data)
	if !ok {
		return nil, t.fail("invalid", data)
	}

	var b ErrorBuilder
	items := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		v, err := t.item.Load(rv.Index(i).Interface(), vctx)
		if err := b.CollectAt(i, err); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return t.validate(items, vctx)
}

func (t *ListType) Dump(value any, vctx any) (any, error) {
	if value == nil {
		return nil, t.fail("required", value)
	}
	rv, ok := sequence(value)
	if !ok {
		return nil, t.fail("invalid", value)
	}

	var b ErrorBuilder
	items := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		v, err := t.item.Dump(rv.Index(i).Interface(), vctx)
		if err := b.CollectAt(i, err); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// DictType converts string-keyed mappings value by value.
type DictType struct {
	base
	value Type
}

// Value returns the type of the dict's values.
func (t *DictType) Value() Type { return t.value }

func (t *DictType) Load(data any, vctx any) (any, error) {
	return t.convert(data, vctx, true)
}

func (t *DictType) Dump(value any, vctx any) (any, error) {
	return t.convert(value, vctx, false)
}

func (t *DictType) convert(data any, vctx any, load bool) (any, error) {
	if data == nil {
		return nil, t.fail("required", data)
	}
	m, ok := stringMap(data)
	if !ok {
		return nil, t.fail("invalid", data)
	}

	var b ErrorBuilder
	out := make(map[string]any, len(m))
	for _, k := range sortedNames(m) {
		var (
			v   any
			err error
		)
		if load {
			v, err = t.value.Load(m[k], vctx)
		} else {
			v, err = t.value.Dump(m[k], vctx)
		}
		if err := b.CollectAt(k, err); err != nil {
			return nil, err
		}
		out[k] = v
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	if !load {
		return out, nil
	}
	return t.validate(out, vctx)
}

// Field declares one attribute of an Object.
type Field struct {
	Name string
	Type Type
}

// Constructor builds a native value from loaded object fields.
type Constructor interface {
	Construct(fields map[string]any, vctx any) (any, error)
}

// ConstructorFunc is a Constructor that ignores the validation context.
type ConstructorFunc func(fields map[string]any) (any, error)

func (f ConstructorFunc) Construct(fields map[string]any, _ any) (any, error) {
	return f(fields)
}

// ContextConstructorFunc is a Constructor that receives the validation context.
type ContextConstructorFunc func(fields map[string]any, vctx any) (any, error)

func (f ContextConstructorFunc) Construct(fields map[string]any, vctx any) (any, error) {
	return f(fields, vctx)
}

// DecodeInto returns a Constructor decoding loaded fields into a T.
func DecodeInto[T any]() Constructor {
	return ConstructorFunc(func(fields map[string]any) (any, error) {
		var out T
		if err := mapstructure.Decode(fields, &out); err != nil {
			return nil, fmt.Errorf("decode into %T: %w", out, err)
		}
		return out, nil
	})
}

// WithConstructor sets how an Object builds its native value. Without one,
// Object loads to map[string]any.
func WithConstructor(c Constructor) Option {
	return func(cfg *config) {
		cfg.constructor = c
	}
}

// Extend makes an Object inherit the fields of base. base may be a forward
// reference; it is resolved the first time the object is used.
func Extend(base Type) Option {
	return func(cfg *config) {
		cfg.extend = base
	}
}

// Only keeps just the named fields.
func Only(names ...string) Option {
	return func(cfg *config) {
		cfg.only = append(cfg.only, names...)
	}
}

// Exclude drops the named fields.
func Exclude(names ...string) Option {
	return func(cfg *config) {
		cfg.exclude = append(cfg.exclude, names...)
	}
}

// ObjectType maps named fields between a string-keyed representation and a
// native value.
type ObjectType struct {
	base
	declared    []Field
	extend      Type
	only        []string
	exclude     []string
	constructor Constructor

	mu     sync.Mutex
	fields []Field
}

// Object creates an object type from fields.
func Object(fields []Field, opts ...Option) *ObjectType {
	c := newConfig(opts)
	return &ObjectType{
		base: newBase("object", map[string]string{
			"invalid": "Value should be dict",
		}, c),
		declared:    fields,
		extend:      c.extend,
		only:        c.only,
		exclude:     c.exclude,
		constructor: c.constructor,
	}
}

// Declared returns the fields given to Object, before inheritance and
// filtering.
func (t *ObjectType) Declared() []Field { return t.declared }

// Base returns the type passed to Extend, or nil.
func (t *ObjectType) Base() Type { return t.extend }

// Fields returns the effective field list, resolving an extended base on
// first call. Failed resolutions are retried on the next call. An object
// that extends itself, directly or through other objects, is an error.
func (t *ObjectType) Fields() ([]Field, error) {
	return t.resolveFields(nil)
}

// resolveFields computes the field list without holding t.mu across the
// parent lookup; chain holds the objects being resolved by this call.
func (t *ObjectType) resolveFields(chain []*ObjectType) ([]Field, error) {
	t.mu.Lock()
	cached := t.fields
	t.mu.Unlock()
	if cached != nil {
		return cached, nil
	}
	for _, o := range chain {
		if o == t {
			return nil, fmt.Errorf("object %s: cyclic extend", t.name)
		}
	}

	var fields []Field
	if t.extend != nil {
		bt, err := Underlying(t.extend)
		if err != nil {
			return nil, err
		}
		parent, ok := bt.(*ObjectType)
		if !ok {
			return nil, fmt.Errorf("object %s: cannot extend non-object type %s", t.name, bt.Name())
		}
		inherited, err := parent.resolveFields(append(chain, t))
		if err != nil {
			return nil, err
		}
		fields = append(fields, inherited...)
	}
	for _, f := range t.declared {
		if i := indexOf(fields, f.Name); i >= 0 {
			fields[i] = f
			continue
		}
		fields = append(fields, f)
	}

	filtered := make([]Field, 0, len(fields))
	for _, f := range fields {
		if len(t.only) > 0 && !contains(t.only, f.Name) {
			continue
		}
		if contains(t.exclude, f.Name) {
			continue
		}
		filtered = append(filtered, f)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fields == nil {
		t.fields = filtered
	}
	return t.fields, nil
}

func (t *ObjectType) Load(data any, vctx any) (any, error) {
	if data == nil {
		return nil, t.fail("required", data)
	}
	m, ok := stringMap(data)
	if !ok {
		return nil, t.fail("invalid", data)
	}
	fields, err := t.Fields()
	if err != nil {
		return nil, err
	}

	var b ErrorBuilder
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		v, err := f.Type.Load(m[f.Name], vctx)
		if err := b.CollectAt(f.Name, err); err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	var result any = out
	if t.constructor != nil {
		result, err = t.constructor.Construct(out, vctx)
		if err != nil {
			return nil, err
		}
	}
	return t.validate(result, vctx)
}

func (t *ObjectType) Dump(value any, vctx any) (any, error) {
	if value == nil {
		return nil, t.fail("required", value)
	}
	m, err := attributes(value)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, t.fail("invalid", value)
	}
	fields, err := t.Fields()
	if err != nil {
		return nil, err
	}

	var b ErrorBuilder
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		v, err := f.Type.Dump(lookup(m, f.Name), vctx)
		if err := b.CollectAt(f.Name, err); err != nil {
			return nil, err
		}
		if v != nil {
			out[f.Name] = v
		}
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// List creates a list type of item.
func List(item Type, opts ...Option) Type {
	return &ListType{
		base: newBase(typeName("[", item, "]"), map[string]string{
			"invalid": "Value should be list",
		}, newConfig(opts)),
		item: item,
	}
}

// Dict creates a string-keyed mapping type whose values are value.
func Dict(value Type, opts ...Option) Type {
	return &DictType{
		base: newBase(typeName("{", value, "}"), map[string]string{
			"invalid": "Value should be dict",
		}, newConfig(opts)),
		value: value,
	}
}

func sequence(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv, true
	}
	return reflect.Value{}, false
}

func stringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// attributes exposes a map or struct value as a string-keyed map. It
// returns a nil map for values that are neither.
func attributes(v any) (map[string]any, error) {
	if m, ok := stringMap(v); ok {
		return m, nil
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil, nil
	}
	out := make(map[string]any)
	if err := mapstructure.Decode(rv.Interface(), &out); err != nil {
		return nil, fmt.Errorf("read attributes of %T: %w", v, err)
	}
	return out, nil
}

// lookup finds name exactly, falling back to a case-insensitive match so
// exported Go field names line up with representation keys.
func lookup(m map[string]any, name string) any {
	if v, ok := m[name]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return nil
}

func sortedNames(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func indexOf(fields []Field, name string) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
