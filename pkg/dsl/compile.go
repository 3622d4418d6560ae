package dsl

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/aretw0/mold/internal/compiler"
	"github.com/aretw0/mold/internal/dto"
	"github.com/aretw0/mold/internal/validator"
	"github.com/aretw0/mold/pkg/callable"
	"github.com/aretw0/mold/pkg/registry"
	"github.com/aretw0/mold/pkg/schema"
)

// ErrInvalidDefinition is returned for definitions that cannot be compiled.
var ErrInvalidDefinition = errors.New("invalid definition")

var scalars = map[string]func(...schema.Option) schema.Type{
	"any":     schema.Any,
	"string":  schema.String,
	"integer": schema.Integer,
	"float":   schema.Float,
	"boolean": schema.Boolean,
}

// compilation turns definitions into types registered in one registry.
type compilation struct {
	reg        *registry.Registry
	parser     *compiler.Parser
	predicates map[string]callable.Predicate
	logger     *slog.Logger

	current string
	nodes   map[string]validator.Node
	pending map[string]schema.Type
	order   []string
}

func newCompilation(cfg *config) *compilation {
	return &compilation{
		reg:        cfg.registry,
		parser:     compiler.NewParser(),
		predicates: cfg.predicates,
		logger:     cfg.logger,
		nodes:      make(map[string]validator.Node),
		pending:    make(map[string]schema.Type),
	}
}

func invalid(name, format string, args ...any) error {
	return fmt.Errorf("%w: type %s: %s", ErrInvalidDefinition, name, fmt.Sprintf(format, args...))
}

// define compiles one top-level definition. Nothing is registered until
// commit succeeds.
func (c *compilation) define(name string, raw any) error {
	if err := c.begin(name); err != nil {
		return err
	}
	t, err := c.compile(raw, true)
	if err != nil {
		return err
	}
	c.finish(name, t)
	return nil
}

// begin starts recording the references of name.
func (c *compilation) begin(name string) error {
	if _, exists := c.nodes[name]; exists {
		return invalid(name, "declared twice")
	}
	c.current = name
	c.nodes[name] = validator.Node{}
	return nil
}

// finish queues t for registration under name.
func (c *compilation) finish(name string, t schema.Type) {
	c.setBase(t)
	c.pending[name] = t
	c.order = append(c.order, name)
}

func (c *compilation) setBase(t schema.Type) {
	for {
		w, ok := t.(interface{ Inner() schema.Type })
		if !ok {
			break
		}
		t = w.Inner()
	}
	if ref, ok := t.(*registry.TypeRef); ok {
		n := c.nodes[c.current]
		n.Base = ref.Ref()
		c.nodes[c.current] = n
	}
}

func (c *compilation) ref(name string) *registry.TypeRef {
	n := c.nodes[c.current]
	n.Refs = append(n.Refs, name)
	c.nodes[c.current] = n
	return c.reg.Get(name)
}

// commit checks references across all definitions and registers them.
func (c *compilation) commit() error {
	if err := validator.ValidateRefs(c.nodes, c.reg.Names()...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	for _, name := range c.order {
		if _, exists := c.reg.Lookup(name); exists {
			return fmt.Errorf("%w: %s", registry.ErrAlreadyRegistered, name)
		}
	}
	for _, name := range c.order {
		if _, err := c.reg.Add(name, c.pending[name]); err != nil {
			return err
		}
	}
	c.logger.Debug("definitions compiled", "types", len(c.order))
	return nil
}

func (c *compilation) compile(raw any, top bool) (schema.Type, error) {
	switch v := raw.(type) {
	case string:
		return c.expr(v)
	case nil:
		return nil, invalid(c.current, "empty definition")
	}
	def, err := c.parser.Definition(raw)
	if err != nil {
		return nil, invalid(c.current, "%v", err)
	}
	return c.definition(def, top)
}

// expr parses the short form: a scalar name, [T] for lists, {T} for dicts,
// a trailing ? for optional values, or the name of another type.
func (c *compilation) expr(s string) (schema.Type, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, invalid(c.current, "empty type expression")
	case strings.HasSuffix(s, "?"):
		inner, err := c.expr(s[:len(s)-1])
		if err != nil {
			return nil, err
		}
		return schema.Optional(inner, nil), nil
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		item, err := c.expr(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return schema.List(item), nil
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		value, err := c.expr(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return schema.Dict(value), nil
	}
	if ctor, ok := scalars[s]; ok {
		return ctor(), nil
	}
	if strings.ContainsAny(s, "[]{}? ") {
		return nil, invalid(c.current, "malformed type expression %q", s)
	}
	return c.ref(s), nil
}

func (c *compilation) definition(def *dto.Definition, top bool) (schema.Type, error) {
	vs, err := c.validators(def.Validators)
	if err != nil {
		return nil, err
	}
	opts := []schema.Option{schema.WithValidators(vs...)}
	if len(def.Messages) > 0 {
		opts = append(opts, schema.WithMessages(def.Messages))
	}

	kind := def.Type
	if kind == "" && (def.Fields != nil || def.Extend != "") {
		kind = "object"
	}

	var t schema.Type
	switch {
	case def.Ref != "":
		if kind != "" {
			return nil, invalid(c.current, "ref cannot be combined with type %q", kind)
		}
		if len(def.Messages) > 0 {
			return nil, invalid(c.current, "ref cannot be combined with messages")
		}
		t = schema.Validated(c.ref(def.Ref), vs...)
	case kind == "list":
		if def.Items == nil {
			return nil, invalid(c.current, "list requires items")
		}
		item, err := c.compile(def.Items, false)
		if err != nil {
			return nil, err
		}
		t = schema.List(item, opts...)
	case kind == "dict":
		if def.Values == nil {
			return nil, invalid(c.current, "dict requires values")
		}
		value, err := c.compile(def.Values, false)
		if err != nil {
			return nil, err
		}
		t = schema.Dict(value, opts...)
	case kind == "object":
		t, err = c.object(def, opts, top)
		if err != nil {
			return nil, err
		}
	case scalars[kind] != nil:
		t = scalars[kind](opts...)
	case kind == "":
		return nil, invalid(c.current, "missing type")
	default:
		// A type expression such as "[string]" or "Person" in long form.
		if len(def.Messages) > 0 {
			return nil, invalid(c.current, "messages cannot be combined with type expression %q", kind)
		}
		inner, err := c.expr(kind)
		if err != nil {
			return nil, err
		}
		t = schema.Validated(inner, vs...)
	}

	if def.Optional {
		t = schema.Optional(t, def.Default)
	}
	return t, nil
}

func (c *compilation) object(def *dto.Definition, opts []schema.Option, top bool) (schema.Type, error) {
	names := make([]string, 0, len(def.Fields))
	for name := range def.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]schema.Field, 0, len(names))
	for _, name := range names {
		ft, err := c.compile(def.Fields[name], false)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		fields = append(fields, schema.Field{Name: name, Type: ft})
	}

	if top {
		opts = append(opts, schema.WithName(c.current))
	}
	if def.Extend != "" {
		opts = append(opts, schema.Extend(c.ref(def.Extend)))
		if top {
			n := c.nodes[c.current]
			n.Base = def.Extend
			c.nodes[c.current] = n
		}
	}
	if len(def.Only) > 0 {
		opts = append(opts, schema.Only(def.Only...))
	}
	if len(def.Exclude) > 0 {
		opts = append(opts, schema.Exclude(def.Exclude...))
	}
	return schema.Object(fields, opts...), nil
}
