package dsl

import "github.com/aretw0/mold/pkg/schema"

type fieldDecl struct {
	name       string
	expr       string
	validators []schema.Validator
}

// TypeBuilder provides a fluent API for declaring one type. A type is an
// object unless Expr is called.
type TypeBuilder struct {
	name       string
	expr       string
	fields     []fieldDecl
	extend     string
	only       []string
	exclude    []string
	validators []schema.Validator
	optional   bool
	def        any
}

// Expr declares the type with a type expression such as "[string]" or
// "Person", instead of as an object.
func (t *TypeBuilder) Expr(expr string) *TypeBuilder {
	t.expr = expr
	return t
}

// Field adds an object field whose type is given as an expression.
// Validators run after the field's own type loads.
func (t *TypeBuilder) Field(name, expr string, validators ...schema.Validator) *TypeBuilder {
	t.fields = append(t.fields, fieldDecl{name: name, expr: expr, validators: validators})
	return t
}

// Extend inherits the fields of another named object type.
func (t *TypeBuilder) Extend(name string) *TypeBuilder {
	t.extend = name
	return t
}

// Only keeps just the named fields.
func (t *TypeBuilder) Only(names ...string) *TypeBuilder {
	t.only = append(t.only, names...)
	return t
}

// Exclude drops the named fields.
func (t *TypeBuilder) Exclude(names ...string) *TypeBuilder {
	t.exclude = append(t.exclude, names...)
	return t
}

// Validate adds validators run on the whole value.
func (t *TypeBuilder) Validate(validators ...schema.Validator) *TypeBuilder {
	t.validators = append(t.validators, validators...)
	return t
}

// Optional lets nil through, loading it as def.
func (t *TypeBuilder) Optional(def any) *TypeBuilder {
	t.optional = true
	t.def = def
	return t
}

func (t *TypeBuilder) build(c *compilation) (schema.Type, error) {
	var typ schema.Type
	if t.expr != "" {
		inner, err := c.expr(t.expr)
		if err != nil {
			return nil, err
		}
		typ = schema.Validated(inner, t.validators...)
	} else {
		fields := make([]schema.Field, 0, len(t.fields))
		for _, f := range t.fields {
			ft, err := c.expr(f.expr)
			if err != nil {
				return nil, err
			}
			fields = append(fields, schema.Field{Name: f.name, Type: schema.Validated(ft, f.validators...)})
		}

		opts := []schema.Option{schema.WithValidators(t.validators...), schema.WithName(t.name)}
		if t.extend != "" {
			opts = append(opts, schema.Extend(c.ref(t.extend)))
			n := c.nodes[c.current]
			n.Base = t.extend
			c.nodes[c.current] = n
		}
		if len(t.only) > 0 {
			opts = append(opts, schema.Only(t.only...))
		}
		if len(t.exclude) > 0 {
			opts = append(opts, schema.Exclude(t.exclude...))
		}
		typ = schema.Object(fields, opts...)
	}

	if t.optional {
		typ = schema.Optional(typ, t.def)
	}
	return typ, nil
}
