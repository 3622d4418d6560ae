// Package schema provides the building blocks for describing data: Types
// that load a plain representation into native values (validating it on the
// way) and dump native values back, and the structured error model shared by
// every validator.
//
// Basic usage:
//
//	person := schema.Object([]schema.Field{
//	    {Name: "name", Type: schema.String(schema.WithValidators(validators.Length(validators.MinLength(1))))},
//	    {Name: "tags", Type: schema.List(schema.String())},
//	    {Name: "age", Type: schema.Optional(schema.Integer(), 0)},
//	})
//
//	value, err := person.Load(map[string]any{"name": "", "tags": []any{"a", 3}}, nil)
//	if ve, ok := schema.AsValidationError(err); ok {
//	    // ve.Messages is a Tree mirroring the input:
//	    // {"name": ["Length should be at least 1"], "tags": {1: ["Value should be string"]}}
//	}
//
// Failures of composite values are never reported one at a time. An
// ErrorBuilder collects every nested failure keyed by index or field name and
// reports them as a single *ValidationError.
//
// Message templates are resolved through ErrorMessages, which substitutes
// {name} placeholders and leaves unknown placeholders untouched.
package schema
