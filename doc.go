/*
Package mold describes data: how a plain representation (scalars, lists and
string-keyed maps, as produced by JSON or YAML decoders) becomes a native Go
value and back.

# Concept

A schema is built from Types (package schema) decorated with Validators
(package validators). Loading validates on the way in; dumping does not.
Failures of composite values are never reported one at a time: every nested
problem is collected into a single *schema.ValidationError whose messages
mirror the shape of the input.

Schemas that refer to each other are built through a registry (package
registry), which hands out references resolved on first use.

Schemas can also be declared in YAML or JSON definition files (package dsl)
and checked from the command line with the mold CLI.

# Usage

	person := schema.Object([]schema.Field{
		{Name: "name", Type: schema.String(schema.WithValidators(
			validators.Length(validators.MinLength(1)),
		))},
		{Name: "email", Type: schema.String(schema.WithValidators(validators.Tag("email")))},
	})

	codec := mold.New(person, mold.WithLogger(logger))
	value, err := codec.LoadJSON(ctx, raw)
	if ve, ok := schema.AsValidationError(err); ok {
		for path, msgs := range ve.Flatten() {
			fmt.Println(path, msgs)
		}
	}

# Observability

Codecs accept observability.Hooks, invoked after every load and dump.
observability.NewMetrics turns them into Prometheus series.
*/
package mold
