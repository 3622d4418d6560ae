// Package validators is the standard library of value checks used by schema
// types.
//
// Every validator is configured once at construction and is safe to reuse.
// Messages can be replaced per instance with WithError, which covers every
// key the validator reports for a violated rule, or per key with
// WithMessages:
//
//	age := schema.Integer(schema.WithValidators(
//	    validators.Range(validators.Min(0), validators.Max(150)),
//	))
//	tags := schema.List(schema.String(), schema.WithValidators(
//	    validators.Unique(validators.WithError("Tag {data} is repeated")),
//	    validators.Each(validators.Length(validators.MinLength(1))),
//	))
//
// Each is the only validator that does not stop at the first problem: it
// reports every failing item keyed by its index.
package validators
