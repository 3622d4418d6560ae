/*
Package dsl declares named schema types in YAML or JSON definition documents,
or programmatically with a fluent builder.

A document lists types by name. A definition is either a type expression or
a map:

	types:
	  Person:
	    fields:
	      name: {type: string, validators: [{length: {min: 1}}]}
	      email: {type: string, validators: [{tag: email}]}
	      books: "[Book]"
	  Book:
	    fields:
	      title: string
	      author: Person?
	  Tags:
	    type: list
	    items: string
	    validators: [unique]

Type expressions are scalar names (any, string, integer, float, boolean),
[T] for lists, {T} for string-keyed dicts, T? for optional values, or the name
of another type. Names may be used before they are declared, so types can be
mutually recursive:

	reg, err := dsl.Load("schema.yaml")
	person, _ := reg.Lookup("Person")

The builder produces the same registry from Go:

	b := dsl.New()
	b.Add("Person").Field("name", "string", validators.Length(validators.MinLength(1))).Field("books", "[Book]")
	b.Add("Book").Field("title", "string").Field("author", "Person?")
	reg, err := b.Build()
*/
package dsl
