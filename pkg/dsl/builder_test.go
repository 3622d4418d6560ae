package dsl

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aretw0/mold/pkg/schema"
	"github.com/aretw0/mold/pkg/validators"
)

func TestBuilder_Library(t *testing.T) {
	// 1. Declare the types using the builder
	b := New()

	b.Add("Person").
		Field("name", "string", validators.Length(validators.MinLength(1))).
		Field("books", "[Book]?")

	b.Add("Book").
		Field("title", "string").
		Field("author", "Person?").
		Field("year", "integer?")

	b.Add("BookSummary").
		Extend("Book").
		Exclude("author")

	b.Add("Tags").
		Expr("[string]").
		Validate(validators.Unique())

	// 2. Compile to a registry
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	want := []string{"Book", "BookSummary", "Person", "Tags"}
	if names := reg.Names(); !reflect.DeepEqual(names, want) {
		t.Fatalf("Expected types %v, got %v", want, names)
	}

	// 3. Verify loading through the references
	person, _ := reg.Lookup("Person")
	v, err := person.Load(map[string]any{
		"name":  "Ada",
		"books": []any{map[string]any{"title": "Notes"}},
	}, nil)
	if err != nil {
		t.Fatalf("Load(Person) failed: %v", err)
	}
	books := v.(map[string]any)["books"].([]any)
	if books[0].(map[string]any)["title"] != "Notes" {
		t.Errorf("Expected nested book title 'Notes', got %v", books[0])
	}

	// 4. Field validators run after the field type
	_, err = person.Load(map[string]any{"name": ""}, nil)
	ve, ok := schema.AsValidationError(err)
	if !ok {
		t.Fatalf("Expected a validation error, got %v", err)
	}
	if got := ve.Flatten()["name"]; !reflect.DeepEqual(got, []string{"Length should be at least 1"}) {
		t.Errorf("Unexpected name errors: %v", got)
	}

	// 5. Type validators run on the whole value
	tags, _ := reg.Lookup("Tags")
	if err := schema.Validate(tags, []any{"a", "a"}, nil); err == nil {
		t.Error("Expected duplicate tags to fail")
	}

	// 6. Extended objects keep the declared field order of their base
	summary, _ := reg.Lookup("BookSummary")
	fields, err := summary.(*schema.ObjectType).Fields()
	if err != nil {
		t.Fatalf("Fields() failed: %v", err)
	}
	if len(fields) != 2 || fields[0].Name != "title" || fields[1].Name != "year" {
		t.Errorf("Unexpected summary fields: %+v", fields)
	}
}

func TestBuilder_AddReturnsSameBuilder(t *testing.T) {
	b := New()
	first := b.Add("Person").Field("name", "string")
	second := b.Add("Person").Field("age", "integer")

	if first != second {
		t.Fatal("Add should return the existing builder for a known name")
	}

	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	person, _ := reg.Lookup("Person")
	fields, _ := person.(*schema.ObjectType).Fields()
	if len(fields) != 2 {
		t.Errorf("Expected 2 fields, got %d", len(fields))
	}
}

func TestBuilder_Optional(t *testing.T) {
	b := New()
	b.Add("Count").Expr("integer").Optional(0)

	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	count, _ := reg.Lookup("Count")
	v, err := count.Load(nil, nil)
	if err != nil || v != 0 {
		t.Errorf("Load(nil) = %v, %v; want 0", v, err)
	}
}

func TestBuilder_Only(t *testing.T) {
	b := New()
	b.Add("Book").Field("title", "string").Field("year", "integer")
	b.Add("Title").Extend("Book").Only("title")

	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	title, _ := reg.Lookup("Title")
	v, err := title.Load(map[string]any{"title": "Notes", "year": "ignored"}, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(v, map[string]any{"title": "Notes"}) {
		t.Errorf("Unexpected value %v", v)
	}
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder)
	}{
		{"dangling reference", func(b *Builder) {
			b.Add("Order").Field("customer", "Customer")
		}},
		{"malformed expression", func(b *Builder) {
			b.Add("Order").Field("items", "[Item")
		}},
		{"base cycle", func(b *Builder) {
			b.Add("A").Extend("B")
			b.Add("B").Extend("A")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			tt.build(b)
			if _, err := b.Build(); !errors.Is(err, ErrInvalidDefinition) {
				t.Errorf("Expected ErrInvalidDefinition, got %v", err)
			}
		})
	}
}
