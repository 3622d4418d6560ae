package dto

// Document is the top level of a schema definition file.
type Document struct {
	Types map[string]any `json:"types" yaml:"types"`
}

// Definition is the long form of a type definition. The short form is a
// bare type expression such as "string", "[Book]" or "Person?".
type Definition struct {
	Type       string            `json:"type" mapstructure:"type"`
	Ref        string            `json:"ref" mapstructure:"ref"`
	Items      any               `json:"items" mapstructure:"items"`
	Values     any               `json:"values" mapstructure:"values"`
	Fields     map[string]any    `json:"fields" mapstructure:"fields"`
	Optional   bool              `json:"optional" mapstructure:"optional"`
	Default    any               `json:"default" mapstructure:"default"`
	Extend     string            `json:"extend" mapstructure:"extend"`
	Only       []string          `json:"only" mapstructure:"only"`
	Exclude    []string          `json:"exclude" mapstructure:"exclude"`
	Validators []any             `json:"validators" mapstructure:"validators"`
	Messages   map[string]string `json:"messages" mapstructure:"messages"`
}

// LengthSpec configures a length validator.
type LengthSpec struct {
	Exact *int   `mapstructure:"exact"`
	Min   *int   `mapstructure:"min"`
	Max   *int   `mapstructure:"max"`
	Error string `mapstructure:"error"`
}

// RangeSpec configures a range validator.
type RangeSpec struct {
	Min   any    `mapstructure:"min"`
	Max   any    `mapstructure:"max"`
	Error string `mapstructure:"error"`
}

// RegexpSpec configures a regexp validator. Flags is a combination of the
// letters i, m and s.
type RegexpSpec struct {
	Pattern string `mapstructure:"pattern"`
	Flags   string `mapstructure:"flags"`
	Error   string `mapstructure:"error"`
}

// ChoicesSpec configures any_of and none_of.
type ChoicesSpec struct {
	Values []any  `mapstructure:"values"`
	Error  string `mapstructure:"error"`
}

// UniqueSpec configures a unique validator. Key names the item field used as
// the uniqueness key.
type UniqueSpec struct {
	Key   string `mapstructure:"key"`
	Error string `mapstructure:"error"`
}

// TagSpec configures a tag validator.
type TagSpec struct {
	Tag   string `mapstructure:"tag"`
	Error string `mapstructure:"error"`
}

// PredicateSpec refers to a predicate registered by name.
type PredicateSpec struct {
	Name  string `mapstructure:"name"`
	Error string `mapstructure:"error"`
}
