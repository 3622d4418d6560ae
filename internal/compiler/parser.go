package compiler

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/mold/internal/dto"
)

// Format identifies the encoding of a definition document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension, defaulting to YAML.
func FormatOf(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// Parser is responsible for converting raw bytes into definitions.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a definition document.
func (p *Parser) Parse(data []byte, format Format) (*dto.Document, error) {
	var doc dto.Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse json document: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if len(doc.Types) == 0 {
		return nil, fmt.Errorf("document declares no types")
	}
	return &doc, nil
}

// Definition decodes the long form of a type definition.
func (p *Parser) Definition(raw any) (*dto.Definition, error) {
	var def dto.Definition
	if err := p.Decode(raw, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// Decode decodes raw into out, rejecting keys out does not declare.
func (p *Parser) Decode(raw any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
