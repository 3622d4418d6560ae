package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/mold/pkg/registry"
	"github.com/aretw0/mold/pkg/schema"
)

// GraphOverlay marks a type to emphasize on the graph.
type GraphOverlay struct {
	Focus string
}

type edge struct {
	to      string
	label   string
	extends bool
}

// GenerateMermaid produces a Mermaid flowchart of the references between
// the types of reg. It applies semantic styling:
// - Object: [Rectangle]
// - Anything else (lists, aliases, scalars): (Rounded)
// Field references are labeled with the field name; Extend is dotted.
func GenerateMermaid(reg *registry.Registry, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, name := range reg.Names() {
		t, _ := reg.Lookup(name)
		safeID := sanitizeMermaidID(name)

		opener, closer := "(", ")"
		if _, ok := t.(*schema.ObjectType); ok {
			opener, closer = "[", "]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, name, closer))

		for _, e := range edges(t, "") {
			safeTo := sanitizeMermaidID(e.to)
			arrow := "-->"
			switch {
			case e.extends:
				arrow = "-. extends .->"
			case e.label != "":
				arrow = fmt.Sprintf("-- \"%s\" -->", strings.ReplaceAll(e.label, "\"", "'"))
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}

	if overlay != nil && overlay.Focus != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s focus;\n", sanitizeMermaidID(overlay.Focus)))
	}

	return sb.String()
}

// edges lists the named types t refers to without resolving any of them.
func edges(t schema.Type, label string) []edge {
	switch v := t.(type) {
	case *registry.TypeRef:
		return []edge{{to: v.Ref(), label: label}}
	case *schema.OptionalType:
		return edges(v.Inner(), label)
	case *schema.ValidatedType:
		return edges(v.Inner(), label)
	case *schema.ListType:
		return edges(v.Item(), label)
	case *schema.DictType:
		return edges(v.Value(), label)
	case *schema.ObjectType:
		var out []edge
		if ref, ok := v.Base().(*registry.TypeRef); ok {
			out = append(out, edge{to: ref.Ref(), extends: true})
		}
		for _, f := range v.Declared() {
			name := f.Name
			if label != "" {
				name = label + "." + f.Name
			}
			out = append(out, edges(f.Type, name)...)
		}
		return out
	}
	return nil
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
