package validator

import (
	"fmt"
	"sort"
	"strings"
)

// Node lists what one named type depends on.
type Node struct {
	// Refs are every name the definition mentions.
	Refs []string
	// Base is the name the type takes its fields or identity from: the
	// extended type of an object, or the target of an alias. Bases are
	// resolved eagerly when the type is first used, so they must not cycle.
	Base string
}

// ValidateRefs checks that every referenced name is either declared in
// nodes or listed in known, and that no chain of bases loops back on itself.
func ValidateRefs(nodes map[string]Node, known ...string) error {
	declared := make(map[string]bool, len(nodes)+len(known))
	for _, name := range known {
		declared[name] = true
	}
	for name := range nodes {
		declared[name] = true
	}

	var errors []string
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, ref := range nodes[name].Refs {
			if !declared[ref] {
				errors = append(errors, fmt.Sprintf("Missing type '%s' referenced by '%s'", ref, name))
			}
		}
	}

	reported := make(map[string]bool)
	for _, name := range names {
		if reported[name] {
			continue
		}
		visited := map[string]bool{name: true}
		path := []string{name}
		for current := nodes[name].Base; current != ""; current = nodes[current].Base {
			path = append(path, current)
			if visited[current] {
				if !reported[current] {
					errors = append(errors, fmt.Sprintf("Cyclic base chain: %s", strings.Join(path, " -> ")))
				}
				for _, p := range path {
					reported[p] = true
				}
				break
			}
			visited[current] = true
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}
