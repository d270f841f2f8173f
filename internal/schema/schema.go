// Package schema derives Anthropic tool input schemas from Go struct types.
package schema

import (
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// Generate produces an anthropic.ToolInputSchemaParam from a Go struct type T.
// It uses struct tags (json, jsonschema) to derive the JSON Schema.
func Generate[T any]() anthropic.ToolInputSchemaParam {
	var zero T
	reflected := jsonschema.Reflect(&zero)

	root := resolveRef(reflected, reflected.Definitions)
	seen := map[string]bool{refName(reflected.Ref): true}

	return anthropic.ToolInputSchemaParam{
		Properties: properties(root, reflected.Definitions, seen),
		Required:   root.Required,
	}
}

// refName extracts the definition key from a "#/$defs/Name" reference.
func refName(ref string) string {
	return ref[strings.LastIndex(ref, "/")+1:]
}

// resolveRef follows a schema's $ref into the definitions table by name.
// Schemas without a reference, or with a dangling one, are returned as-is.
func resolveRef(s *jsonschema.Schema, defs jsonschema.Definitions) *jsonschema.Schema {
	if s.Ref == "" || defs == nil {
		return s
	}
	if def, ok := defs[refName(s.Ref)]; ok {
		return def
	}
	return s
}

// properties flattens the ordered property map into the plain
// map[string]any shape the Anthropic API expects.
func properties(s *jsonschema.Schema, defs jsonschema.Definitions, seen map[string]bool) map[string]any {
	if s.Properties == nil {
		return nil
	}
	props := make(map[string]any)
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		props[pair.Key] = property(pair.Value, defs, seen)
	}
	return props
}

func property(s *jsonschema.Schema, defs jsonschema.Definitions, seen map[string]bool) map[string]any {
	if s.Ref != "" {
		name := refName(s.Ref)
		// A self-referencing type degrades to a plain object instead of
		// recursing forever.
		if seen[name] {
			return map[string]any{"type": "object"}
		}
		if def, ok := defs[name]; ok {
			seen[name] = true
			m := property(def, defs, seen)
			delete(seen, name)
			return m
		}
	}

	m := make(map[string]any)

	if s.Type != "" {
		m["type"] = s.Type
	}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if s.Default != nil {
		m["default"] = s.Default
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}

	// Nullable (pointer) fields reflect as anyOf with a null member.
	for _, sub := range s.AnyOf {
		if sub.Type != "null" && sub.Type != "" {
			m["type"] = sub.Type
			break
		}
	}

	if s.Properties != nil {
		m["type"] = "object"
		m["properties"] = properties(s, defs, seen)
		if len(s.Required) > 0 {
			m["required"] = s.Required
		}
	}
	if s.Items != nil {
		m["items"] = property(s.Items, defs, seen)
	}
	return m
}
