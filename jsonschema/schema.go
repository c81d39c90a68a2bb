// Package jsonschema holds the JSON Schema document model that schemas are
// projected into for export.
package jsonschema

// Draft is the $schema URI stamped on exported root documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type string   `json:"type,omitempty"`
	Enum []string `json:"enum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`
}

// String returns a schema of type string.
func String() *Schema { return &Schema{Type: "string"} }

// StringEnum returns a string schema restricted to values.
func StringEnum[E ~string](values []E) *Schema {
	enum := make([]string, len(values))
	for i, v := range values {
		enum[i] = string(v)
	}
	return &Schema{Type: "string", Enum: enum}
}

// ArrayOf returns an array schema whose items follow item.
func ArrayOf(item *Schema) *Schema { return &Schema{Type: "array", Items: item} }
