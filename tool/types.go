package tool

// Type is a JSON Schema primitive type name.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema is the JSON Schema subset used to declare tool parameters.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Declaration declares a tool's callable signature for the model-facing
// catalog. It must deterministically describe the tool's inputs well enough
// for an external caller to construct valid calls.
type Declaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// ObjectSchema builds an object-typed parameter schema. required names
// must exist in props.
func ObjectSchema(props map[string]*Schema, required ...string) *Schema {
	return &Schema{
		Type:       TypeObject,
		Properties: props,
		Required:   required,
	}
}
