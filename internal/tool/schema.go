package tool

import "encoding/json"

// Schema captures the subset of JSON Schema we use to describe tool input.
type Schema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	Required   []string       `json:"required,omitempty"`
	Enum       []any          `json:"enum,omitempty"`
	Pattern    string         `json:"pattern,omitempty"`
	Minimum    *float64       `json:"minimum,omitempty"`
	Maximum    *float64       `json:"maximum,omitempty"`
	Items      *Schema        `json:"items,omitempty"`
}

// JSON renders the schema as a JSON string, the form Metadata carries.
func (s *Schema) JSON() string {
	if s == nil {
		return `{"type":"object"}`
	}
	data, err := json.Marshal(s)
	if err != nil {
		return `{"type":"object"}`
	}
	return string(data)
}

// Map renders the schema as the generic map form the MCP SDK expects.
func (s *Schema) Map() map[string]any {
	if s == nil {
		return map[string]any{"type": "object"}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{"type": "object"}
	}
	return m
}
