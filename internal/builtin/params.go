// Package builtin bundles the demo tools shipped with the server: echo, time,
// mock weather, incident CRUD, and the field-schema introspection tools.
// Manifest assembles them for discovery.
package builtin

import "github.com/stellarlinkco/deskmcp/internal/tool"

// stringParam extracts a string argument. present reports whether the key
// exists with a non-nil value; isString whether the value is a string.
func stringParam(args map[string]any, key string) (value string, present, isString bool) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", false, false
	}
	s, ok := raw.(string)
	return s, true, ok
}

// boolParam extracts a bool argument with the same present/typed split.
func boolParam(args map[string]any, key string) (value, present, isBool bool) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return false, false, false
	}
	b, ok := raw.(bool)
	return b, true, ok
}

// objectParam extracts a nested object argument.
func objectParam(args map[string]any, key string) (value map[string]any, present, isObject bool) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, false, false
	}
	m, ok := raw.(map[string]any)
	return m, true, ok
}

func metadataFor(name, description string, schema *tool.Schema, category string, tags ...string) tool.Metadata {
	return tool.Metadata{
		Name:        name,
		Description: description,
		Version:     tool.DefaultVersion,
		Category:    category,
		Schema:      schema.JSON(),
		Tags:        tags,
	}
}
