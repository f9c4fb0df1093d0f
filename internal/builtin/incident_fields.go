package builtin

import (
	"context"

	"github.com/stellarlinkco/deskmcp/internal/incident"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

const updatableFieldsDescription = "Lists the incident fields update_incident accepts, with their types and allowed values."

// UpdatableFieldsTool exposes the update field catalog. No arguments.
type UpdatableFieldsTool struct{}

func NewUpdatableFieldsTool() *UpdatableFieldsTool { return &UpdatableFieldsTool{} }

func (t *UpdatableFieldsTool) Name() string { return "get_updatable_incident_fields" }

func (t *UpdatableFieldsTool) Description() string { return updatableFieldsDescription }

func (t *UpdatableFieldsTool) Schema() *tool.Schema {
	return &tool.Schema{Type: "object"}
}

func (t *UpdatableFieldsTool) Metadata() tool.Metadata {
	return metadataFor(t.Name(), updatableFieldsDescription, t.Schema(), "metadata", "incident", "schema")
}

func (t *UpdatableFieldsTool) Validate(map[string]any) tool.ValidationResult {
	return tool.ValidOK()
}

func (t *UpdatableFieldsTool) Execute(context.Context, *tool.Context, map[string]any) tool.Result {
	return tool.JSON(map[string]any{"attributes": incident.UpdatableFields})
}
