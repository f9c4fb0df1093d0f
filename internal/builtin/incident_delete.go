package builtin

import (
	"context"

	"github.com/stellarlinkco/deskmcp/internal/incident"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

const deleteIncidentDescription = "Deletes an incident. Destructive: the first call returns the incident for review, and deletion only happens when called again with confirm set to true."

var deleteIncidentSchema = &tool.Schema{
	Type: "object",
	Properties: map[string]any{
		"incident_id": map[string]any{
			"type":        "string",
			"description": "Incident identifier, e.g. INC-1234ABCD.",
			"pattern":     incident.IDPattern,
		},
		"confirm": map[string]any{
			"type":        "boolean",
			"description": "Set to true to confirm the deletion. Omit to preview what would be deleted.",
		},
	},
	Required: []string{"incident_id"},
}

// DeleteIncidentTool removes an incident behind an explicit confirmation step.
type DeleteIncidentTool struct {
	store *incident.Store
}

func NewDeleteIncidentTool(store *incident.Store) *DeleteIncidentTool {
	return &DeleteIncidentTool{store: store}
}

func (t *DeleteIncidentTool) Name() string { return "delete_incident" }

func (t *DeleteIncidentTool) Description() string { return deleteIncidentDescription }

func (t *DeleteIncidentTool) Schema() *tool.Schema { return deleteIncidentSchema }

func (t *DeleteIncidentTool) Metadata() tool.Metadata {
	return metadataFor(t.Name(), deleteIncidentDescription, deleteIncidentSchema, "incident", "incident", "delete")
}

func (t *DeleteIncidentTool) Validate(args map[string]any) tool.ValidationResult {
	result := tool.ValidOK()

	id, present, isString := stringParam(args, "incident_id")
	switch {
	case !present:
		result = result.Combine(tool.Invalid("'incident_id' parameter is required"))
	case !isString:
		result = result.Combine(tool.Invalid("'incident_id' parameter must be a string"))
	case !incident.ValidID(id):
		result = result.Combine(tool.Invalid("Invalid incident ID format. Expected format: INC-XXXXXXXX (e.g., INC-1234ABCD)"))
	}

	if _, present, isBool := boolParam(args, "confirm"); present && !isBool {
		result = result.Combine(tool.Invalid("'confirm' parameter must be a boolean"))
	}

	return result
}

func (t *DeleteIncidentTool) Execute(_ context.Context, _ *tool.Context, args map[string]any) tool.Result {
	id, _, _ := stringParam(args, "incident_id")
	confirm, present, _ := boolParam(args, "confirm")

	found, ok := t.store.Get(id)
	if !ok {
		return tool.JSON(map[string]any{
			"message":     "Incident not found",
			"incident_id": id,
			"deleted":     false,
		})
	}

	if !present {
		return tool.JSON(map[string]any{
			"message":     "Confirmation required: call delete_incident again with confirm set to true to delete this incident",
			"incident_id": id,
			"incident":    found,
			"deleted":     false,
		})
	}
	if !confirm {
		return tool.JSON(map[string]any{
			"message":     "Deletion cancelled by user",
			"incident_id": id,
			"deleted":     false,
		})
	}

	deleted, ok := t.store.Delete(id)
	if !ok {
		// Raced with a concurrent delete between Get and Delete.
		return tool.JSON(map[string]any{
			"message":     "Incident not found",
			"incident_id": id,
			"deleted":     false,
		})
	}
	return tool.JSON(map[string]any{
		"message":          "Incident successfully deleted",
		"incident_id":      id,
		"deleted_incident": deleted,
		"deleted":          true,
	})
}
