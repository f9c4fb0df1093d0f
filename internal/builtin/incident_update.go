package builtin

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/stellarlinkco/deskmcp/internal/incident"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

const updateIncidentDescription = "Updates fields of an existing incident. Accepts a field_updates object applied last-write-wins."

var updateIncidentSchema = &tool.Schema{
	Type: "object",
	Properties: map[string]any{
		"incident_id": map[string]any{
			"type":        "string",
			"description": "Incident identifier, e.g. INC-1234ABCD.",
			"pattern":     incident.IDPattern,
		},
		"field_updates": map[string]any{
			"type":        "object",
			"description": "Fields to change, keyed by field name. See get_updatable_incident_fields.",
		},
	},
	Required: []string{"incident_id", "field_updates"},
}

// UpdateIncidentTool patches an existing incident.
type UpdateIncidentTool struct {
	store *incident.Store
}

func NewUpdateIncidentTool(store *incident.Store) *UpdateIncidentTool {
	return &UpdateIncidentTool{store: store}
}

func (t *UpdateIncidentTool) Name() string { return "update_incident" }

func (t *UpdateIncidentTool) Description() string { return updateIncidentDescription }

func (t *UpdateIncidentTool) Schema() *tool.Schema { return updateIncidentSchema }

func (t *UpdateIncidentTool) Metadata() tool.Metadata {
	return metadataFor(t.Name(), updateIncidentDescription, updateIncidentSchema, "incident", "incident", "update")
}

func (t *UpdateIncidentTool) Validate(args map[string]any) tool.ValidationResult {
	result := tool.ValidOK()

	id, present, isString := stringParam(args, "incident_id")
	switch {
	case !present:
		result = result.Combine(tool.Invalid("'incident_id' parameter is required"))
	case !isString:
		result = result.Combine(tool.Invalid("'incident_id' parameter must be a string"))
	case !incident.ValidID(id):
		result = result.Combine(tool.Invalid("'incident_id' must be in format INC-XXXXXXXX where X is a hexadecimal digit (0-9, A-F)"))
	}

	updates, present, isObject := objectParam(args, "field_updates")
	switch {
	case !present:
		result = result.Combine(tool.Invalid("'field_updates' parameter is required"))
	case !isObject:
		result = result.Combine(tool.Invalid("'field_updates' parameter must be an object"))
	case len(updates) == 0:
		result = result.Combine(tool.Invalid("'field_updates' must contain at least one field"))
	default:
		if p, ok := updates["priority"].(string); ok && !incident.ValidPriority(p) {
			result = result.Combine(tool.Invalid("Priority must be one of: " + strings.Join(incident.ValidPriorities, ", ")))
		}
		if s, ok := updates["status"].(string); ok && !incident.ValidStatus(s) {
			result = result.Combine(tool.Invalid("Status must be one of: " + strings.Join(incident.ValidStatuses, ", ")))
		}
	}

	return result
}

func (t *UpdateIncidentTool) Execute(_ context.Context, _ *tool.Context, args map[string]any) tool.Result {
	id, _, _ := stringParam(args, "incident_id")
	updates, _, _ := objectParam(args, "field_updates")

	updated, ok := t.store.Update(id, updates)
	if !ok {
		return tool.JSON(map[string]any{
			"success":    false,
			"error_code": errorCodeNotFound,
			"message":    incident.NotFoundMessage(id),
		})
	}

	fields := make([]string, 0, len(updates))
	for f := range updates {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return tool.JSON(map[string]any{
		"success":        true,
		"message":        fmt.Sprintf("Incident updated successfully with %d field(s)", len(fields)),
		"incident_id":    id,
		"updated_fields": fields,
		"incident":       updated,
	})
}
