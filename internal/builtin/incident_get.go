package builtin

import (
	"context"

	"github.com/stellarlinkco/deskmcp/internal/incident"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

const getIncidentDescription = "Retrieves an incident by its ID in the INC-XXXXXXXX format."

// errorCodeNotFound marks the business outcome for lookups of unknown
// incidents. It travels in the payload, not in the protocol error flag.
const errorCodeNotFound = "INCIDENT_NOT_FOUND"

var getIncidentSchema = &tool.Schema{
	Type: "object",
	Properties: map[string]any{
		"incident_id": map[string]any{
			"type":        "string",
			"description": "Incident identifier, e.g. INC-1234ABCD.",
			"pattern":     incident.IDPattern,
		},
	},
	Required: []string{"incident_id"},
}

// GetIncidentTool looks up a single incident.
type GetIncidentTool struct {
	store *incident.Store
}

func NewGetIncidentTool(store *incident.Store) *GetIncidentTool {
	return &GetIncidentTool{store: store}
}

func (t *GetIncidentTool) Name() string { return "get_incident" }

func (t *GetIncidentTool) Description() string { return getIncidentDescription }

func (t *GetIncidentTool) Schema() *tool.Schema { return getIncidentSchema }

func (t *GetIncidentTool) Metadata() tool.Metadata {
	return metadataFor(t.Name(), getIncidentDescription, getIncidentSchema, "incident", "incident", "read")
}

func (t *GetIncidentTool) Validate(args map[string]any) tool.ValidationResult {
	id, present, isString := stringParam(args, "incident_id")
	if !present {
		return tool.Invalid("'incident_id' parameter is required")
	}
	if !isString {
		return tool.Invalid("'incident_id' parameter must be a string")
	}
	if !incident.ValidID(id) {
		return tool.Invalid("Invalid incident ID format. Expected format: INC-XXXXXXXX (e.g., INC-1234ABCD)")
	}
	return tool.ValidOK()
}

func (t *GetIncidentTool) Execute(_ context.Context, _ *tool.Context, args map[string]any) tool.Result {
	id, _, _ := stringParam(args, "incident_id")

	found, ok := t.store.Get(id)
	if !ok {
		return tool.JSON(map[string]any{
			"success":    false,
			"error_code": errorCodeNotFound,
			"message":    incident.NotFoundMessage(id),
		})
	}
	return tool.JSON(map[string]any{
		"success":     true,
		"incident_id": id,
		"incident":    found,
	})
}
