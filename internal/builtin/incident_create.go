package builtin

import (
	"context"
	"strings"

	"github.com/stellarlinkco/deskmcp/internal/incident"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

const createIncidentDescription = "Creates a new incident in the service desk. Requires a title and a requester; description and priority are optional."

var createIncidentSchema = &tool.Schema{
	Type: "object",
	Properties: map[string]any{
		"title": map[string]any{
			"type":        "string",
			"description": "Short title of the incident.",
			"maxLength":   200,
		},
		"requester": map[string]any{
			"type":        "string",
			"description": "Email or name of the person reporting the incident.",
		},
		"description": map[string]any{
			"type":        "string",
			"description": "Detailed description of the problem.",
			"maxLength":   4000,
		},
		"priority": map[string]any{
			"type":        "string",
			"description": "Priority level. Defaults to Medium.",
			"enum":        incident.ValidPriorities,
		},
	},
	Required: []string{"title", "requester"},
}

// CreateIncidentTool files a new incident in the store.
type CreateIncidentTool struct {
	store *incident.Store
}

func NewCreateIncidentTool(store *incident.Store) *CreateIncidentTool {
	return &CreateIncidentTool{store: store}
}

func (t *CreateIncidentTool) Name() string { return "create_incident" }

func (t *CreateIncidentTool) Description() string { return createIncidentDescription }

func (t *CreateIncidentTool) Schema() *tool.Schema { return createIncidentSchema }

func (t *CreateIncidentTool) Metadata() tool.Metadata {
	return metadataFor(t.Name(), createIncidentDescription, createIncidentSchema, "incident", "incident", "create")
}

func (t *CreateIncidentTool) Validate(args map[string]any) tool.ValidationResult {
	result := tool.ValidOK()

	title, present, isString := stringParam(args, "title")
	if !present {
		result = result.Combine(tool.Invalid("'title' parameter is required"))
	} else if !isString || strings.TrimSpace(title) == "" {
		result = result.Combine(tool.Invalid("'title' parameter must be a non-empty string"))
	}

	requester, present, isString := stringParam(args, "requester")
	if !present {
		result = result.Combine(tool.Invalid("'requester' parameter is required"))
	} else if !isString || strings.TrimSpace(requester) == "" {
		result = result.Combine(tool.Invalid("'requester' parameter must be a non-empty string"))
	}

	if _, present, isString := stringParam(args, "description"); present && !isString {
		result = result.Combine(tool.Invalid("'description' parameter must be a string"))
	}

	if priority, present, isString := stringParam(args, "priority"); present {
		if !isString || !incident.ValidPriority(priority) {
			result = result.Combine(tool.Invalid("Priority must be one of: " + strings.Join(incident.ValidPriorities, ", ")))
		}
	}

	return result
}

func (t *CreateIncidentTool) Execute(_ context.Context, _ *tool.Context, args map[string]any) tool.Result {
	title, _, _ := stringParam(args, "title")
	requester, _, _ := stringParam(args, "requester")
	description, _, _ := stringParam(args, "description")
	priority, _, _ := stringParam(args, "priority")

	created := t.store.Create(title, requester, description, priority)
	return tool.JSON(map[string]any{
		"message":     "Incident created successfully",
		"incident_id": created["incident_id"],
		"incident":    created,
	})
}
