package builtin

import (
	"context"
	"fmt"

	"github.com/stellarlinkco/deskmcp/internal/incident"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

const fieldsSchemaDescription = "Returns the form field catalog for a service desk model (request, service_catalog, or problem)."

var fieldsSchemaSchema = &tool.Schema{
	Type: "object",
	Properties: map[string]any{
		"model": map[string]any{
			"type":        "string",
			"description": "Which form to describe.",
			"enum":        incident.Models,
		},
	},
	Required: []string{"model"},
}

// FieldsSchemaTool describes the request form fields for a model.
type FieldsSchemaTool struct{}

func NewFieldsSchemaTool() *FieldsSchemaTool { return &FieldsSchemaTool{} }

func (t *FieldsSchemaTool) Name() string { return "get_fields_schema" }

func (t *FieldsSchemaTool) Description() string { return fieldsSchemaDescription }

func (t *FieldsSchemaTool) Schema() *tool.Schema { return fieldsSchemaSchema }

func (t *FieldsSchemaTool) Metadata() tool.Metadata {
	return metadataFor(t.Name(), fieldsSchemaDescription, fieldsSchemaSchema, "metadata", "incident", "schema")
}

func (t *FieldsSchemaTool) Validate(args map[string]any) tool.ValidationResult {
	model, present, isString := stringParam(args, "model")
	if !present {
		return tool.Invalid("Model parameter is required")
	}
	if !isString || !incident.ValidModel(model) {
		return tool.Invalid("Model must be one of: request, service_catalog, problem")
	}
	return tool.ValidOK()
}

func (t *FieldsSchemaTool) Execute(_ context.Context, _ *tool.Context, args map[string]any) tool.Result {
	model, _, _ := stringParam(args, "model")

	fields, err := incident.FieldsForModel(model)
	if err != nil {
		return tool.Error(fmt.Sprintf("Failed to get form fields for model %s: %v", model, err))
	}
	return tool.JSON(map[string]any{
		"model":      model,
		"attributes": fields,
	})
}
