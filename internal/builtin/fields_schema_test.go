package builtin

import (
	"context"
	"strings"
	"testing"
)

func TestUpdatableFieldsPayload(t *testing.T) {
	uf := NewUpdatableFieldsTool()
	if vr := uf.Validate(nil); !vr.Valid {
		t.Fatal("no-arg tool must accept nil args")
	}

	payload := decodePayload(t, uf.Execute(context.Background(), nil, nil))
	attrs, ok := payload["attributes"].([]any)
	if !ok || len(attrs) != 4 {
		t.Fatalf("attributes = %v", payload["attributes"])
	}
	first := attrs[0].(map[string]any)
	if first["name"] != "title" || first["mutability"] != "readWrite" {
		t.Fatalf("first attribute = %v", first)
	}
}

func TestFieldsSchemaValidation(t *testing.T) {
	fs := NewFieldsSchemaTool()

	vr := fs.Validate(map[string]any{})
	if vr.Valid || vr.FormattedErrors() != "Model parameter is required" {
		t.Fatalf("errors = %q", vr.FormattedErrors())
	}

	vr = fs.Validate(map[string]any{"model": "asset"})
	if vr.Valid || vr.FormattedErrors() != "Model must be one of: request, service_catalog, problem" {
		t.Fatalf("errors = %q", vr.FormattedErrors())
	}

	if vr := fs.Validate(map[string]any{"model": "request"}); !vr.Valid {
		t.Fatalf("request model rejected: %s", vr.FormattedErrors())
	}
}

func TestFieldsSchemaRequestModel(t *testing.T) {
	fs := NewFieldsSchemaTool()
	payload := decodePayload(t, fs.Execute(context.Background(), nil, map[string]any{"model": "request"}))

	if payload["model"] != "request" {
		t.Fatalf("model = %v", payload["model"])
	}
	attrs, ok := payload["attributes"].([]any)
	if !ok || len(attrs) == 0 {
		t.Fatalf("attributes = %v", payload["attributes"])
	}
	names := map[string]bool{}
	for _, a := range attrs {
		names[a.(map[string]any)["name"].(string)] = true
	}
	if !names["Requester"] || !names["Subject"] {
		t.Fatalf("required fields missing from catalog: %v", names)
	}
}

func TestFieldsSchemaUnsupportedModel(t *testing.T) {
	fs := NewFieldsSchemaTool()
	res := fs.Execute(context.Background(), nil, map[string]any{"model": "problem"})
	if !res.IsError {
		t.Fatal("unsupported model must produce an error result")
	}
	text := res.FirstText()
	if !strings.Contains(text, "Failed to get form fields for model problem") || !strings.Contains(text, "Unsupported model: problem") {
		t.Fatalf("error text = %q", text)
	}
}
