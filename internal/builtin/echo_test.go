package builtin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stellarlinkco/deskmcp/internal/tool"
)

func decodePayload(t *testing.T, res tool.Result) map[string]any {
	t.Helper()
	if res.IsError {
		t.Fatalf("unexpected error result: %s", res.FirstText())
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(res.FirstText()), &payload); err != nil {
		t.Fatalf("payload is not JSON: %v\n%s", err, res.FirstText())
	}
	return payload
}

func TestEchoRoundTrip(t *testing.T) {
	echo := NewEchoTool()
	args := map[string]any{"text": "Hello, World!"}

	if vr := echo.Validate(args); !vr.Valid {
		t.Fatalf("validation failed: %s", vr.FormattedErrors())
	}
	res := echo.Execute(context.Background(), tool.NewContext("s", "r"), args)
	if res.IsError {
		t.Fatal("echo must not error on valid input")
	}
	if got := res.FirstText(); got != "Echo: Hello, World!" {
		t.Fatalf("output = %q", got)
	}
}

func TestEchoValidation(t *testing.T) {
	echo := NewEchoTool()

	cases := []struct {
		name    string
		args    map[string]any
		wantErr string
	}{
		{"missing", map[string]any{}, "'text' parameter is required"},
		{"nil value", map[string]any{"text": nil}, "'text' parameter is required"},
		{"wrong type", map[string]any{"text": 42}, "'text' parameter must be a string"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vr := echo.Validate(tc.args)
			if vr.Valid {
				t.Fatal("expected invalid")
			}
			if vr.FormattedErrors() != tc.wantErr {
				t.Fatalf("errors = %q, want %q", vr.FormattedErrors(), tc.wantErr)
			}
		})
	}
}

func TestEchoBlankTextWarns(t *testing.T) {
	echo := NewEchoTool()
	vr := echo.Validate(map[string]any{"text": "   "})
	if !vr.Valid {
		t.Fatal("blank text must stay valid")
	}
	if !vr.HasWarnings() || vr.Warnings[0] != "Text parameter is empty" {
		t.Fatalf("warnings = %v", vr.Warnings)
	}
}
