package builtin

import (
	"context"
	"strings"

	"github.com/stellarlinkco/deskmcp/internal/tool"
)

const echoDescription = "Echoes back the provided text. Useful for testing the tool invocation path end to end."

var echoSchema = &tool.Schema{
	Type: "object",
	Properties: map[string]any{
		"text": map[string]any{
			"type":        "string",
			"description": "The text to echo back.",
		},
	},
	Required: []string{"text"},
}

// EchoTool returns its input prefixed with "Echo: ".
type EchoTool struct{}

func NewEchoTool() *EchoTool { return &EchoTool{} }

func (t *EchoTool) Name() string { return "echo" }

func (t *EchoTool) Description() string { return echoDescription }

func (t *EchoTool) Schema() *tool.Schema { return echoSchema }

func (t *EchoTool) Metadata() tool.Metadata {
	return metadataFor(t.Name(), echoDescription, echoSchema, "utility", "demo", "echo")
}

func (t *EchoTool) Validate(args map[string]any) tool.ValidationResult {
	text, present, isString := stringParam(args, "text")
	if !present {
		return tool.Invalid("'text' parameter is required")
	}
	if !isString {
		return tool.Invalid("'text' parameter must be a string")
	}
	if strings.TrimSpace(text) == "" {
		return tool.ValidWithWarnings("Text parameter is empty")
	}
	return tool.ValidOK()
}

func (t *EchoTool) Execute(_ context.Context, _ *tool.Context, args map[string]any) tool.Result {
	text, _, _ := stringParam(args, "text")
	return tool.Text("Echo: " + text)
}
