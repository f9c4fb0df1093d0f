package builtin

import (
	"context"
	"time"

	"github.com/stellarlinkco/deskmcp/internal/tool"
)

const timeDescription = "Returns the current server time, either as an ISO timestamp or in a human readable format."

const (
	formatISO      = "iso"
	formatReadable = "readable"

	readableLayout = "2006-01-02 15:04:05"
	isoLayout      = "2006-01-02T15:04:05"
)

var timeSchema = &tool.Schema{
	Type: "object",
	Properties: map[string]any{
		"format": map[string]any{
			"type":        "string",
			"description": "Output format for the timestamp. Defaults to readable.",
			"enum":        []string{formatISO, formatReadable},
		},
	},
}

// CurrentTimeTool reports the server clock. The clock is injectable for tests.
type CurrentTimeTool struct {
	now func() time.Time
}

func NewCurrentTimeTool() *CurrentTimeTool {
	return &CurrentTimeTool{now: time.Now}
}

func (t *CurrentTimeTool) Name() string { return "get_current_time" }

func (t *CurrentTimeTool) Description() string { return timeDescription }

func (t *CurrentTimeTool) Schema() *tool.Schema { return timeSchema }

func (t *CurrentTimeTool) Metadata() tool.Metadata {
	return metadataFor(t.Name(), timeDescription, timeSchema, "utility", "demo", "time")
}

func (t *CurrentTimeTool) Validate(args map[string]any) tool.ValidationResult {
	format, present, isString := stringParam(args, "format")
	if !present {
		return tool.ValidOK()
	}
	if !isString || (format != formatISO && format != formatReadable) {
		return tool.Invalid("Format must be either 'iso' or 'readable'")
	}
	return tool.ValidOK()
}

func (t *CurrentTimeTool) Execute(_ context.Context, _ *tool.Context, args map[string]any) tool.Result {
	format, present, _ := stringParam(args, "format")
	if !present {
		format = formatReadable
	}
	layout := readableLayout
	if format == formatISO {
		layout = isoLayout
	}
	return tool.Text("Current time: " + t.now().Format(layout))
}
