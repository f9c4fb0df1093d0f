package tool

import "context"

// Tool represents an executable capability exposed over MCP.
type Tool interface {
	// Name returns the unique identifier of the tool.
	Name() string

	// Description gives a short human readable summary.
	Description() string

	// Schema describes the tool parameters. Nil means the tool does not expect input.
	Schema() *Schema

	// Metadata returns the descriptive metadata used for registration.
	Metadata() Metadata

	// Validate checks arguments before execution. It never executes the tool.
	Validate(args map[string]any) ValidationResult

	// Execute runs the tool with validated arguments.
	Execute(ctx context.Context, call *Context, args map[string]any) Result
}
