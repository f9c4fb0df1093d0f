package tool

import (
	"encoding/json"
	"fmt"
)

// Content is a single piece of tool output. Only text content is produced today.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// TextContent wraps a string as a text content block.
func TextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// Result captures the outcome of a tool invocation as it will appear on the
// wire. ErrorMessage carries the failure message without the "Error: " prefix,
// alongside the error content block, for callers that want the structured form.
type Result struct {
	Content      []Content
	IsError      bool
	ErrorMessage string
}

// Text returns a successful result with a single text block.
func Text(text string) Result {
	return Result{Content: []Content{TextContent(text)}}
}

// Textf returns a successful result with a formatted text block.
func Textf(format string, args ...any) Result {
	return Text(fmt.Sprintf(format, args...))
}

// Error returns a failed result. The message is prefixed with "Error: " so
// clients that only render text still see the failure.
func Error(message string) Result {
	return Result{
		Content:      []Content{TextContent("Error: " + message)},
		IsError:      true,
		ErrorMessage: message,
	}
}

// Errorf returns a failed result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Sprintf(format, args...))
}

// JSON marshals v into a single text block. Marshal failures become error results.
func JSON(v any) Result {
	data, err := json.Marshal(v)
	if err != nil {
		return Errorf("marshal result: %v", err)
	}
	return Text(string(data))
}

// FirstText returns the text of the first text block, or "" when there is none.
func (r Result) FirstText() string {
	for _, c := range r.Content {
		if c.Type == "text" {
			return c.Text
		}
	}
	return ""
}
