// Package dispatch routes tool calls by name: registry lookup, instance
// creation, argument validation, execution, and result shaping all happen
// here, so transports stay thin.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stellarlinkco/deskmcp/internal/factory"
	"github.com/stellarlinkco/deskmcp/internal/registry"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

// DefaultTimeout bounds a single tool execution.
const DefaultTimeout = 40 * time.Second

// DefaultSessionID is used when the transport supplies no session identity.
const DefaultSessionID = "default-session"

type sessionKey struct{}

// WithSessionID attaches a transport session identity to the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

func sessionFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(sessionKey{}).(string); ok && s != "" {
		return s
	}
	return DefaultSessionID
}

// Dispatcher executes tool calls against a registry and factory.
type Dispatcher struct {
	registry *registry.Registry
	factory  factory.Factory
	timeout  time.Duration
	tracer   trace.Tracer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout overrides the per-call execution timeout.
func WithTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.timeout = d
		}
	}
}

// New creates a dispatcher over the given registry and factory.
func New(reg *registry.Registry, fac factory.Factory, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		factory:  fac,
		timeout:  DefaultTimeout,
		tracer:   otel.Tracer("deskmcp/dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute runs one tool call end to end. Protocol failures (unknown tool,
// validation, execution errors, timeouts) come back as error results; the
// returned result is never nil.
func (d *Dispatcher) Execute(ctx context.Context, toolName string, args map[string]any) tool.Result {
	sessionID := sessionFromContext(ctx)
	requestID := uuid.NewString()

	ctx, span := d.tracer.Start(ctx, "tool.execute",
		trace.WithAttributes(
			attribute.String("tool.name", toolName),
			attribute.String("request.id", requestID),
			attribute.String("session.id", sessionID),
		),
	)
	defer span.End()

	res := d.execute(ctx, toolName, sessionID, requestID, args)
	if res.IsError {
		msg := res.FirstText()
		span.RecordError(fmt.Errorf("%s", msg))
		span.SetStatus(codes.Error, msg)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return res
}

func (d *Dispatcher) execute(ctx context.Context, toolName, sessionID, requestID string, args map[string]any) tool.Result {
	def, ok := d.registry.FindByName(toolName)
	if !ok {
		log.Printf("[dispatch] tool not found: %s", toolName)
		return tool.Error("Tool not found: " + toolName)
	}

	instance, err := d.factory.Get(def)
	if err != nil {
		log.Printf("[dispatch] create %s failed: %v", toolName, err)
		return tool.Error(err.Error())
	}

	call := tool.NewContext(sessionID, requestID)

	vr := instance.Validate(args)
	if !vr.Valid {
		log.Printf("[dispatch] validation failed for %s: %s", toolName, vr.FormattedErrors())
		return tool.Error("Validation failed: " + vr.FormattedErrors())
	}
	if vr.HasWarnings() {
		log.Printf("[dispatch] validation warnings for %s: %s", toolName, vr.FormattedWarnings())
	}

	execCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	res, completed := d.runTool(execCtx, instance, call, args)
	if !completed {
		log.Printf("[dispatch] %s timed out after %v", toolName, d.timeout)
		return tool.Errorf("Execution timed out after %v", d.timeout)
	}

	// The counter moves only after execute returns, so a timed out call is
	// never counted as an execution.
	def.IncrementExecutionCount()
	log.Printf("[dispatch] %s completed in %v (executions=%d)", toolName, call.Elapsed(), def.ExecutionCount())
	return res
}

// runTool executes the tool in its own goroutine so a tool that ignores
// context cancellation still cannot wedge the dispatcher.
func (d *Dispatcher) runTool(ctx context.Context, instance tool.Tool, call *tool.Context, args map[string]any) (tool.Result, bool) {
	done := make(chan tool.Result, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[dispatch] %s panicked: %v", instance.Name(), rec)
				done <- tool.Errorf("Execution failed: %v", rec)
			}
		}()
		done <- instance.Execute(ctx, call, args)
	}()

	select {
	case res := <-done:
		return res, true
	case <-ctx.Done():
		return tool.Result{}, false
	}
}

// Timeout reports the configured per-call timeout.
func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}
