package registry

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stellarlinkco/deskmcp/internal/tool"
)

// Status tracks the lifecycle of a registered tool.
type Status string

const (
	StatusEnabled       Status = "ENABLED"
	StatusDisabled      Status = "DISABLED"
	StatusRefreshing    Status = "REFRESHING"
	StatusError         Status = "ERROR"
	StatusRegistering   Status = "REGISTERING"
	StatusUnregistering Status = "UNREGISTERING"
)

// Constructor produces a tool instance for a definition. Stateless tools may
// return a shared instance on every call.
type Constructor func() tool.Tool

// Definition pairs tool metadata with its constructor and runtime state.
// Status and access time are guarded by a mutex; the execution counter is
// atomic so the dispatcher can bump it without taking the lock.
type Definition struct {
	metadata  tool.Metadata
	construct Constructor
	regTime   time.Time

	mu         sync.RWMutex
	status     Status
	lastAccess time.Time

	execCount atomic.Int64
}

// NewDefinition validates metadata, applies defaults, and starts the
// definition in the REGISTERING state.
func NewDefinition(md tool.Metadata, construct Constructor) (*Definition, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	if construct == nil {
		return nil, fmt.Errorf("tool constructor cannot be nil")
	}
	now := time.Now()
	return &Definition{
		metadata:   md.Normalized(),
		construct:  construct,
		regTime:    now,
		status:     StatusRegistering,
		lastAccess: now,
	}, nil
}

func (d *Definition) Metadata() tool.Metadata { return d.metadata }

func (d *Definition) Name() string { return d.metadata.Name }

func (d *Definition) Constructor() Constructor { return d.construct }

func (d *Definition) RegistrationTime() time.Time { return d.regTime }

func (d *Definition) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status
}

func (d *Definition) setStatus(s Status) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev := d.status
	d.status = s
	return prev
}

// Enabled reports whether the tool is currently dispatchable.
func (d *Definition) Enabled() bool {
	return d.Status() == StatusEnabled
}

func (d *Definition) LastAccessTime() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastAccess
}

func (d *Definition) touch() {
	d.mu.Lock()
	d.lastAccess = time.Now()
	d.mu.Unlock()
}

// ExecutionCount returns how many executions have completed for this tool.
func (d *Definition) ExecutionCount() int64 {
	return d.execCount.Load()
}

// IncrementExecutionCount records one completed execution.
func (d *Definition) IncrementExecutionCount() {
	d.execCount.Add(1)
}

func (d *Definition) String() string {
	return fmt.Sprintf("%s [%s]", d.metadata.String(), d.Status())
}
