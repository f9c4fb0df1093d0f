// Package factory creates tool instances from registry definitions. The
// default implementation caches instances per tool name so stateless tools are
// constructed once and shared across calls.
package factory

import (
	"fmt"
	"log"
	"sync"

	"github.com/stellarlinkco/deskmcp/internal/registry"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

// CreationError reports a failed tool instantiation, keeping the underlying
// cause available for unwrapping.
type CreationError struct {
	ToolName string
	Err      error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to create tool %s: %v", e.ToolName, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// Factory turns definitions into live tool instances.
type Factory interface {
	// Create builds a fresh instance, bypassing any cache.
	Create(def *registry.Definition) (tool.Tool, error)

	// Get returns a cached instance, creating and caching one on first use.
	Get(def *registry.Definition) (tool.Tool, error)

	// Supports reports whether this factory can instantiate the definition.
	Supports(def *registry.Definition) bool

	// Destroy releases a previously created instance.
	Destroy(t tool.Tool)
}

// Caching is the default Factory. Instances are keyed by tool name.
type Caching struct {
	mu    sync.Mutex
	cache map[string]tool.Tool
}

// NewCaching creates an empty caching factory.
func NewCaching() *Caching {
	return &Caching{cache: make(map[string]tool.Tool)}
}

func (f *Caching) Create(def *registry.Definition) (t tool.Tool, err error) {
	if def == nil {
		return nil, &CreationError{ToolName: "<nil>", Err: fmt.Errorf("definition is nil")}
	}
	construct := def.Constructor()
	if construct == nil {
		return nil, &CreationError{ToolName: def.Name(), Err: fmt.Errorf("no constructor")}
	}

	defer func() {
		if rec := recover(); rec != nil {
			t = nil
			err = &CreationError{ToolName: def.Name(), Err: fmt.Errorf("constructor panic: %v", rec)}
		}
	}()

	instance := construct()
	if instance == nil {
		return nil, &CreationError{ToolName: def.Name(), Err: fmt.Errorf("constructor returned nil")}
	}
	return instance, nil
}

func (f *Caching) Get(def *registry.Definition) (tool.Tool, error) {
	if def == nil {
		return nil, &CreationError{ToolName: "<nil>", Err: fmt.Errorf("definition is nil")}
	}

	f.mu.Lock()
	if cached, ok := f.cache[def.Name()]; ok {
		f.mu.Unlock()
		return cached, nil
	}
	f.mu.Unlock()

	instance, err := f.Create(def)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	// Another goroutine may have raced us here; keep the first instance so
	// every caller shares the same one.
	if cached, ok := f.cache[def.Name()]; ok {
		return cached, nil
	}
	f.cache[def.Name()] = instance
	log.Printf("[factory] cached tool instance: %s", def.Name())
	return instance, nil
}

func (f *Caching) Supports(def *registry.Definition) bool {
	return def != nil && def.Constructor() != nil
}

// Destroy evicts the instance from the cache. Unknown or nil tools are ignored.
func (f *Caching) Destroy(t tool.Tool) {
	if t == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cache[t.Name()]; ok {
		delete(f.cache, t.Name())
		log.Printf("[factory] destroyed tool instance: %s", t.Name())
	}
}

// ClearCache drops every cached instance.
func (f *Caching) ClearCache() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache = make(map[string]tool.Tool)
}

// CacheSize returns the number of cached instances.
func (f *Caching) CacheSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cache)
}
