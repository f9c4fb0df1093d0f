package registry

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// Registry keeps the mapping between tool names and definitions, with a
// secondary index by category. Registering a name that is already present
// replaces the previous definition.
type Registry struct {
	mu         sync.RWMutex
	tools      map[string]*Definition
	categories map[string]map[string]struct{} // category -> set of tool names
	listeners  []Listener
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		tools:      make(map[string]*Definition),
		categories: make(map[string]map[string]struct{}),
	}
}

// Register inserts or replaces a definition. The definition passes through the
// REGISTERING state while maps are updated, then lands in ENABLED (or keeps an
// explicitly set prior status).
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return fmt.Errorf("tool definition cannot be nil")
	}
	if err := def.Metadata().Validate(); err != nil {
		return fmt.Errorf("invalid tool metadata: %w", err)
	}

	name := def.Name()
	prev := def.setStatus(StatusRegistering)

	r.mu.Lock()
	if old, exists := r.tools[name]; exists {
		log.Printf("[registry] replacing existing tool: %s", name)
		r.removeFromCategoryLocked(old)
	}
	r.tools[name] = def
	category := def.Metadata().Category
	if r.categories[category] == nil {
		r.categories[category] = make(map[string]struct{})
	}
	r.categories[category][name] = struct{}{}
	r.mu.Unlock()

	if prev == StatusRegistering {
		prev = StatusEnabled
	}
	def.setStatus(prev)

	log.Printf("[registry] registered tool: %s (category=%s)", name, category)
	r.notify(func(l Listener) { l.ToolRegistered(def) })
	return nil
}

// Unregister removes a definition by name. It is idempotent: removing an
// unknown name returns false without error.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	def, exists := r.tools[name]
	if !exists {
		r.mu.Unlock()
		return false
	}
	def.setStatus(StatusUnregistering)
	delete(r.tools, name)
	r.removeFromCategoryLocked(def)
	r.mu.Unlock()

	log.Printf("[registry] unregistered tool: %s", name)
	r.notify(func(l Listener) { l.ToolUnregistered(def) })
	return true
}

// removeFromCategoryLocked prunes the category index entry for def, dropping
// the category bucket entirely once it is empty. Caller holds r.mu.
func (r *Registry) removeFromCategoryLocked(def *Definition) {
	category := def.Metadata().Category
	if names, ok := r.categories[category]; ok {
		delete(names, def.Name())
		if len(names) == 0 {
			delete(r.categories, category)
		}
	}
}

// FindByName looks up a dispatchable definition and records the access: the
// definition's last access time is bumped and listeners are notified.
func (r *Registry) FindByName(name string) (*Definition, bool) {
	r.mu.RLock()
	def, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	def.touch()
	r.notify(func(l Listener) { l.ToolAccessed(def) })
	return def, true
}

// Definition returns a definition without recording an access. Introspection
// paths (listing, status commands) use this to keep access times meaningful.
func (r *Registry) Definition(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tools[name]
	return def, ok
}

// FindByCategory returns all definitions in a category, sorted by name.
func (r *Registry) FindByCategory(category string) []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names, ok := r.categories[category]
	if !ok {
		return nil
	}
	defs := make([]*Definition, 0, len(names))
	for name := range names {
		if def, ok := r.tools[name]; ok {
			defs = append(defs, def)
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name() < defs[j].Name() })
	return defs
}

// All returns every definition, sorted by name.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*Definition, 0, len(r.tools))
	for _, def := range r.tools {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name() < defs[j].Name() })
	return defs
}

// Enabled returns every definition that is currently dispatchable, sorted by
// name.
func (r *Registry) Enabled() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*Definition, 0, len(r.tools))
	for _, def := range r.tools {
		if def.Enabled() {
			defs = append(defs, def)
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name() < defs[j].Name() })
	return defs
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Categories returns all non-empty categories, sorted.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cats := make([]string, 0, len(r.categories))
	for cat := range r.categories {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// Contains reports whether a tool name is registered.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// EnabledCount returns how many tools are currently dispatchable.
func (r *Registry) EnabledCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, def := range r.tools {
		if def.Enabled() {
			n++
		}
	}
	return n
}

// SetStatus transitions a tool's lifecycle status and notifies listeners.
// Unknown names return false.
func (r *Registry) SetStatus(name string, status Status) bool {
	r.mu.RLock()
	def, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	old := def.setStatus(status)
	if old != status {
		log.Printf("[registry] tool %s status: %s -> %s", name, old, status)
		r.notify(func(l Listener) { l.ToolStatusChanged(def, old, status) })
	}
	return true
}

// Clear removes every definition.
func (r *Registry) Clear() {
	r.mu.Lock()
	n := len(r.tools)
	r.tools = make(map[string]*Definition)
	r.categories = make(map[string]map[string]struct{})
	r.mu.Unlock()

	log.Printf("[registry] cleared %d tools", n)
	r.notify(func(l Listener) { l.RegistryCleared() })
}

// AddListener subscribes to registry events.
func (r *Registry) AddListener(l Listener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// RemoveListener unsubscribes a previously added listener.
func (r *Registry) RemoveListener(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.listeners {
		if existing == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// notify invokes fn on a snapshot of the listeners. A panic in one listener is
// logged and does not affect the others.
func (r *Registry) notify(fn func(Listener)) {
	r.mu.RLock()
	snapshot := make([]Listener, len(r.listeners))
	copy(snapshot, r.listeners)
	r.mu.RUnlock()

	for _, l := range snapshot {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("[registry] listener panic: %v", rec)
				}
			}()
			fn(l)
		}()
	}
}
