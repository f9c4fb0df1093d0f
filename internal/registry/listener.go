package registry

// Listener observes registry lifecycle events. Implementations must not block;
// a panicking listener is recovered and logged without affecting the registry
// or other listeners.
type Listener interface {
	ToolRegistered(def *Definition)
	ToolUnregistered(def *Definition)
	ToolStatusChanged(def *Definition, old, new Status)
	ToolAccessed(def *Definition)
	RegistryCleared()
}

// NoopListener implements Listener with empty methods. Embed it to observe a
// subset of events.
type NoopListener struct{}

func (NoopListener) ToolRegistered(*Definition) {}
func (NoopListener) ToolUnregistered(*Definition) {}
func (NoopListener) ToolStatusChanged(*Definition, Status, Status) {}
func (NoopListener) ToolAccessed(*Definition) {}
func (NoopListener) RegistryCleared() {}
