// Package discovery registers a manifest of tool instances with the registry,
// isolating per-tool failures so one broken tool cannot block the rest.
package discovery

import (
	"fmt"
	"log"

	"github.com/stellarlinkco/deskmcp/internal/registry"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

// Discoverer walks a tool manifest and registers each entry.
type Discoverer struct {
	registry *registry.Registry
	manifest []tool.Tool
}

// New creates a discoverer over the given manifest.
func New(reg *registry.Registry, manifest []tool.Tool) *Discoverer {
	return &Discoverer{registry: reg, manifest: manifest}
}

// Discover registers every manifest tool, returning how many registered
// successfully. Failures are logged and skipped.
func (d *Discoverer) Discover() int {
	registered := 0
	for _, t := range d.manifest {
		if err := d.registerOne(t); err != nil {
			log.Printf("[discovery] skipping tool: %v", err)
			continue
		}
		registered++
	}
	log.Printf("[discovery] registered %d/%d tools", registered, len(d.manifest))
	return registered
}

func (d *Discoverer) registerOne(t tool.Tool) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("tool registration panic: %v", rec)
		}
	}()

	if t == nil {
		return fmt.Errorf("nil tool in manifest")
	}
	def, err := registry.NewDefinition(t.Metadata(), func() tool.Tool { return t })
	if err != nil {
		return fmt.Errorf("tool %q: %w", t.Name(), err)
	}
	return d.registry.Register(def)
}

// Rediscover re-runs discovery. Tools already registered are replaced, so a
// rediscovery is safe to run while the server is serving.
func (d *Discoverer) Rediscover() int {
	log.Printf("[discovery] rediscovering %d manifest tools", len(d.manifest))
	return d.Discover()
}

// ManifestSize returns how many tools the manifest holds.
func (d *Discoverer) ManifestSize() int {
	return len(d.manifest)
}

// DiscoveredToolCount returns how many tools the registry currently holds.
func (d *Discoverer) DiscoveredToolCount() int {
	return d.registry.Count()
}

// EnabledToolCount returns how many registered tools are dispatchable.
func (d *Discoverer) EnabledToolCount() int {
	return d.registry.EnabledCount()
}
