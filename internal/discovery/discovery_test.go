package discovery

import (
	"context"
	"testing"

	"github.com/stellarlinkco/deskmcp/internal/registry"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

type fakeTool struct {
	md          tool.Metadata
	panicOnMeta bool
}

func (f *fakeTool) Name() string { return f.md.Name }
func (f *fakeTool) Description() string { return f.md.Description }
func (f *fakeTool) Schema() *tool.Schema { return nil }

func (f *fakeTool) Metadata() tool.Metadata {
	if f.panicOnMeta {
		panic("metadata exploded")
	}
	return f.md
}

func (f *fakeTool) Validate(map[string]any) tool.ValidationResult { return tool.ValidOK() }

func (f *fakeTool) Execute(context.Context, *tool.Context, map[string]any) tool.Result {
	return tool.Text("ok")
}

func TestDiscoverRegistersManifest(t *testing.T) {
	reg := registry.New()
	manifest := []tool.Tool{
		&fakeTool{md: tool.Metadata{Name: "echo", Description: "echo tool", Category: "utility"}},
		&fakeTool{md: tool.Metadata{Name: "get_current_time", Description: "time tool", Category: "utility"}},
	}

	d := New(reg, manifest)
	if got := d.Discover(); got != 2 {
		t.Fatalf("Discover = %d, want 2", got)
	}
	if reg.Count() != 2 {
		t.Fatalf("registry count = %d", reg.Count())
	}
	def, ok := reg.Definition("echo")
	if !ok || def.Status() != registry.StatusEnabled {
		t.Fatalf("echo definition = %v, %v", def, ok)
	}
	if d.ManifestSize() != 2 {
		t.Fatalf("manifest size = %d", d.ManifestSize())
	}
}

func TestToolCountPassthroughs(t *testing.T) {
	reg := registry.New()
	manifest := []tool.Tool{
		&fakeTool{md: tool.Metadata{Name: "echo", Description: "echo tool"}},
		&fakeTool{md: tool.Metadata{Name: "get_current_time", Description: "time tool"}},
	}

	d := New(reg, manifest)
	if got := d.DiscoveredToolCount(); got != 0 {
		t.Fatalf("DiscoveredToolCount before discovery = %d", got)
	}
	d.Discover()
	if got := d.DiscoveredToolCount(); got != 2 {
		t.Fatalf("DiscoveredToolCount = %d, want 2", got)
	}
	if got := d.EnabledToolCount(); got != 2 {
		t.Fatalf("EnabledToolCount = %d, want 2", got)
	}

	if !reg.SetStatus("echo", registry.StatusDisabled) {
		t.Fatal("SetStatus failed")
	}
	if got := d.EnabledToolCount(); got != 1 {
		t.Fatalf("EnabledToolCount after disable = %d, want 1", got)
	}
	if got := d.DiscoveredToolCount(); got != 2 {
		t.Fatalf("DiscoveredToolCount after disable = %d, want 2", got)
	}
}

func TestDiscoverIsolatesFailures(t *testing.T) {
	reg := registry.New()
	manifest := []tool.Tool{
		&fakeTool{md: tool.Metadata{Name: "", Description: "invalid"}}, // bad metadata
		nil, // nil entry
		&fakeTool{md: tool.Metadata{Name: "boom", Description: "d"}, panicOnMeta: true},
		&fakeTool{md: tool.Metadata{Name: "survivor", Description: "still registers"}},
	}

	d := New(reg, manifest)
	if got := d.Discover(); got != 1 {
		t.Fatalf("Discover = %d, want 1", got)
	}
	if !reg.Contains("survivor") {
		t.Fatal("healthy tool must register despite broken neighbors")
	}
}

func TestRediscoverReplaces(t *testing.T) {
	reg := registry.New()
	manifest := []tool.Tool{
		&fakeTool{md: tool.Metadata{Name: "echo", Description: "echo tool"}},
	}
	d := New(reg, manifest)
	d.Discover()

	if got := d.Rediscover(); got != 1 {
		t.Fatalf("Rediscover = %d", got)
	}
	if reg.Count() != 1 {
		t.Fatalf("rediscovery must not duplicate, count = %d", reg.Count())
	}
}
