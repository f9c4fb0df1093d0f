package builtin

import (
	"github.com/stellarlinkco/deskmcp/internal/incident"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

// Manifest returns every bundled tool, wired to the given incident store.
// Discovery registers the manifest at startup; the order here is the order
// tools are advertised in.
func Manifest(store *incident.Store) []tool.Tool {
	return []tool.Tool{
		NewEchoTool(),
		NewCurrentTimeTool(),
		NewWeatherTool(),
		NewCreateIncidentTool(store),
		NewGetIncidentTool(store),
		NewUpdateIncidentTool(store),
		NewDeleteIncidentTool(store),
		NewUpdatableFieldsTool(),
		NewFieldsSchemaTool(),
	}
}
