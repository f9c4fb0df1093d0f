// Package server wires the tool subsystem together and exposes it over MCP:
// registry, factory, discovery, dispatcher, incident store, event bus, and
// the optional notifier and maintenance jobs behind one Run call.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stellarlinkco/deskmcp/internal/builtin"
	"github.com/stellarlinkco/deskmcp/internal/bus"
	"github.com/stellarlinkco/deskmcp/internal/config"
	"github.com/stellarlinkco/deskmcp/internal/discovery"
	"github.com/stellarlinkco/deskmcp/internal/dispatch"
	"github.com/stellarlinkco/deskmcp/internal/factory"
	"github.com/stellarlinkco/deskmcp/internal/incident"
	"github.com/stellarlinkco/deskmcp/internal/maintenance"
	"github.com/stellarlinkco/deskmcp/internal/notify"
	"github.com/stellarlinkco/deskmcp/internal/registry"
	"github.com/stellarlinkco/deskmcp/internal/tool"
)

// Server owns the full tool stack for one process.
type Server struct {
	cfg         *config.Config
	registry    *registry.Registry
	factory     *factory.Caching
	dispatcher  *dispatch.Dispatcher
	store       *incident.Store
	events      *bus.Bus
	discoverer  *discovery.Discoverer
	maintenance *maintenance.Service
	notifier    *notify.TelegramNotifier
	mcp         *mcpsdk.Server
}

// New assembles the stack, runs tool discovery, and builds the MCP server.
func New(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	events := bus.New(bus.DefaultBufSize)
	store := incident.NewStore(events)
	reg := registry.New()
	fac := factory.NewCaching()

	s := &Server{
		cfg:      cfg,
		registry: reg,
		factory:  fac,
		store:    store,
		events:   events,
		dispatcher: dispatch.New(reg, fac,
			dispatch.WithTimeout(time.Duration(cfg.Dispatch.TimeoutSeconds)*time.Second)),
		discoverer: discovery.New(reg, builtin.Manifest(store)),
	}
	s.maintenance = maintenance.NewService(cfg.Maintenance, store, s.discoverer)

	if cfg.Notify.Telegram.Enabled {
		notifier, err := notify.NewTelegramNotifier(cfg.Notify.Telegram)
		if err != nil {
			return nil, fmt.Errorf("telegram notifier: %w", err)
		}
		s.notifier = notifier
	}

	if n := s.discoverer.Discover(); n == 0 {
		return nil, errors.New("no tools discovered")
	}
	mcpServer, err := s.buildMCP()
	if err != nil {
		return nil, err
	}
	s.mcp = mcpServer
	return s, nil
}

// buildMCP advertises every enabled registry tool on a fresh MCP server,
// bridging each call to the dispatcher.
func (s *Server) buildMCP() (*mcpsdk.Server, error) {
	srv := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    s.cfg.Server.Name,
		Version: s.cfg.Server.Version,
	}, nil)

	for _, def := range s.registry.Enabled() {
		md := def.Metadata()
		input := map[string]any{"type": "object"}
		if md.Schema != "" {
			input = make(map[string]any)
			if err := json.Unmarshal([]byte(md.Schema), &input); err != nil {
				return nil, fmt.Errorf("tool %s schema: %w", def.Name(), err)
			}
		}
		srv.AddTool(&mcpsdk.Tool{
			Name:        def.Name(),
			Description: md.Description,
			InputSchema: input,
		}, s.handlerFor(def.Name()))
	}
	return srv, nil
}

func (s *Server) handlerFor(name string) mcpsdk.ToolHandler {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		var args map[string]any
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return toCallToolResult(tool.Errorf("invalid arguments: %v", err)), nil
			}
		}
		return toCallToolResult(s.dispatcher.Execute(ctx, name, args)), nil
	}
}

func toCallToolResult(res tool.Result) *mcpsdk.CallToolResult {
	content := make([]mcpsdk.Content, 0, len(res.Content))
	for _, c := range res.Content {
		content = append(content, &mcpsdk.TextContent{Text: c.Text})
	}
	return &mcpsdk.CallToolResult{Content: content, IsError: res.IsError}
}

// Run serves until ctx is cancelled, using the configured transport.
func (s *Server) Run(ctx context.Context) error {
	if s.notifier != nil {
		if err := s.notifier.Start(ctx, s.events); err != nil {
			return fmt.Errorf("start notifier: %w", err)
		}
		defer s.notifier.Stop()
	}
	if err := s.maintenance.Start(); err != nil {
		return fmt.Errorf("start maintenance: %w", err)
	}
	defer s.maintenance.Stop()
	defer s.events.Close()

	switch s.cfg.Server.Transport {
	case "http":
		return s.runHTTP(ctx)
	default:
		log.Printf("[server] serving %d tools over stdio", s.registry.EnabledCount())
		return s.mcp.Run(ctx, &mcpsdk.StdioTransport{})
	}
}

func (s *Server) runHTTP(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpsdk.NewSSEHandler(func(*http.Request) *mcpsdk.Server { return s.mcp }, nil))
	mux.Handle("/mcp/", mcpsdk.NewSSEHandler(func(*http.Request) *mcpsdk.Server { return s.mcp }, nil))
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/info", s.handleInfo)

	httpServer := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] serving %d tools over http on %s", s.registry.EnabledCount(), httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"status": "ok",
		"tools":  s.registry.EnabledCount(),
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"name":      s.cfg.Server.Name,
		"version":   s.cfg.Server.Version,
		"transport": s.cfg.Server.Transport,
		"tools":     s.registry.Names(),
		"incidents": s.store.Count(),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] write response: %v", err)
	}
}

// MCP exposes the underlying SDK server, used by tests to connect in memory.
func (s *Server) MCP() *mcpsdk.Server { return s.mcp }

// Registry exposes the tool registry for status commands.
func (s *Server) Registry() *registry.Registry { return s.registry }

// Store exposes the incident store.
func (s *Server) Store() *incident.Store { return s.store }

// Events exposes the incident event bus.
func (s *Server) Events() *bus.Bus { return s.events }
