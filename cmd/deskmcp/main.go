package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stellarlinkco/deskmcp/internal/builtin"
	"github.com/stellarlinkco/deskmcp/internal/config"
	"github.com/stellarlinkco/deskmcp/internal/incident"
	"github.com/stellarlinkco/deskmcp/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "deskmcp",
	Short: "deskmcp - service desk MCP demo server",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio or http transport)",
	RunE:  runServe,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the bundled tools",
	RunE:  runTools,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show deskmcp configuration status",
	RunE:  runStatus,
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Write the default config file",
	RunE:  runOnboard,
}

var (
	transportFlag string
	addrFlag      string
)

func init() {
	serveCmd.Flags().StringVarP(&transportFlag, "transport", "t", "", "Transport override: stdio or http")
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "HTTP listen address override (host:port)")
	rootCmd.AddCommand(serveCmd, toolsCmd, statusCmd, onboardCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if transportFlag != "" {
		if transportFlag != "stdio" && transportFlag != "http" {
			return fmt.Errorf("invalid transport %q: must be stdio or http", transportFlag)
		}
		cfg.Server.Transport = transportFlag
	}
	if addrFlag != "" {
		host, port, err := splitAddr(addrFlag)
		if err != nil {
			return err
		}
		cfg.Server.Host = host
		cfg.Server.Port = port
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid address %q: expected host:port", addr)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in %q", addr)
	}
	return host, port, nil
}

func runTools(cmd *cobra.Command, args []string) error {
	store := incident.NewStore(nil)
	tools := builtin.Manifest(store)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tDESCRIPTION")
	for _, t := range tools {
		md := t.Metadata()
		fmt.Fprintf(w, "%s\t%s\t%s\n", md.Name, md.Category, md.Description)
	}
	return w.Flush()
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Config: error (%v)\n", err)
		return nil
	}

	fmt.Printf("Config: %s\n", config.ConfigPath())
	fmt.Printf("Server: %s %s\n", cfg.Server.Name, cfg.Server.Version)
	fmt.Printf("Transport: %s\n", cfg.Server.Transport)
	if cfg.Server.Transport == "http" {
		fmt.Printf("Listen: %s\n", cfg.Addr())
	}
	fmt.Printf("Dispatch timeout: %ds\n", cfg.Dispatch.TimeoutSeconds)
	fmt.Printf("Telegram notify: enabled=%v\n", cfg.Notify.Telegram.Enabled)
	fmt.Printf("Maintenance: enabled=%v retention=%dd\n", cfg.Maintenance.Enabled, cfg.Maintenance.RetentionDays)
	fmt.Printf("Tools: %d bundled\n", len(builtin.Manifest(incident.NewStore(nil))))
	return nil
}

func runOnboard(cmd *cobra.Command, args []string) error {
	cfgDir := config.ConfigDir()
	cfgPath := config.ConfigPath()

	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		data, _ := json.MarshalIndent(cfg, "", "  ")
		if err := os.WriteFile(cfgPath, data, 0644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("Created config: %s\n", cfgPath)
	} else {
		fmt.Printf("Config already exists: %s\n", cfgPath)
	}

	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Edit %s to pick a transport and enable notifications\n", cfgPath)
	fmt.Println("  2. Run 'deskmcp serve' to start the server")
	fmt.Println("  3. Run 'deskmcp tools' to see what it exposes")
	return nil
}
