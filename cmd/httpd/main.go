// Command httpd runs the configurable HTTP/1.1 application server: it
// parses an nginx-style routing config, wires its handlers into a
// dispatcher, and serves connections until interrupted. Modeled on the
// teacher's cmd/mcp-proxy/main.go cobra-root-command-plus-signal-handling
// shape.
package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/relaykit/httpd/internal/appconfig"
	"github.com/relaykit/httpd/internal/config"
	"github.com/relaykit/httpd/internal/handlers"
	"github.com/relaykit/httpd/internal/messagelog"
	"github.com/relaykit/httpd/internal/registry"
	"github.com/relaykit/httpd/internal/router"
	"github.com/relaykit/httpd/internal/server"
	"github.com/relaykit/httpd/internal/session"
	"github.com/relaykit/httpd/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := appconfig.Default()
	var logLevel string

	cmd := &cobra.Command{
		Use:   "httpd <config-file>",
		Short: "Run the configurable HTTP/1.1 application server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.LogLevel = logger.LogLevel(logLevel)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(args[0], cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.WorkerPoolSize, "workers", cfg.WorkerPoolSize, "number of connection-handling workers")
	cmd.Flags().StringVar(&logLevel, "log-level", string(cfg.LogLevel), "log level: debug, info, warn, error, disabled")
	cmd.Flags().BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "emit logs as JSON instead of text")

	return cmd
}

func run(configPath string, cfg *appconfig.Config) error {
	log := logger.NewLogger(cfg.LoggerConfig())

	f, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	ast, err := config.Parse(f)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	spec, err := config.ExtractRoutes(ast)
	if err != nil {
		return fmt.Errorf("extract routes: %w", err)
	}

	reg := registry.New()
	store := session.NewStore()
	msgLog := messagelog.NewLog()
	handlers.RegisterAll(reg, store, msgLog)

	routes := make([]router.Route, 0, len(spec.Routes))
	for _, rs := range spec.Routes {
		factoryArgs := append([]string{rs.Prefix}, rs.Args...)
		h, ok, err := reg.Create(rs.HandlerName, factoryArgs)
		if err != nil {
			return fmt.Errorf("build handler for location %q: %w", rs.Prefix, err)
		}
		if !ok {
			return fmt.Errorf("unknown handler %q for location %q", rs.HandlerName, rs.Prefix)
		}
		routes = append(routes, router.Route{Prefix: rs.Prefix, Handler: h})
	}

	notFound, _, _ := reg.Create(handlers.NameNotFound, []string{"/"})
	dispatch := router.New(routes, notFound)

	addr := fmt.Sprintf(":%d", spec.ListenPort)
	metrics := server.NewMetrics(prometheus.NewRegistry())
	srv, err := server.New(addr, dispatch, cfg.WorkerPoolSize, log, metrics)
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	log.Info("listening", "addr", srv.Addr().String(), "workers", cfg.WorkerPoolSize)
	return srv.Run()
}
