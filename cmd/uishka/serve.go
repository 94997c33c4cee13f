package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/uishka/internal/config"
	"github.com/vango-dev/uishka/internal/inspect"
	"github.com/vango-dev/uishka/pkg/loop"
	"github.com/vango-dev/uishka/pkg/snapshot"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Keep a document live behind the inspector",
		Long: `Parse an HTML document, mount the widgets and serve the inspector.

Endpoints:
  GET  /instances          live instances and their properties
  GET  /document           the current document
  POST /remove?selector=   detach elements and run liveness
  POST /snapshot?name=     save a snapshot (see uishka snapshot)
  GET  /metrics            Prometheus metrics
  GET  /events             websocket stream of lifecycle events

Examples:
  uishka serve index.html
  uishka serve index.html --port=9090`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configDir)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Inspect.Port = port
			}
			if host != "" {
				cfg.Inspect.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(args[0], cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from uishka.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from uishka.json)")

	return cmd
}

func runServe(path string, cfg *config.Config) error {
	hub := inspect.NewHub(nil)
	s, err := openSession(path, cfg, os.Stderr, hub.Publish)
	if err != nil {
		return err
	}
	defer s.Close()

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	success("Mounted %d buttons and %d cards from %s", s.mounted.Buttons, s.mounted.Cards, path)
	info("Inspector at http://%s", cfg.InspectAddress())
	fmt.Println()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	l := loop.New(s.doc.Flush, loop.WithLogger(s.logger))
	go l.Run(ctx)
	defer l.Close()

	opts := inspect.Options{
		Env:    s.env,
		Loop:   l,
		Hub:    hub,
		Logger: s.logger,
	}
	if s.registry != nil {
		opts.Gatherer = s.registry
	}
	if opts.Snapshots, err = snapshot.Open(cfg.Snapshot); err != nil {
		return err
	}
	server := inspect.NewServer(opts)
	if err := server.ListenAndServe(ctx, cfg.InspectAddress()); err != nil {
		return err
	}
	fmt.Println("\n  Shutting down...")
	return nil
}
