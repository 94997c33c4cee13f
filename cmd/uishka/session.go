package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/uishka/internal/config"
	"github.com/vango-dev/uishka/internal/errors"
	"github.com/vango-dev/uishka/internal/logging"
	"github.com/vango-dev/uishka/pkg/component"
	"github.com/vango-dev/uishka/pkg/dom"
	"github.com/vango-dev/uishka/pkg/metrics"
	"github.com/vango-dev/uishka/pkg/telemetry"
	"github.com/vango-dev/uishka/pkg/widgets"
)

// configDir is the --config flag shared by all commands.
var configDir = "."

// session is a parsed document with the widget library mounted on it.
type session struct {
	cfg      *config.Config
	doc      *dom.Document
	env      *component.Env
	lib      *widgets.Library
	logger   *slog.Logger
	registry *prometheus.Registry
	mounted  widgets.MountResult
}

// openSession parses the document at path and mounts every widget.
// Logs go to logOut.
func openSession(path string, cfg *config.Config, logOut io.Writer, listeners ...func(component.Event)) (*session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("E140").WithSubject(path).Wrap(err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, errors.New("E140").WithSubject(path).Wrap(err)
	}

	s := &session{
		cfg:    cfg,
		doc:    doc,
		logger: logging.New(cfg.Log, logOut),
	}

	opts := []component.Option{component.WithLogger(s.logger)}
	if cfg.Metrics.Enabled {
		s.registry = prometheus.NewRegistry()
		opts = append(opts, component.WithMetrics(metrics.New(
			metrics.WithRegistry(s.registry),
			metrics.WithNamespace(cfg.Metrics.Namespace),
		)))
	}
	if cfg.Tracing.Enabled {
		opts = append(opts, component.WithTracer(telemetry.New(
			telemetry.WithTracerName(cfg.Tracing.TracerName),
		)))
	}
	for _, fn := range listeners {
		opts = append(opts, component.WithListener(fn))
	}
	s.env = component.NewEnv(doc, opts...)

	s.lib, err = widgets.Register(s.env, cfg)
	if err != nil {
		return nil, err
	}
	s.mounted, err = s.lib.Mount()
	if err != nil {
		return nil, err
	}
	doc.Flush()
	return s, nil
}

// Close stops the liveness monitors.
func (s *session) Close() {
	s.env.Close()
}
