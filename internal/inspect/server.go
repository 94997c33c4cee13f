package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/uishka/internal/errors"
	"github.com/vango-dev/uishka/pkg/component"
	"github.com/vango-dev/uishka/pkg/loop"
	"github.com/vango-dev/uishka/pkg/snapshot"
)

// Options configures the inspector server.
type Options struct {
	// Env is the component environment to inspect.
	Env *component.Env

	// Loop runs every document access.
	Loop *loop.Loop

	// Hub streams lifecycle events on /events. Register Hub.Publish with
	// component.WithListener to feed it.
	Hub *Hub

	// Gatherer serves /metrics (default: prometheus.DefaultGatherer).
	Gatherer prometheus.Gatherer

	// Snapshots enables POST /snapshot when set.
	Snapshots snapshot.Store

	// Logger logs requests and server errors.
	Logger *slog.Logger
}

// Server is the inspector HTTP server.
type Server struct {
	env     *component.Env
	loop    *loop.Loop
	hub     *Hub
	store   snapshot.Store
	logger  *slog.Logger
	router  chi.Router
	mu      sync.Mutex
	http    *http.Server
	running bool
}

// NewServer builds the inspector router.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Hub == nil {
		opts.Hub = NewHub(opts.Logger)
	}

	s := &Server{
		env:    opts.Env,
		loop:   opts.Loop,
		hub:    opts.Hub,
		store:  opts.Snapshots,
		logger: opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/instances", s.handleInstances)
	r.Get("/document", s.handleDocument)
	r.Post("/remove", s.handleRemove)
	if s.store != nil {
		r.Post("/snapshot", s.handleSnapshot)
	}
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/events", s.hub.HandleWebSocket)
	s.router = r
	return s
}

// Handler returns the inspector routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the event hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Unlock()

	s.logger.Info("inspector listening", slog.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		if err != nil {
			return errors.New("E141").WithSubject(addr).Wrap(err)
		}
		return nil
	}
}

// Stop shuts the server down and disconnects event clients.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.hub.Close()

	if s.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.http.Shutdown(ctx)
	}
}

func (s *Server) handleInstances(w http.ResponseWriter, r *http.Request) {
	var infos []component.InstanceInfo
	err := s.loop.Do(r.Context(), func() error {
		infos = s.env.Instances()
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if infos == nil {
		infos = []component.InstanceInfo{}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := s.loop.Do(r.Context(), func() error {
		return s.env.Document().Render(&buf)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// RemoveResult is the response of POST /remove.
type RemoveResult struct {
	Removed   int `json:"removed"`
	Instances int `json:"instances"`
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("selector")
	if selector == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "selector is required"})
		return
	}

	var res RemoveResult
	err := s.loop.Do(r.Context(), func() error {
		doc := s.env.Document()
		nodes, err := doc.QuerySelectorAll(selector)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			doc.Remove(n)
		}
		res.Removed = len(nodes)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	// The liveness pass ran at the checkpoint after the removal.
	err = s.loop.Do(r.Context(), func() error {
		res.Instances = len(s.env.Instances())
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SnapshotResult is the response of POST /snapshot.
type SnapshotResult struct {
	Name      string   `json:"name"`
	Locations []string `json:"locations"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name != "" && !snapshot.ValidName(name) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid snapshot name"})
		return
	}

	var snap *snapshot.Snapshot
	err := s.loop.Do(r.Context(), func() error {
		var err error
		snap, err = snapshot.Take(s.env, name)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	locations, err := snapshot.Save(r.Context(), s.store, snap)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("snapshot saved",
		slog.String("name", snap.Name),
		slog.Any("locations", locations),
	)
	writeJSON(w, http.StatusCreated, SnapshotResult{Name: snap.Name, Locations: locations})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case stderrors.Is(err, errors.New("E005")):
		status = http.StatusBadRequest
	case stderrors.Is(err, loop.ErrClosed), stderrors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}

	ue := errors.FromError(err, "E141")
	if status == http.StatusInternalServerError {
		s.logger.Error("inspector request failed", slog.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(ue.FormatJSON()))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("inspector request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
