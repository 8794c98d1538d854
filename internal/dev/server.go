package dev

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/errors"
	"github.com/arbor-dev/arbor/internal/telemetry"
	"github.com/arbor-dev/arbor/pkg/routes"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Logger receives server logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Telemetry provides the compiler instruments. A default set
	// registered on the global Prometheus registry is created when nil.
	Telemetry *telemetry.Telemetry

	// OnCompile is called after every compilation attempt.
	OnCompile func(result *CompileResult, err error)

	// OnReload is called after browsers are notified.
	OnReload func(clients int)
}

// Server is the development server. It serves the compiled manifest,
// recompiles on file changes, and pushes updates to browsers.
type Server struct {
	config       *config.Config
	options      ServerOptions
	logger       *slog.Logger
	compiler     *Compiler
	watcher      *Watcher
	reloadServer *ReloadServer
	httpServer   *http.Server
	changeCh     chan Change

	mu      sync.Mutex
	running bool
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tel := options.Telemetry
	if tel == nil {
		tel = telemetry.New()
	}
	compiler := NewCompiler(cfg.RoutesPath(), tel, logger)

	watcher := NewWatcher(WatcherConfig{
		Paths:    []string{cfg.RoutesPath()},
		Ignore:   append(append([]string{}, DefaultIgnore...), cfg.Dev.Ignore...),
		Debounce: 100 * time.Millisecond,
	})

	var reloadServer *ReloadServer
	if cfg.Dev.HotReload {
		reloadServer = NewReloadServer()
	}

	return &Server{
		config:       cfg,
		options:      options,
		logger:       logger,
		compiler:     compiler,
		watcher:      watcher,
		reloadServer: reloadServer,
		changeCh:     make(chan Change, 64),
	}
}

// Start compiles the routes, starts the watcher, and serves HTTP until
// the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	result, err := s.compiler.Compile(ctx)
	if s.options.OnCompile != nil {
		s.options.OnCompile(result, err)
	}
	if err != nil {
		// An initial compile error is not fatal: the server starts
		// anyway and shows the error overlay until the tree is fixed.
		s.logger.Warn("starting with compile error", slog.String("error", err.Error()))
	}

	s.watcher.OnChange(func(change Change) {
		select {
		case s.changeCh <- change:
		default:
		}
	})

	go func() {
		if err := s.watcher.Start(ctx); err != nil && err != context.Canceled {
			s.logger.Error("watcher stopped", slog.String("error", err.Error()))
		}
	}()
	go s.processChanges(ctx)

	s.httpServer = &http.Server{
		Addr:    s.config.DevAddress(),
		Handler: s.routerHandler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Stop shuts the server down.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false

	s.watcher.Stop()
	if s.reloadServer != nil {
		s.reloadServer.Close()
	}
	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}
}

// routerHandler builds the HTTP routing table.
func (s *Server) routerHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/__arbor/manifest.json", s.handleManifest)
	r.Get("/__arbor/routes.json", s.handleRoutes)
	r.Get("/__arbor/match", s.handleMatch)
	if s.reloadServer != nil {
		r.Get("/__arbor/reload", s.reloadServer.HandleWebSocket)
		r.Get("/__arbor/reload.js", handleReloadScript)
	}
	r.Handle("/metrics", telemetry.Handler())

	fileServer := http.FileServer(http.Dir(filepath.Join(s.config.Dir(), s.config.Paths.Public)))
	r.NotFound(fileServer.ServeHTTP)

	return r
}

// processChanges recompiles on route changes and notifies browsers.
func (s *Server) processChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-s.changeCh:
			s.handleChange(ctx, change)
		}
	}
}

func (s *Server) handleChange(ctx context.Context, change Change) {
	switch change.Type {
	case ChangeRoute, ChangeScript:
		s.logger.Info("route change detected", slog.String("path", change.Path))
		s.compiler.Invalidate()

		result, err := s.compiler.Compile(ctx)
		if s.options.OnCompile != nil {
			s.options.OnCompile(result, err)
		}
		if err != nil {
			s.notifyError(err)
			return
		}
		s.notifyManifest()

	case ChangeStyle:
		if s.reloadServer != nil {
			s.reloadServer.NotifyCSS(change.Path)
			s.reloaded()
		}

	case ChangeAsset:
		if s.reloadServer != nil {
			s.reloadServer.NotifyReload()
			s.reloaded()
		}
	}
}

func (s *Server) notifyManifest() {
	if s.reloadServer == nil {
		return
	}
	s.reloadServer.ClearError()

	data, err := s.compiler.ManifestJSON()
	if err != nil || data == nil {
		s.reloadServer.NotifyReload()
	} else {
		s.reloadServer.NotifyManifest(data)
	}
	s.reloaded()
}

func (s *Server) notifyError(err error) {
	if s.reloadServer == nil {
		return
	}
	compileErr := errors.FromCompile(err)
	s.reloadServer.NotifyError(compileErr.Error())
	s.reloaded()
}

func (s *Server) reloaded() {
	if s.options.OnReload != nil {
		s.options.OnReload(s.reloadServer.ClientCount())
	}
}

// handleReloadScript serves the reload client so previewed pages can
// include it with <script src="/__arbor/reload.js">.
func handleReloadScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Write([]byte(ReloadClientScript))
}

// handleManifest serves the compiled manifest as JSON.
func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	result, err := s.compiler.Compile(r.Context())
	if err != nil {
		writeCompileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Manifest)
}

// handleRoutes serves the intermediate route configuration as JSON.
func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	result, err := s.compiler.Compile(r.Context())
	if err != nil {
		writeCompileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Config)
}

// matchResponse is the payload of the route matching endpoint.
type matchResponse struct {
	Path     string       `json:"path"`
	Segments []string     `json:"segments"`
	Matched  bool         `json:"matched"`
	Route    routes.Route `json:"route,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// handleMatch resolves ?path=/some/url against the manifest.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Query().Get("path")
	if urlPath == "" {
		http.Error(w, `missing "path" query parameter`, http.StatusBadRequest)
		return
	}

	result, err := s.compiler.Compile(r.Context())
	if err != nil {
		writeCompileError(w, err)
		return
	}

	segments := routes.SplitPath(urlPath)
	resp := matchResponse{Path: urlPath, Segments: segments}

	matched, err := routes.Match(segments, result.Manifest)
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Matched = matched != nil
	resp.Route = matched
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeCompileError(w http.ResponseWriter, err error) {
	compileErr := errors.FromCompile(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{
		"code":  compileErr.Code,
		"error": compileErr.Message,
	})
}
