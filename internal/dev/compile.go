package dev

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/arbor-dev/arbor/internal/telemetry"
	"github.com/arbor-dev/arbor/pkg/routes"
)

// CompileResult holds the output of one route compilation.
type CompileResult struct {
	// Config is the intermediate route configuration tree.
	Config *routes.RouteConfig

	// Manifest is the compiled route manifest.
	Manifest routes.Route

	// RouteCount is the number of routes in the manifest.
	RouteCount int

	// Duration is how long the compilation took.
	Duration time.Duration
}

// Compiler turns a routes directory into a manifest. Results are
// cached until Invalidate is called, so the preview server can match
// requests without recompiling.
type Compiler struct {
	routesDir string
	telemetry *telemetry.Telemetry
	logger    *slog.Logger

	mu     sync.Mutex
	cached *CompileResult
}

// NewCompiler creates a compiler for the given routes directory.
func NewCompiler(routesDir string, tel *telemetry.Telemetry, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{
		routesDir: routesDir,
		telemetry: tel,
		logger:    logger,
	}
}

// Compile runs the full pipeline: read the directory tree, build the
// route configuration, build the manifest. A cached result is returned
// if one exists.
func (c *Compiler) Compile(ctx context.Context) (*CompileResult, error) {
	c.mu.Lock()
	if c.cached != nil {
		result := c.cached
		c.mu.Unlock()
		return result, nil
	}
	c.mu.Unlock()

	start := time.Now()

	var finish func(int, error)
	if c.telemetry != nil {
		ctx, finish = c.telemetry.StartCompile(ctx, c.routesDir)
	}

	result, err := c.compile(ctx)
	if finish != nil {
		if err != nil {
			finish(0, err)
		} else {
			finish(result.RouteCount, nil)
		}
	}
	if err != nil {
		c.logger.Error("route compilation failed",
			slog.String("dir", c.routesDir),
			slog.String("error", err.Error()))
		return nil, err
	}

	result.Duration = time.Since(start)
	c.logger.Info("routes compiled",
		slog.String("dir", c.routesDir),
		slog.Int("routes", result.RouteCount),
		slog.Duration("duration", result.Duration))

	c.mu.Lock()
	c.cached = result
	c.mu.Unlock()
	return result, nil
}

func (c *Compiler) compile(ctx context.Context) (*CompileResult, error) {
	phase := func(name string) func() {
		if c.telemetry == nil {
			return func() {}
		}
		_, span := c.telemetry.StartPhase(ctx, name)
		return func() { span.End() }
	}

	end := phase("scan")
	tree, err := routes.ReadTree(c.routesDir)
	end()
	if err != nil {
		return nil, err
	}

	end = phase("config")
	cfg, err := routes.BuildRouteConfig(tree)
	end()
	if err != nil {
		return nil, err
	}

	end = phase("manifest")
	manifest, err := routes.BuildManifest(cfg)
	end()
	if err != nil {
		return nil, err
	}

	return &CompileResult{
		Config:     cfg,
		Manifest:   manifest,
		RouteCount: countRoutes(manifest),
	}, nil
}

// Invalidate drops the cached result. Any file change invalidates the
// whole manifest because filenames carry routing semantics.
func (c *Compiler) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

// Cached returns the cached result, or nil if none exists.
func (c *Compiler) Cached() *CompileResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached
}

// ManifestJSON returns the cached manifest serialized as JSON, or nil
// if nothing is cached.
func (c *Compiler) ManifestJSON() (json.RawMessage, error) {
	c.mu.Lock()
	cached := c.cached
	c.mu.Unlock()

	if cached == nil {
		return nil, nil
	}
	return json.Marshal(cached.Manifest)
}

// countRoutes counts the addressable routes in a manifest.
func countRoutes(route routes.Route) int {
	switch r := route.(type) {
	case *routes.RouteNode:
		n := 0
		if r.Index != nil {
			n++
		}
		n += len(r.Fallbacks)
		for _, slot := range r.Slots {
			n += countRoutes(slot)
		}
		for _, child := range r.Children {
			n += countRoutes(child)
		}
		return n
	case *routes.RouteIntercept:
		n := 0
		for _, child := range r.Children {
			n += countRoutes(child)
		}
		return n
	case *routes.RoutePage, *routes.RouteIndex, *routes.RouteFallback, *routes.RoutePublic:
		return 1
	default:
		return 0
	}
}
