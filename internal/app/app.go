package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/loomhdl/loom/internal/ctxlog"
	"github.com/loomhdl/loom/manifest"
	"github.com/loomhdl/loom/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	designs  []*manifest.Design
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and
// registry. When no modules are given, the compiled-in generators are
// registered.
func NewApp(outW io.Writer, config *Config, modules ...registry.Module) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreGenerators
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All generator modules registered.", "count", reg.Len())

	// A generator failing validation is a mismatch between code and its
	// own declared params, so we panic.
	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	// A failure to load manifests is a fatal startup error.
	designs, err := manifest.NewLoader().Load(ctx, config.DesignPath)
	if err != nil {
		panic(fmt.Errorf("failed to load manifests: %w", err))
	}
	logger.Debug("Manifests loaded and translated into the design model.", "designs", len(designs))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		designs:  designs,
		config:   config,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Designs returns the loaded design models. This is primarily for testing.
func (a *App) Designs() []*manifest.Design {
	return a.designs
}
