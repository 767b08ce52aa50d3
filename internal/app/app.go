package app

import (
	"io"
	"log/slog"

	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/layer"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	loader   config.Loader
	registry *layer.Registry
}

// NewApp constructs the application with an isolated logger and the given
// description loader. A nil registry means the built-in layer set.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, registry *layer.Registry) *App {
	if registry == nil {
		registry = layer.Builtins()
	}
	return &App{
		outW:     outW,
		logger:   newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		loader:   loader,
		registry: registry,
	}
}

// Registry returns the application's layer registry, primarily for tests.
func (a *App) Registry() *layer.Registry { return a.registry }
