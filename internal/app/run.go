package app

import (
	"context"
	"fmt"

	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/ctxlog"
	"github.com/vk/netgridgo/internal/net"
	"github.com/vk/netgridgo/internal/prof"
	"github.com/vk/netgridgo/internal/weights"
)

// Run loads the description, builds the net for the configured execution
// state, optionally copies pretrained weights in, and drives one forward
// pass, reporting the output blobs.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	desc, err := a.loader.Load(ctx, cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("failed to load network description: %w", err)
	}
	a.logger.Debug("Description loaded.", "network", desc.Name, "layers", len(desc.Layers))

	state := resolveState(desc, cfg)

	var tracer *prof.Tracer
	if cfg.Trace {
		tracer = prof.New(a.logger)
	}

	n, err := net.Build(ctx, desc, state, a.registry, tracer)
	if err != nil {
		return fmt.Errorf("failed to build network: %w", err)
	}
	a.logger.Info("Network built.",
		"network", n.Name(), "layers", n.NumLayers(),
		"blobs", len(n.Blobs()), "memoryBytes", n.MemoryFootprint())

	if cfg.WeightsPath != "" {
		snap, err := weights.Load(cfg.WeightsPath)
		if err != nil {
			return err
		}
		if err := n.CopyTrainedFrom(ctx, snap); err != nil {
			return fmt.Errorf("failed to load trained parameters: %w", err)
		}
		a.logger.Info("Trained parameters loaded.", "path", cfg.WeightsPath)
	}

	if err := n.Forward(ctx); err != nil {
		return fmt.Errorf("forward pass failed: %w", err)
	}

	for _, out := range n.OutputBlobs() {
		a.logger.Info("Network output.", "blob", out.Name(), "shape", out.ShapeString())
	}
	a.logger.Info("Forward pass finished.", "memoryBytes", n.MemoryFootprint())

	if cfg.SavePath != "" {
		if err := weights.Save(cfg.SavePath, n.Snapshot()); err != nil {
			return err
		}
		a.logger.Info("Parameter snapshot written.", "path", cfg.SavePath)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// resolveState merges the description's default state with any overrides
// from the run configuration.
func resolveState(desc *config.NetDescription, cfg *Config) *config.NetState {
	state := &config.NetState{}
	if desc.State != nil {
		*state = *desc.State
	}
	if cfg.Phase != "" {
		state.Phase = cfg.Phase
	}
	if len(cfg.Stages) > 0 {
		state.Stages = cfg.Stages
	}
	if cfg.Level != 0 {
		state.Level = cfg.Level
	}
	return state
}
