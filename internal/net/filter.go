package net

import (
	"context"
	"fmt"

	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/ctxlog"
)

// FilterLayers returns the ordered subsequence of declarations whose
// include/exclude rules are satisfied by the given execution state.
//
// A declaration with no include rules is kept unless any exclude rule meets
// the state; a declaration with include rules is dropped unless any include
// rule meets the state. Carrying both rule kinds is a configuration error.
func FilterLayers(ctx context.Context, layers []*config.LayerDesc, state *config.NetState) ([]*config.LayerDesc, error) {
	logger := ctxlog.FromContext(ctx)

	filtered := make([]*config.LayerDesc, 0, len(layers))
	for _, d := range layers {
		if len(d.Include) > 0 && len(d.Exclude) > 0 {
			return nil, fmt.Errorf("layer %q: include and exclude rules are mutually exclusive: %w", d.Name, ErrConfig)
		}

		included := len(d.Include) == 0
		for _, rule := range d.Exclude {
			if rule.Meets(state) {
				included = false
				break
			}
		}
		for _, rule := range d.Include {
			if rule.Meets(state) {
				included = true
				break
			}
		}

		if !included {
			logger.Debug("Layer excluded by state rules.", "layer", d.Name, "phase", state.Phase, "level", state.Level)
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered, nil
}
