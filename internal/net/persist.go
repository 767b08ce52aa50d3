package net

import (
	"context"
	"fmt"

	"github.com/vk/netgridgo/internal/blob"
	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/ctxlog"
	"github.com/vk/netgridgo/internal/weights"
)

// Export serializes the net back into a description: the filtered layer
// declarations, cloned, in declaration order. Rebuilding from the result
// yields the same layer names, blob identity order, and parameter display
// names.
func (n *Net) Export() *config.NetDescription {
	out := &config.NetDescription{Name: n.name}
	for _, l := range n.layers {
		out.Layers = append(out.Layers, l.Desc().Clone())
	}
	return out
}

// Snapshot captures the current parameter buffers of every layer, in
// declaration order, as a savable trained-parameter structure.
func (n *Net) Snapshot() *weights.Snapshot {
	snap := &weights.Snapshot{Name: n.name}
	for _, l := range n.layers {
		lp := weights.LayerParams{Name: l.Name()}
		for _, p := range l.Params() {
			lp.Blobs = append(lp.Blobs, weights.BlobData{
				Shape: append([]int(nil), p.Shape()...),
				Data:  append([]float32(nil), p.Data()...),
			})
		}
		snap.Layers = append(snap.Layers, lp)
	}
	return snap
}

// CopyTrainedFrom copies pretrained parameter values into matching layers
// by name. Source layers without a live counterpart are skipped silently;
// this partial-transfer behavior is intentional. A parameter count or
// shape mismatch on a matched layer is unrecoverable.
func (n *Net) CopyTrainedFrom(ctx context.Context, snap *weights.Snapshot) error {
	logger := ctxlog.FromContext(ctx)

	for _, src := range snap.Layers {
		idx, ok := n.layerIndex[src.Name]
		if !ok {
			logger.Debug("Source layer absent from target net, skipping.", "layer", src.Name)
			continue
		}
		target := n.layers[idx].Params()
		if len(target) != len(src.Blobs) {
			return fmt.Errorf("incompatible number of parameter blobs for layer %q: target has %d, source has %d: %w",
				src.Name, len(target), len(src.Blobs), ErrConfig)
		}
		for j, srcBlob := range src.Blobs {
			if !target[j].ShapeEquals(srcBlob.Shape) {
				return fmt.Errorf("cannot copy param %d of layer %q: shape mismatch, source is %s, target is %s; "+
					"rename the layer to initialize its parameters from scratch: %w",
					j, src.Name, blob.FormatShape(srcBlob.Shape), target[j].ShapeString(), ErrConfig)
			}
			if err := target[j].CopyFrom(srcBlob.Data); err != nil {
				return fmt.Errorf("copying param %d of layer %q: %w (%w)", j, src.Name, err, ErrConfig)
			}
		}
		logger.Debug("Layer parameters loaded.", "layer", src.Name, "blobs", len(src.Blobs))
	}
	return nil
}
