package net

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/netgridgo/internal/ctxlog"
)

// Forward runs every layer in declaration order.
func (n *Net) Forward(ctx context.Context) error {
	return n.ForwardRange(ctx, 0, len(n.layers)-1)
}

// ForwardFrom runs layers [start, last].
func (n *Net) ForwardFrom(ctx context.Context, start int) error {
	return n.ForwardRange(ctx, start, len(n.layers)-1)
}

// ForwardTo runs layers [0, end].
func (n *Net) ForwardTo(ctx context.Context, end int) error {
	return n.ForwardRange(ctx, 0, end)
}

// ForwardRange runs layers [start, end] inclusive, in declaration order.
// After each layer runs, every blob it consumed whose lifetime has expired
// is released. Out-of-range indices violate the call's precondition.
func (n *Net) ForwardRange(ctx context.Context, start, end int) error {
	if start < 0 || end >= len(n.layers) || start > end {
		return fmt.Errorf("forward range [%d, %d] outside layers [0, %d): %w",
			start, end, len(n.layers), ErrPrecondition)
	}
	logger := ctxlog.FromContext(ctx)

	for i := start; i <= end; i++ {
		if err := n.forwardLayer(ctx, i); err != nil {
			return fmt.Errorf("layer %q (index %d): forward failed: %w", n.layers[i].Name(), i, err)
		}
		n.releaseExpired(logger, i)
	}
	return nil
}

// forwardLayer wraps one layer invocation in its profiling scope; the
// deferred end keeps the scope matched even when the invocation fails.
func (n *Net) forwardLayer(ctx context.Context, i int) error {
	defer n.tracer.StartScope(n.layers[i].Name())()
	return n.layers[i].Forward(ctx, n.bottoms[i], n.tops[i])
}

// releaseExpired frees the storage of every blob consumed by layer i whose
// recorded lifetime is at or before i. Pinned network outputs stay live.
func (n *Net) releaseExpired(logger *slog.Logger, i int) {
	for _, id := range n.bottomIDs[i] {
		if _, ok := n.pinned[id]; ok {
			continue
		}
		b := n.blobs[id]
		if n.lifetime[id] <= i && b.Live() {
			b.Release()
			logger.Debug("Blob storage released.", "blob", n.blobNames[id], "afterLayer", i)
		}
	}
}

// Reshape recomputes every layer's top shapes from its current bottom
// shapes, in declaration order. Nothing is released; calling it twice with
// unchanged input shapes leaves all shapes unchanged.
func (n *Net) Reshape() error {
	for i, l := range n.layers {
		if err := l.Reshape(n.bottoms[i], n.tops[i]); err != nil {
			return fmt.Errorf("layer %q (index %d): reshape failed: %w", l.Name(), i, err)
		}
	}
	return nil
}
