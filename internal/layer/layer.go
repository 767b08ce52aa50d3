// Package layer defines the computation contract the net core drives and
// the registry that dispatches declaration type tags to concrete layer
// implementations. The core never inspects what a layer computes; it only
// calls SetUp once after connection, Reshape to propagate shapes, and
// Forward per pass.
package layer

import (
	"context"

	"github.com/vk/netgridgo/internal/blob"
	"github.com/vk/netgridgo/internal/config"
)

// Layer is the capability set every layer implementation provides.
type Layer interface {
	// Name returns the declared instance name.
	Name() string
	// Type returns the registry type tag the layer was built from.
	Type() string

	// SetUp is invoked exactly once, after the layer's bottoms and tops
	// have been resolved. It is the layer's one chance to validate shapes,
	// size its tops, and allocate learnable parameter blobs.
	SetUp(ctx context.Context, bottoms, tops []*blob.Blob) error
	// Reshape recomputes top shapes from current bottom shapes.
	Reshape(bottoms, tops []*blob.Blob) error
	// Forward runs the layer's computation.
	Forward(ctx context.Context, bottoms, tops []*blob.Blob) error

	// Params returns the layer's learnable parameter blobs, shared with
	// the network-wide parameter list.
	Params() []*blob.Blob
	// Desc serializes the layer back into its declaration.
	Desc() *config.LayerDesc
}

// Base carries the declaration and parameter list common to all layers.
// Implementations embed it and provide the compute methods.
type Base struct {
	desc   *config.LayerDesc
	params []*blob.Blob
}

// NewBase wraps a declaration for embedding into a concrete layer.
func NewBase(desc *config.LayerDesc) Base {
	return Base{desc: desc}
}

func (b *Base) Name() string            { return b.desc.Name }
func (b *Base) Type() string            { return b.desc.Type }
func (b *Base) Params() []*blob.Blob    { return b.params }
func (b *Base) Desc() *config.LayerDesc { return b.desc }
func (b *Base) AddParam(p *blob.Blob)   { b.params = append(b.params, p) }
