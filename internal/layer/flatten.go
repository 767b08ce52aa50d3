package layer

import (
	"context"
	"fmt"

	"github.com/vk/netgridgo/internal/blob"
	"github.com/vk/netgridgo/internal/config"
)

// TypeFlatten is the type tag for the flatten layer, folding all trailing
// dimensions into one feature axis.
const TypeFlatten = "flatten"

type flattenLayer struct {
	Base
}

func newFlatten(desc *config.LayerDesc) (Layer, error) {
	return &flattenLayer{Base: NewBase(desc)}, nil
}

func (l *flattenLayer) SetUp(ctx context.Context, bottoms, tops []*blob.Blob) error {
	if len(bottoms) != 1 || len(tops) != 1 {
		return fmt.Errorf("layer %q: expects 1 bottom and 1 top, got %d and %d", l.Name(), len(bottoms), len(tops))
	}
	if tops[0] == bottoms[0] {
		return fmt.Errorf("layer %q: flatten does not support in-place declarations", l.Name())
	}
	return l.Reshape(bottoms, tops)
}

func (l *flattenLayer) Reshape(bottoms, tops []*blob.Blob) error {
	batch, features := batchAndFeatures(bottoms[0])
	tops[0].Reshape(batch, features)
	return nil
}

func (l *flattenLayer) Forward(ctx context.Context, bottoms, tops []*blob.Blob) error {
	copy(tops[0].Data(), bottoms[0].Data())
	return nil
}
