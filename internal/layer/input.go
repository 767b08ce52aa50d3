package layer

import (
	"context"
	"fmt"

	"github.com/vk/netgridgo/internal/blob"
	"github.com/vk/netgridgo/internal/config"
)

// TypeInput is the type tag for the network entry layer. A net built for
// inference must start with one.
const TypeInput = "input"

// inputLayer produces the network's input blobs. It consumes nothing and
// its forward pass is a no-op; callers fill the top blobs before running.
type inputLayer struct {
	Base
	shape []int
}

func newInput(desc *config.LayerDesc) (Layer, error) {
	shape, err := desc.OptIntList("shape")
	if err != nil {
		return nil, err
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("layer %q: input requires a non-empty shape option", desc.Name)
	}
	return &inputLayer{Base: NewBase(desc), shape: shape}, nil
}

func (l *inputLayer) SetUp(ctx context.Context, bottoms, tops []*blob.Blob) error {
	if len(bottoms) != 0 {
		return fmt.Errorf("layer %q: input takes no bottoms, got %d", l.Name(), len(bottoms))
	}
	if len(tops) == 0 {
		return fmt.Errorf("layer %q: input requires at least one top", l.Name())
	}
	return l.Reshape(bottoms, tops)
}

func (l *inputLayer) Reshape(bottoms, tops []*blob.Blob) error {
	for _, t := range tops {
		t.Reshape(l.shape...)
	}
	return nil
}

func (l *inputLayer) Forward(ctx context.Context, bottoms, tops []*blob.Blob) error {
	return nil
}
