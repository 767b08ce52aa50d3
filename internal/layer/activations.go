package layer

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/netgridgo/internal/blob"
	"github.com/vk/netgridgo/internal/config"
)

// Type tags for the element-wise activation layers. Both support in-place
// declarations (top name equal to bottom name).
const (
	TypeReLU    = "relu"
	TypeSigmoid = "sigmoid"
)

// eltwiseLayer applies fn element-wise from its single bottom to its
// single top.
type eltwiseLayer struct {
	Base
	fn func(float32) float32
}

func newReLU(desc *config.LayerDesc) (Layer, error) {
	return &eltwiseLayer{
		Base: NewBase(desc),
		fn: func(v float32) float32 {
			if v > 0 {
				return v
			}
			return 0
		},
	}, nil
}

func newSigmoid(desc *config.LayerDesc) (Layer, error) {
	return &eltwiseLayer{
		Base: NewBase(desc),
		fn: func(v float32) float32 {
			return float32(1 / (1 + math.Exp(-float64(v))))
		},
	}, nil
}

func (l *eltwiseLayer) SetUp(ctx context.Context, bottoms, tops []*blob.Blob) error {
	if len(bottoms) != 1 || len(tops) != 1 {
		return fmt.Errorf("layer %q: expects 1 bottom and 1 top, got %d and %d", l.Name(), len(bottoms), len(tops))
	}
	return l.Reshape(bottoms, tops)
}

func (l *eltwiseLayer) Reshape(bottoms, tops []*blob.Blob) error {
	if tops[0] != bottoms[0] {
		tops[0].ReshapeLike(bottoms[0])
	}
	return nil
}

func (l *eltwiseLayer) Forward(ctx context.Context, bottoms, tops []*blob.Blob) error {
	in, out := bottoms[0].Data(), tops[0].Data()
	for i, v := range in {
		out[i] = l.fn(v)
	}
	return nil
}
