package layer

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/netgridgo/internal/blob"
	"github.com/vk/netgridgo/internal/config"
)

// TypeSoftmax is the type tag for the softmax layer, normalizing over the
// trailing feature axis.
const TypeSoftmax = "softmax"

type softmaxLayer struct {
	Base
}

func newSoftmax(desc *config.LayerDesc) (Layer, error) {
	return &softmaxLayer{Base: NewBase(desc)}, nil
}

func (l *softmaxLayer) SetUp(ctx context.Context, bottoms, tops []*blob.Blob) error {
	if len(bottoms) != 1 || len(tops) != 1 {
		return fmt.Errorf("layer %q: expects 1 bottom and 1 top, got %d and %d", l.Name(), len(bottoms), len(tops))
	}
	return l.Reshape(bottoms, tops)
}

func (l *softmaxLayer) Reshape(bottoms, tops []*blob.Blob) error {
	if tops[0] != bottoms[0] {
		tops[0].ReshapeLike(bottoms[0])
	}
	return nil
}

func (l *softmaxLayer) Forward(ctx context.Context, bottoms, tops []*blob.Blob) error {
	batch, features := batchAndFeatures(bottoms[0])
	in, out := bottoms[0].Data(), tops[0].Data()
	for i := 0; i < batch; i++ {
		irow := in[i*features : (i+1)*features]
		orow := out[i*features : (i+1)*features]

		// Shift by the row max for numeric stability.
		max := irow[0]
		for _, v := range irow[1:] {
			if v > max {
				max = v
			}
		}
		var sum float64
		for j, v := range irow {
			e := math.Exp(float64(v - max))
			orow[j] = float32(e)
			sum += e
		}
		inv := float32(1 / sum)
		for j := range orow {
			orow[j] *= inv
		}
	}
	return nil
}
