package layer

import (
	"context"
	"fmt"

	"github.com/vk/netgridgo/internal/blob"
	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/kernels"
)

// TypeInnerProduct is the type tag for the fully connected layer.
const TypeInnerProduct = "inner_product"

// innerProductLayer computes top = bottom * Wᵀ (+ bias). The bottom is
// treated as a [batch, features] matrix; trailing dimensions are folded
// into the feature axis.
type innerProductLayer struct {
	Base
	numOutput int
	withBias  bool

	weight *blob.Blob
	bias   *blob.Blob
}

func newInnerProduct(desc *config.LayerDesc) (Layer, error) {
	numOutput, err := desc.OptInt("num_output", 0)
	if err != nil {
		return nil, err
	}
	if numOutput <= 0 {
		return nil, fmt.Errorf("layer %q: inner_product requires num_output > 0", desc.Name)
	}
	withBias, err := desc.OptBool("bias", true)
	if err != nil {
		return nil, err
	}
	return &innerProductLayer{Base: NewBase(desc), numOutput: numOutput, withBias: withBias}, nil
}

// batchAndFeatures folds a bottom shape into [batch, features].
func batchAndFeatures(b *blob.Blob) (int, int) {
	shape := b.Shape()
	if len(shape) == 0 {
		return 0, 0
	}
	batch := shape[0]
	features := 1
	for _, d := range shape[1:] {
		features *= d
	}
	return batch, features
}

func (l *innerProductLayer) SetUp(ctx context.Context, bottoms, tops []*blob.Blob) error {
	if len(bottoms) != 1 || len(tops) != 1 {
		return fmt.Errorf("layer %q: expects 1 bottom and 1 top, got %d and %d", l.Name(), len(bottoms), len(tops))
	}
	_, features := batchAndFeatures(bottoms[0])
	if features == 0 {
		return fmt.Errorf("layer %q: bottom %q has no features (shape %s)", l.Name(), bottoms[0].Name(), bottoms[0].ShapeString())
	}

	l.weight = blob.New(l.Name()+"_weight", l.numOutput, features)
	l.AddParam(l.weight)
	if l.withBias {
		l.bias = blob.New(l.Name()+"_bias", l.numOutput)
		l.AddParam(l.bias)
	}
	return l.Reshape(bottoms, tops)
}

func (l *innerProductLayer) Reshape(bottoms, tops []*blob.Blob) error {
	batch, features := batchAndFeatures(bottoms[0])
	if !l.weight.ShapeEquals([]int{l.numOutput, features}) {
		return fmt.Errorf("layer %q: bottom feature count %d does not match weight shape %s",
			l.Name(), features, l.weight.ShapeString())
	}
	tops[0].Reshape(batch, l.numOutput)
	return nil
}

func (l *innerProductLayer) Forward(ctx context.Context, bottoms, tops []*blob.Blob) error {
	batch, features := batchAndFeatures(bottoms[0])

	// The weight is stored [numOutput, features]; each input row is the
	// k×1 right operand, so Gemm yields orow[j] = Σ_p w[j,p] * irow[p].
	out := tops[0].Data()
	in := bottoms[0].Data()
	w := l.weight.Data()
	for i := 0; i < batch; i++ {
		irow := in[i*features : (i+1)*features]
		orow := out[i*l.numOutput : (i+1)*l.numOutput]
		kernels.Gemm(orow, w, irow, l.numOutput, features, 1)
	}
	if l.withBias {
		kernels.AddBias(out, l.bias.Data(), batch, l.numOutput)
	}
	return nil
}
