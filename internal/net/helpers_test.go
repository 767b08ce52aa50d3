package net

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/layer"
)

// inputDesc declares an input layer producing top with the given shape.
func inputDesc(name, top string, shape ...int) *config.LayerDesc {
	dims := make([]cty.Value, len(shape))
	for i, d := range shape {
		dims[i] = cty.NumberIntVal(int64(d))
	}
	return &config.LayerDesc{
		Type: layer.TypeInput,
		Name: name,
		Tops: []string{top},
		Options: map[string]cty.Value{
			"shape": cty.ListVal(dims),
		},
	}
}

func reluDesc(name, bottom, top string) *config.LayerDesc {
	return &config.LayerDesc{
		Type:    layer.TypeReLU,
		Name:    name,
		Bottoms: []string{bottom},
		Tops:    []string{top},
	}
}

func softmaxDesc(name, bottom, top string) *config.LayerDesc {
	return &config.LayerDesc{
		Type:    layer.TypeSoftmax,
		Name:    name,
		Bottoms: []string{bottom},
		Tops:    []string{top},
	}
}

func innerProductDesc(name, bottom, top string, numOutput int) *config.LayerDesc {
	return &config.LayerDesc{
		Type:    layer.TypeInnerProduct,
		Name:    name,
		Bottoms: []string{bottom},
		Tops:    []string{top},
		Options: map[string]cty.Value{
			"num_output": cty.NumberIntVal(int64(numOutput)),
		},
	}
}

func netDesc(name string, layers ...*config.LayerDesc) *config.NetDescription {
	return &config.NetDescription{Name: name, Layers: layers}
}
