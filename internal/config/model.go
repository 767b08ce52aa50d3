package config

import (
	"github.com/zclconf/go-cty/cty"
)

// NetDescription is the unified representation of a network: an ordered
// list of layer declarations plus an optional default execution state.
type NetDescription struct {
	Name   string
	State  *NetState
	Layers []*LayerDesc
}

// LayerDesc is the format-agnostic representation of a single layer block.
type LayerDesc struct {
	// Type is the registry tag that selects the layer implementation.
	Type string
	// Name is the declared instance name, unique within the description.
	Name string
	// Bottoms and Tops are the consumed and produced blob names, in order.
	Bottoms []string
	Tops    []string
	// ParamNames optionally assigns display names to the layer's learnable
	// parameter blobs by position.
	ParamNames []string
	// Include and Exclude are the state rules; a declaration may carry one
	// kind but never both.
	Include []*Rule
	Exclude []*Rule
	// Options carries the type-specific configuration as evaluated values.
	Options map[string]cty.Value
}

// Clone returns a deep copy of the declaration, sharing only the immutable
// option values.
func (d *LayerDesc) Clone() *LayerDesc {
	c := &LayerDesc{
		Type:       d.Type,
		Name:       d.Name,
		Bottoms:    append([]string(nil), d.Bottoms...),
		Tops:       append([]string(nil), d.Tops...),
		ParamNames: append([]string(nil), d.ParamNames...),
	}
	for _, r := range d.Include {
		c.Include = append(c.Include, r.clone())
	}
	for _, r := range d.Exclude {
		c.Exclude = append(c.Exclude, r.clone())
	}
	if d.Options != nil {
		c.Options = make(map[string]cty.Value, len(d.Options))
		for k, v := range d.Options {
			c.Options[k] = v
		}
	}
	return c
}
