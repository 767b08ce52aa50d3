package net

import (
	"context"
	"fmt"

	"github.com/vk/netgridgo/internal/blob"
	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/ctxlog"
	"github.com/vk/netgridgo/internal/layer"
	"github.com/vk/netgridgo/internal/prof"
)

// Build resolves the description into a ready-to-run Net. Declarations are
// filtered by the execution state, connected in declaration order (which
// must already be topologically valid), instantiated through the registry,
// and set up once with their resolved bottom/top blobs. Lifetimes and the
// flat parameter list are computed inline.
//
// The tracer is the explicit profiling handle used by the execution engine;
// nil disables scoping.
func Build(ctx context.Context, desc *config.NetDescription, state *config.NetState, reg *layer.Registry, tracer *prof.Tracer) (*Net, error) {
	logger := ctxlog.FromContext(ctx)
	if state == nil {
		state = desc.State
	}
	if state == nil {
		state = &config.NetState{}
	}

	filtered, err := FilterLayers(ctx, desc.Layers, state)
	if err != nil {
		return nil, err
	}
	logger.Debug("State filter applied.", "declared", len(desc.Layers), "kept", len(filtered))

	if len(filtered) == 0 {
		return nil, fmt.Errorf("network %q: no layers remain after state filtering: %w", desc.Name, ErrConfig)
	}
	if filtered[0].Type != layer.TypeInput {
		return nil, fmt.Errorf("network %q: first layer %q has type %q, want %q: %w",
			desc.Name, filtered[0].Name, filtered[0].Type, layer.TypeInput, ErrConfig)
	}

	n := &Net{
		name:       desc.Name,
		tracer:     tracer,
		layerIndex: make(map[string]int, len(filtered)),
		blobIndex:  make(map[string]int),
		pinned:     make(map[int]struct{}),
		bottoms:    make([][]*blob.Blob, len(filtered)),
		tops:       make([][]*blob.Blob, len(filtered)),
		bottomIDs:  make([][]int, len(filtered)),
		topIDs:     make([][]int, len(filtered)),
		paramIDs:   make([][]int, len(filtered)),
	}

	// available is the working set of producible-but-unconsumed blob names.
	available := make(map[string]struct{})

	for i, d := range filtered {
		l, err := reg.New(d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", err, ErrConfig)
		}

		for j, name := range d.Bottoms {
			if err := n.appendBottom(i, j, d, name, available); err != nil {
				return nil, err
			}
		}
		for j, name := range d.Tops {
			if err := n.appendTop(i, j, d, name, available); err != nil {
				return nil, err
			}
		}

		if err := l.SetUp(ctx, n.bottoms[i], n.tops[i]); err != nil {
			return nil, fmt.Errorf("layer %q: setup failed: %w (%w)", d.Name, err, ErrConfig)
		}
		n.bindParams(i, d, l)

		n.layers = append(n.layers, l)
		n.descs = append(n.descs, d)
		n.layerIndex[d.Name] = i

		if d.Type == layer.TypeInput {
			n.inputIDs = append(n.inputIDs, n.topIDs[i]...)
		}
		logger.Debug("Layer connected.", "layer", d.Name, "type", d.Type, "index", i)
	}

	// Anything still available was never consumed downstream: those blobs
	// are the network outputs, pinned so execution keeps them live.
	for id := range n.blobs {
		if _, ok := available[n.blobNames[id]]; ok {
			n.pin(id)
		}
	}
	logger.Debug("Network built.", "layers", len(n.layers), "blobs", len(n.blobs), "outputs", len(n.outputIDs), "params", len(n.params))

	return n, nil
}

// appendBottom resolves one consumed blob name to an existing identity and
// removes the name from availability.
func (n *Net) appendBottom(layerIdx, bottomIdx int, d *config.LayerDesc, name string, available map[string]struct{}) error {
	if _, ok := available[name]; !ok {
		return fmt.Errorf("unknown bottom blob %q (layer %q, bottom index %d): %w",
			name, d.Name, bottomIdx, ErrConfig)
	}
	id := n.blobIndex[name]
	delete(available, name)

	n.bottomIDs[layerIdx] = append(n.bottomIDs[layerIdx], id)
	n.bottoms[layerIdx] = append(n.bottoms[layerIdx], n.blobs[id])
	n.extendLifetime(id, layerIdx)
	return nil
}

// appendTop resolves one produced blob name: in-place reuse when the top
// name matches the bottom name at the same position, a fresh identity
// otherwise, and a duplicate-producer error when the name already has a
// producer without the in-place relation.
func (n *Net) appendTop(layerIdx, topIdx int, d *config.LayerDesc, name string, available map[string]struct{}) error {
	if topIdx < len(d.Bottoms) && name == d.Bottoms[topIdx] {
		// In-place computation: top shares the bottom's identity.
		id := n.blobIndex[name]
		n.topIDs[layerIdx] = append(n.topIDs[layerIdx], id)
		n.tops[layerIdx] = append(n.tops[layerIdx], n.blobs[id])
		n.extendLifetime(id, layerIdx)
		available[name] = struct{}{}
		return nil
	}
	if _, produced := n.blobIndex[name]; produced {
		return fmt.Errorf("top blob %q produced by multiple sources (layer %q, top index %d): %w",
			name, d.Name, topIdx, ErrConfig)
	}

	id := len(n.blobs)
	n.blobs = append(n.blobs, blob.New(name))
	n.blobNames = append(n.blobNames, name)
	n.blobIndex[name] = id
	n.lifetime = append(n.lifetime, layerIdx)
	available[name] = struct{}{}

	n.topIDs[layerIdx] = append(n.topIDs[layerIdx], id)
	n.tops[layerIdx] = append(n.tops[layerIdx], n.blobs[id])
	return nil
}

// extendLifetime raises a blob's recorded lifetime to the given layer
// index; a lifetime never decreases once extended.
func (n *Net) extendLifetime(id, layerIdx int) {
	if n.lifetime[id] < layerIdx {
		n.lifetime[id] = layerIdx
	}
}
