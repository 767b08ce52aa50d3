package net

import (
	"fmt"

	"github.com/vk/netgridgo/internal/blob"
	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/layer"
	"github.com/vk/netgridgo/internal/prof"
)

// Net owns the ordered layer list, the blob arena, the derived name
// indices, the flat parameter list, and the per-blob lifetime table. Blob
// identity is a dense, zero-based index into the arena; names are lookup
// keys only.
type Net struct {
	name   string
	tracer *prof.Tracer

	layers     []layer.Layer
	descs      []*config.LayerDesc
	layerIndex map[string]int

	blobs     []*blob.Blob
	blobNames []string
	blobIndex map[string]int

	// Per layer, the resolved bottom/top blob references and identities.
	bottoms   [][]*blob.Blob
	tops      [][]*blob.Blob
	bottomIDs [][]int
	topIDs    [][]int

	// lifetime[id] is the highest layer index that reads or writes the
	// blob; pinned identities are never released.
	lifetime []int
	pinned   map[int]struct{}

	inputIDs  []int
	outputIDs []int

	params     []*blob.Blob
	paramNames []string
	paramIDs   [][]int
}

// Name returns the description's network name.
func (n *Net) Name() string { return n.name }

// NumLayers returns the number of instantiated layers.
func (n *Net) NumLayers() int { return len(n.layers) }

// Layers returns the instantiated layers in declaration order.
func (n *Net) Layers() []layer.Layer { return n.layers }

// Blobs returns every blob in the arena, indexed by identity.
func (n *Net) Blobs() []*blob.Blob { return n.blobs }

// HasBlob reports whether a blob with the given name exists.
func (n *Net) HasBlob(name string) bool {
	_, ok := n.blobIndex[name]
	return ok
}

// BlobByName resolves a blob by name. A miss is a normal negative result,
// never an error.
func (n *Net) BlobByName(name string) (*blob.Blob, bool) {
	id, ok := n.blobIndex[name]
	if !ok {
		return nil, false
	}
	return n.blobs[id], true
}

// HasLayer reports whether a layer with the given name exists.
func (n *Net) HasLayer(name string) bool {
	_, ok := n.layerIndex[name]
	return ok
}

// LayerByName resolves a layer by name with the same comma-ok discipline
// as BlobByName.
func (n *Net) LayerByName(name string) (layer.Layer, bool) {
	i, ok := n.layerIndex[name]
	if !ok {
		return nil, false
	}
	return n.layers[i], true
}

// InputBlobs returns the blobs produced by the input layers.
func (n *Net) InputBlobs() []*blob.Blob { return n.blobsByID(n.inputIDs) }

// OutputBlobs returns the network output blobs: every blob left unconsumed
// at the end of construction plus any blob pinned via MarkOutputs.
func (n *Net) OutputBlobs() []*blob.Blob { return n.blobsByID(n.outputIDs) }

func (n *Net) blobsByID(ids []int) []*blob.Blob {
	out := make([]*blob.Blob, len(ids))
	for i, id := range ids {
		out[i] = n.blobs[id]
	}
	return out
}

// MarkOutputs pins the named blobs as network outputs, force-extending
// their lifetime to the last layer so execution never releases them.
func (n *Net) MarkOutputs(names ...string) error {
	for _, name := range names {
		id, ok := n.blobIndex[name]
		if !ok {
			return fmt.Errorf("mark outputs: unknown blob %q: %w", name, ErrConfig)
		}
		n.pin(id)
	}
	return nil
}

func (n *Net) pin(id int) {
	n.lifetime[id] = len(n.layers) - 1
	if _, already := n.pinned[id]; !already {
		n.pinned[id] = struct{}{}
		n.outputIDs = append(n.outputIDs, id)
	}
}

// Params returns the flat network-wide parameter list.
func (n *Net) Params() []*blob.Blob { return n.params }

// ParamNames returns the display names aligned with Params.
func (n *Net) ParamNames() []string { return n.paramNames }

// MemoryFootprint returns the bytes-equivalent footprint of all live blob
// and parameter storage.
func (n *Net) MemoryFootprint() int {
	total := 0
	for _, b := range n.blobs {
		total += b.MemBytes()
	}
	for _, p := range n.params {
		total += p.MemBytes()
	}
	return total
}
