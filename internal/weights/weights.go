// Package weights defines the trained-parameter snapshot format: per layer,
// a name plus the layer's parameter blobs (shape and values). Snapshots are
// written as msgpack, loaded back shape-checked against a live net.
package weights

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// BlobData is one serialized parameter buffer.
type BlobData struct {
	Shape []int     `msgpack:"shape"`
	Data  []float32 `msgpack:"data"`
}

// Count returns the element count implied by the shape.
func (b *BlobData) Count() int {
	n := 1
	for _, d := range b.Shape {
		n *= d
	}
	if len(b.Shape) == 0 {
		return 0
	}
	return n
}

// LayerParams carries the parameter buffers of one layer, keyed by the
// layer's declared name.
type LayerParams struct {
	Name  string     `msgpack:"name"`
	Blobs []BlobData `msgpack:"blobs"`
}

// Snapshot is a full trained-parameter file: the net name and its layers'
// current parameter buffers, in declaration order.
type Snapshot struct {
	Name   string        `msgpack:"name"`
	Layers []LayerParams `msgpack:"layers"`
}

// Load reads and decodes a snapshot file.
func Load(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weights file %s: %w", path, err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decoding weights file %s: %w", path, err)
	}
	return &snap, nil
}

// Save encodes and writes a snapshot file.
func Save(path string, snap *Snapshot) error {
	raw, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding weights snapshot: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing weights file %s: %w", path, err)
	}
	return nil
}
