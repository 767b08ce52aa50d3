// Package blob provides the tensor buffer type that flows between layers.
//
// A Blob owns a shape and a contiguous float32 store. Identity within a
// network is the blob's integer index in the owning net, never its name;
// the name carried here exists for lookups and diagnostics only.
package blob

import (
	"fmt"
	"strings"
)

// ElementSize is the storage size of a single blob element in bytes.
const ElementSize = 4

// Blob is a named, shape-typed tensor storage unit.
type Blob struct {
	name     string
	shape    []int
	data     []float32
	released bool
}

// New creates a live blob with the given name and shape, allocating storage.
func New(name string, shape ...int) *Blob {
	b := &Blob{name: name}
	b.Reshape(shape...)
	return b
}

// Name returns the lookup name the blob was created under.
func (b *Blob) Name() string { return b.name }

// Shape returns the blob's dimension sizes. Callers must not mutate it.
func (b *Blob) Shape() []int { return b.shape }

// Count returns the total number of elements implied by the shape.
func (b *Blob) Count() int {
	n := 1
	for _, d := range b.shape {
		n *= d
	}
	if len(b.shape) == 0 {
		return 0
	}
	return n
}

// Data returns the element store. It is nil once the blob has been released.
func (b *Blob) Data() []float32 { return b.data }

// Live reports whether the blob's storage is still allocated.
func (b *Blob) Live() bool { return !b.released }

// Reshape sets the blob's shape, growing the element store as needed.
// Reshaping a released blob updates the shape metadata only; the storage
// stays freed until Revive is called.
func (b *Blob) Reshape(shape ...int) {
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("blob %q: negative dimension %d", b.name, d))
		}
	}
	b.shape = append(b.shape[:0], shape...)
	if b.released {
		return
	}
	n := b.Count()
	if cap(b.data) < n {
		b.data = make([]float32, n)
	} else {
		b.data = b.data[:n]
	}
}

// ReshapeLike reshapes the blob to match other's shape.
func (b *Blob) ReshapeLike(other *Blob) {
	b.Reshape(other.Shape()...)
}

// Release frees the element store. Shape metadata remains valid and
// queryable; only the storage is gone.
func (b *Blob) Release() {
	b.data = nil
	b.released = true
}

// Revive re-allocates storage for a released blob using its current shape.
func (b *Blob) Revive() {
	if !b.released {
		return
	}
	b.released = false
	b.data = make([]float32, b.Count())
}

// ShapeEquals reports whether the blob's shape matches the given dimensions.
func (b *Blob) ShapeEquals(shape []int) bool {
	if len(b.shape) != len(shape) {
		return false
	}
	for i, d := range b.shape {
		if d != shape[i] {
			return false
		}
	}
	return true
}

// ShapeString renders the shape for diagnostics, e.g. "3 3 3 16 (432)".
func (b *Blob) ShapeString() string {
	return FormatShape(b.shape)
}

// FormatShape renders a raw shape the same way ShapeString does.
func FormatShape(shape []int) string {
	var sb strings.Builder
	n := 1
	for _, d := range shape {
		fmt.Fprintf(&sb, "%d ", d)
		n *= d
	}
	if len(shape) == 0 {
		n = 0
	}
	fmt.Fprintf(&sb, "(%d)", n)
	return sb.String()
}

// CopyFrom overwrites the blob's elements with vals. The caller is
// responsible for shape agreement; length mismatch is an error.
func (b *Blob) CopyFrom(vals []float32) error {
	if b.released {
		return fmt.Errorf("blob %q: cannot copy into released storage", b.name)
	}
	if len(vals) != len(b.data) {
		return fmt.Errorf("blob %q: element count mismatch, have %d want %d", b.name, len(vals), len(b.data))
	}
	copy(b.data, vals)
	return nil
}

// MemBytes returns the bytes-equivalent footprint of the blob's elements,
// counting released blobs as zero.
func (b *Blob) MemBytes() int {
	if b.released {
		return 0
	}
	return b.Count() * ElementSize
}
