package layer

import (
	"fmt"
	"log/slog"

	"github.com/vk/netgridgo/internal/config"
)

// Factory constructs a layer from its declaration. Factories must not
// touch blobs; all shape work happens later in SetUp.
type Factory func(desc *config.LayerDesc) (Layer, error)

// Registry maps declaration type tags to layer factories for a single
// application instance.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given type tag. Registering the same
// tag twice is a programmer error.
func (r *Registry) Register(typeTag string, f Factory) {
	if _, exists := r.factories[typeTag]; exists {
		panic(fmt.Sprintf("layer factory for type %q already registered", typeTag))
	}
	slog.Debug("Registering layer factory.", "type", typeTag)
	r.factories[typeTag] = f
}

// Has reports whether a factory exists for the type tag.
func (r *Registry) Has(typeTag string) bool {
	_, ok := r.factories[typeTag]
	return ok
}

// New dispatches a declaration to its factory.
func (r *Registry) New(desc *config.LayerDesc) (Layer, error) {
	f, ok := r.factories[desc.Type]
	if !ok {
		return nil, fmt.Errorf("layer %q: no factory registered for type %q", desc.Name, desc.Type)
	}
	return f(desc)
}

// Builtins returns a registry populated with every layer type this package
// ships.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register(TypeInput, newInput)
	r.Register(TypeReLU, newReLU)
	r.Register(TypeSigmoid, newSigmoid)
	r.Register(TypeInnerProduct, newInnerProduct)
	r.Register(TypeSoftmax, newSoftmax)
	r.Register(TypeFlatten, newFlatten)
	return r
}
