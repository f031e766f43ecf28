package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/loomhdl/loom/elab"
)

// Module is the interface built-in generator packages implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// BuildFunc declares a design's block tree from decoded params and
// returns its root block. The root must be closed when the function
// returns.
type BuildFunc func(ctx context.Context, d *elab.Design, params any) (*elab.Block, error)

// Generator couples a manifest generator type with its compiled Go
// parts. ParamsType describes the params struct; NewParams returns a
// fresh pointer to one for decoding. Generators without params leave
// both nil.
type Generator struct {
	Type        string
	Description string
	NewParams   func() any
	ParamsType  reflect.Type
	Build       BuildFunc
}

// Registry holds all registered generators for a single application
// instance.
type Registry struct {
	generators map[string]*Generator
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		generators: make(map[string]*Generator),
	}
}

// Register adds a generator under its type name. Registering a nil or
// unnamed generator, or a type twice, panics: both are wiring mistakes
// in a module's Register function.
func (r *Registry) Register(gen *Generator) {
	if gen == nil || gen.Type == "" {
		panic("registry: generator without a type")
	}
	if _, exists := r.generators[gen.Type]; exists {
		panic(fmt.Sprintf("generator with type '%s' already registered", gen.Type))
	}
	slog.Debug("Registering generator.", "type", gen.Type)
	r.generators[gen.Type] = gen
}

// Lookup returns the generator registered under typ.
func (r *Registry) Lookup(typ string) (*Generator, bool) {
	gen, ok := r.generators[typ]
	return gen, ok
}

// Types returns the registered generator types, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.generators))
	for t := range r.generators {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered generators.
func (r *Registry) Len() int { return len(r.generators) }
