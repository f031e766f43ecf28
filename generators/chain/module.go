// Package chain provides the built-in 'chain' generator: a linear
// pipeline of stages where each stage feeds the next and the head and
// tail ports surface on the design boundary.
package chain

import (
	"context"
	"fmt"
	"reflect"

	"github.com/loomhdl/loom/elab"
	"github.com/loomhdl/loom/internal/ctxlog"
	"github.com/loomhdl/loom/registry"
	"github.com/loomhdl/loom/signal"
	"github.com/loomhdl/loom/wire"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Params configure the chain generator.
type Params struct {
	Stages int `loom:"stages"`
	Width  int `loom:"width"`
}

type chainDef struct{}
type stageDef struct{}

// Build declares a chain of Stages stage blocks carrying uint<Width>
// payloads. Stage n's output links to stage n+1's input; the first input
// and last output stay unlinked and climb to the design boundary.
func Build(ctx context.Context, d *elab.Design, params any) (*elab.Block, error) {
	p, ok := params.(*Params)
	if !ok {
		return nil, fmt.Errorf("chain: unexpected params type %T", params)
	}
	if p.Stages < 1 {
		return nil, fmt.Errorf("chain: stages must be positive, got %d", p.Stages)
	}
	if p.Width < 1 {
		return nil, fmt.Errorf("chain: width must be positive, got %d", p.Width)
	}
	payload := signal.UInt(p.Width)

	return elab.Declare(d, chainDef{}, func(root *elab.Block) error {
		root.SuggestName("chain")

		var prevOut *wire.Endpoint
		for i := 0; i < p.Stages; i++ {
			name := fmt.Sprintf("stage_%d", i)
			_, err := elab.Declare(d, stageDef{}, func(stage *elab.Block) error {
				stage.SuggestName(name)
				in := wire.NewSink(d, "in", payload)
				out := wire.NewSource(d, "out", payload)
				d.Defer(func() error {
					ctxlog.FromContext(ctx).Debug("Stage finalized.",
						"stage", name, "ports", stage.Boundary().Len())
					return nil
				})
				if prevOut != nil {
					if err := wire.Connect(prevOut, in); err != nil {
						return err
					}
				}
				prevOut = out
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Register registers the generator with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Generator{
		Type:        "chain",
		Description: "Linear pipeline of stages with head and tail ports promoted to the boundary.",
		NewParams:   func() any { return new(Params) },
		ParamsType:  reflect.TypeOf(Params{}),
		Build:       Build,
	})
}
