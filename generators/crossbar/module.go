// Package crossbar provides the built-in 'crossbar' generator: a full
// mesh between a row of input blocks and a row of output blocks, with
// the external sides of both rows promoted to the design boundary.
package crossbar

import (
	"context"
	"fmt"
	"reflect"

	"github.com/loomhdl/loom/elab"
	"github.com/loomhdl/loom/registry"
	"github.com/loomhdl/loom/signal"
	"github.com/loomhdl/loom/wire"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Params configure the crossbar generator.
type Params struct {
	Inputs  int `loom:"inputs"`
	Outputs int `loom:"outputs"`
	Width   int `loom:"width"`
}

type crossbarDef struct{}
type inputDef struct{}
type outputDef struct{}

// Build declares Inputs input blocks and Outputs output blocks and links
// every input to every output, so the mesh resolves at the crossbar root
// while each row's external endpoint surfaces as a boundary port.
func Build(ctx context.Context, d *elab.Design, params any) (*elab.Block, error) {
	p, ok := params.(*Params)
	if !ok {
		return nil, fmt.Errorf("crossbar: unexpected params type %T", params)
	}
	if p.Inputs < 1 {
		return nil, fmt.Errorf("crossbar: inputs must be positive, got %d", p.Inputs)
	}
	if p.Outputs < 1 {
		return nil, fmt.Errorf("crossbar: outputs must be positive, got %d", p.Outputs)
	}
	if p.Width < 1 {
		return nil, fmt.Errorf("crossbar: width must be positive, got %d", p.Width)
	}
	payload := signal.UInt(p.Width)

	return elab.Declare(d, crossbarDef{}, func(root *elab.Block) error {
		root.SuggestName("crossbar")

		sinks := make([]*wire.Endpoint, 0, p.Outputs)
		for j := 0; j < p.Outputs; j++ {
			name := fmt.Sprintf("out_%d", j)
			_, err := elab.Declare(d, outputDef{}, func(out *elab.Block) error {
				out.SuggestName(name)
				sinks = append(sinks, wire.NewSink(d, "rx", payload))
				wire.NewSource(d, "ext", payload)
				return nil
			})
			if err != nil {
				return err
			}
		}

		for i := 0; i < p.Inputs; i++ {
			name := fmt.Sprintf("in_%d", i)
			_, err := elab.Declare(d, inputDef{}, func(in *elab.Block) error {
				in.SuggestName(name)
				wire.NewSink(d, "ext", payload)
				tx := wire.NewSource(d, "tx", payload)
				for _, rx := range sinks {
					if err := wire.Connect(tx, rx); err != nil {
						return err
					}
				}
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
		Type:        "crossbar",
		Description: "Full mesh between input and output rows with external sides promoted to the boundary.",
		NewParams:   func() any { return new(Params) },
		ParamsType:  reflect.TypeOf(Params{}),
		Build:       Build,
	})
}
