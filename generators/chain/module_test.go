package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/loomhdl/loom/elab"
	"github.com/loomhdl/loom/registry"
	"github.com/loomhdl/loom/signal"
)

func TestBuild_ElaboratesPipeline(t *testing.T) {
	// --- Arrange ---
	d := elab.NewDesign("pipeline")
	root, err := Build(context.Background(), d, &Params{Stages: 3, Width: 8})
	require.NoError(t, err)

	// --- Act ---
	res, err := d.Elaborate(context.Background(), root, elab.ElabOptions{})

	// --- Assert ---
	require.NoError(t, err)

	// The head input and tail output climb to the root.
	require.Equal(t, 2, res.Boundary.Len())
	head := res.Boundary.Ports()[0]
	tail := res.Boundary.Ports()[1]
	assert.Equal(t, "stage_0_in", head.Name)
	assert.Equal(t, elab.DirInput, head.Direction)
	assert.Equal(t, "stage_2_out", tail.Name)
	assert.Equal(t, elab.DirOutput, tail.Direction)
	assert.True(t, head.Signal.Type().Equal(signal.UInt(8)))

	require.Len(t, res.Unresolved, 2)
	assert.Equal(t, "chain_stage_0_in", res.Unresolved[0].Name)
	assert.Equal(t, "chain_stage_2_out", res.Unresolved[1].Name)

	// Stage n feeds stage n+1, resolved at the chain root.
	links := root.Links()
	require.Len(t, links, 2)
	assert.Equal(t, "stage_0_out", links[0].From.Name)
	assert.Equal(t, "stage_1_in", links[0].To.Name)
	assert.Equal(t, "stage_1_out", links[1].From.Name)
	assert.Equal(t, "stage_2_in", links[1].To.Name)

	require.Len(t, root.Children(), 3)
	assert.Equal(t, "chain.stage_1", root.Children()[1].Path())
}

func TestBuild_ValidatesParams(t *testing.T) {
	tests := []struct {
		name    string
		params  any
		wantErr string
	}{
		{name: "zero stages", params: &Params{Stages: 0, Width: 8}, wantErr: "stages must be positive"},
		{name: "zero width", params: &Params{Stages: 2, Width: 0}, wantErr: "width must be positive"},
		{name: "wrong type", params: Params{Stages: 2, Width: 8}, wantErr: "unexpected params type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := elab.NewDesign("bad")

			root, err := Build(context.Background(), d, tt.params)

			require.ErrorContains(t, err, tt.wantErr)
			assert.Nil(t, root)
		})
	}
}

func TestModule_RegistersAndDecodes(t *testing.T) {
	// --- Arrange ---
	r := registry.New()
	(&Module{}).Register(r)
	require.NoError(t, r.Validate(context.Background()))

	gen, ok := r.Lookup("chain")
	require.True(t, ok)

	// --- Act ---
	decoded, err := gen.DecodeParams(map[string]cty.Value{
		"stages": cty.NumberIntVal(4),
		"width":  cty.NumberIntVal(16),
	})

	// --- Assert ---
	require.NoError(t, err)
	require.IsType(t, &Params{}, decoded)
	assert.Equal(t, &Params{Stages: 4, Width: 16}, decoded)

	d := elab.NewDesign("decoded")
	root, err := gen.Build(context.Background(), d, decoded)
	require.NoError(t, err)
	assert.Len(t, root.Children(), 4)
}
