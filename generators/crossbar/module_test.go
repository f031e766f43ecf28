package crossbar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/loomhdl/loom/elab"
	"github.com/loomhdl/loom/registry"
)

func TestBuild_ElaboratesMesh(t *testing.T) {
	// --- Arrange ---
	d := elab.NewDesign("mesh")
	root, err := Build(context.Background(), d, &Params{Inputs: 2, Outputs: 2, Width: 4})
	require.NoError(t, err)

	// --- Act ---
	res, err := d.Elaborate(context.Background(), root, elab.ElabOptions{})

	// --- Assert ---
	require.NoError(t, err)

	// Every input-to-output pairing resolves at the crossbar root.
	links := root.Links()
	require.Len(t, links, 4)
	fromNames := make([]string, 0, len(links))
	toNames := make([]string, 0, len(links))
	for _, l := range links {
		fromNames = append(fromNames, l.From.Name)
		toNames = append(toNames, l.To.Name)
	}
	assert.Equal(t, []string{"in_0_tx", "in_0_tx", "in_1_tx", "in_1_tx"}, fromNames)
	assert.Equal(t, []string{"out_0_rx", "out_1_rx", "out_0_rx", "out_1_rx"}, toNames)

	// The external side of each row surfaces on the boundary.
	require.Equal(t, 4, res.Boundary.Len())
	wantPorts := []struct {
		name string
		dir  elab.Direction
	}{
		{"out_0_ext", elab.DirOutput},
		{"out_1_ext", elab.DirOutput},
		{"in_0_ext", elab.DirInput},
		{"in_1_ext", elab.DirInput},
	}
	for i, want := range wantPorts {
		p := res.Boundary.Ports()[i]
		assert.Equal(t, want.name, p.Name)
		assert.Equal(t, want.dir, p.Direction)
	}

	require.Len(t, root.Children(), 4)
	assert.Equal(t, "out_0", root.Children()[0].Name())
	assert.Equal(t, "in_1", root.Children()[3].Name())
}

func TestBuild_ValidatesParams(t *testing.T) {
	tests := []struct {
		name    string
		params  *Params
		wantErr string
	}{
		{name: "zero inputs", params: &Params{Inputs: 0, Outputs: 2, Width: 4}, wantErr: "inputs must be positive"},
		{name: "zero outputs", params: &Params{Inputs: 2, Outputs: 0, Width: 4}, wantErr: "outputs must be positive"},
		{name: "zero width", params: &Params{Inputs: 2, Outputs: 2, Width: 0}, wantErr: "width must be positive"},
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

	gen, ok := r.Lookup("crossbar")
	require.True(t, ok)

	// --- Act ---
	decoded, err := gen.DecodeParams(map[string]cty.Value{
		"inputs":  cty.NumberIntVal(3),
		"outputs": cty.NumberIntVal(2),
		"width":   cty.NumberIntVal(8),
	})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, &Params{Inputs: 3, Outputs: 2, Width: 8}, decoded)

	d := elab.NewDesign("decoded")
	root, err := gen.Build(context.Background(), d, decoded)
	require.NoError(t, err)
	assert.Len(t, root.Children(), 5)
}
