package wire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomhdl/loom/elab"
	"github.com/loomhdl/loom/signal"
)

func TestNewEndpoint_RequiresOpenScope(t *testing.T) {
	d := elab.NewDesign("t")

	assert.Panics(t, func() { NewSource(d, "src", signal.UInt(8)) })
}

func TestNewEndpoint_RegistersIntoOpenBlock(t *testing.T) {
	d := elab.NewDesign("t")
	var src, snk *Endpoint
	b, err := elab.Declare(d, nil, func(blk *elab.Block) error {
		src = NewSource(d, "src", signal.UInt(8))
		snk = NewSink(d, "snk", signal.UInt(8))
		return nil
	})
	require.NoError(t, err)

	require.Len(t, b.Nodes(), 2)
	assert.Same(t, b, src.Owner())
	assert.Equal(t, RoleSource, src.Role())
	assert.Equal(t, RoleSink, snk.Role())
	assert.NotEqual(t, src.Serial(), snk.Serial(), "serials are unique per design")
}

func TestConnect_Validation(t *testing.T) {
	d := elab.NewDesign("t")
	d2 := elab.NewDesign("other")
	var src, src2, snk *Endpoint
	var snkBool, foreign *Endpoint
	_, err := elab.Declare(d, nil, func(*elab.Block) error {
		src = NewSource(d, "src", signal.UInt(8))
		src2 = NewSource(d, "src2", signal.UInt(8))
		snk = NewSink(d, "snk", signal.UInt(8))
		snkBool = NewSink(d, "snk_bool", signal.Bool())
		return nil
	})
	require.NoError(t, err)
	_, err = elab.Declare(d2, nil, func(*elab.Block) error {
		foreign = NewSink(d2, "foreign", signal.UInt(8))
		return nil
	})
	require.NoError(t, err)

	testCases := []struct {
		name    string
		src     *Endpoint
		snk     *Endpoint
		wantErr string
	}{
		{"nil endpoint", nil, snk, "nil endpoint"},
		{"sink as source", snk, snk, "must start at a source"},
		{"source as sink", src, src2, "must end at a sink"},
		{"cross design", src, foreign, "different designs"},
		{"type mismatch", src, snkBool, "type mismatch"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Connect(tc.src, tc.snk)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}

	t.Run("valid link", func(t *testing.T) {
		require.NoError(t, Connect(src, snk))
		assert.Equal(t, 1, src.LinkCount())
		assert.Equal(t, 1, snk.LinkCount())
	})
}

func TestEndpoint_PairResolvesInsideOneBlock(t *testing.T) {
	// --- Arrange ---
	d := elab.NewDesign("t")
	var b *elab.Block
	_, err := elab.Declare(d, nil, func(blk *elab.Block) error {
		b = blk.SuggestName("dut")
		src := NewSource(d, "src", signal.UInt(8))
		snk := NewSink(d, "snk", signal.UInt(8))
		return Connect(src, snk)
	})
	require.NoError(t, err)

	// --- Act ---
	res, err := d.Elaborate(context.Background(), b, elab.ElabOptions{FailOnUnresolved: true})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 0, res.Boundary.Len())
	require.Len(t, b.Links(), 1)
	assert.Equal(t, "src", b.Links()[0].From.Name)
	assert.Equal(t, "snk", b.Links()[0].To.Name)
	assert.Equal(t, 1, d.Circuit().NetCount())
}

func TestEndpoint_PairResolvesAtLowestCommonAncestor(t *testing.T) {
	// --- Arrange ---
	d := elab.NewDesign("t")
	root := elab.NewBlock(d, nil).SuggestName("top")

	producer := elab.NewBlock(d, nil).SuggestName("producer")
	src := NewSource(d, "data", signal.UInt(16))
	producer.Close()

	consumer := elab.NewBlock(d, nil).SuggestName("consumer")
	snk := NewSink(d, "data", signal.UInt(16))
	consumer.Close()

	require.NoError(t, Connect(src, snk))
	root.Close()

	// --- Act ---
	res, err := d.Elaborate(context.Background(), root, elab.ElabOptions{FailOnUnresolved: true})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 0, res.Boundary.Len(), "the link never escapes the common parent")
	assert.Equal(t, 1, producer.Boundary().Len(), "each child exposes its half as a port")
	assert.Equal(t, 1, consumer.Boundary().Len())
	require.Len(t, root.Links(), 1)
	assert.Equal(t, "producer_data", root.Links()[0].From.Name)
	assert.Equal(t, "consumer_data", root.Links()[0].To.Name)
}

func TestEndpoint_UnlinkedSurfacesAtRoot(t *testing.T) {
	d := elab.NewDesign("t")
	root := elab.NewBlock(d, nil).SuggestName("top")
	leaf := elab.NewBlock(d, nil).SuggestName("leaf")
	NewSource(d, "debug", signal.Bool())
	leaf.Close()
	root.Close()

	res, err := d.Elaborate(context.Background(), root, elab.ElabOptions{})

	require.NoError(t, err)
	require.Equal(t, 1, res.Boundary.Len())
	port, ok := res.Boundary.Port("leaf_debug")
	require.True(t, ok)
	assert.Equal(t, elab.DirOutput, port.Direction, "an unlinked source is an output port")
	require.Len(t, res.Unresolved, 1)
}

func TestEndpoint_FanOutEmitsOneDanglePerLink(t *testing.T) {
	// --- Arrange ---
	d := elab.NewDesign("t")
	var b *elab.Block
	_, err := elab.Declare(d, nil, func(blk *elab.Block) error {
		b = blk.SuggestName("dut")
		src := NewSource(d, "bus", signal.UInt(8))
		for _, name := range []string{"a", "b", "c"} {
			if err := Connect(src, NewSink(d, name, signal.UInt(8))); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	// --- Act ---
	res, err := d.Elaborate(context.Background(), b, elab.ElabOptions{FailOnUnresolved: true})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 0, res.Boundary.Len())
	assert.Len(t, b.Links(), 3)
	assert.Equal(t, 3, d.Circuit().NetCount())
}

func TestConnect_AfterInstantiationFails(t *testing.T) {
	d := elab.NewDesign("t")
	var src *Endpoint
	var snk *Endpoint
	b, err := elab.Declare(d, nil, func(*elab.Block) error {
		src = NewSource(d, "src", signal.UInt(8))
		snk = NewSink(d, "snk", signal.UInt(8))
		return nil
	})
	require.NoError(t, err)
	_, _, err = b.Instantiate(context.Background())
	require.NoError(t, err)

	err = Connect(src, snk)
	require.ErrorContains(t, err, "after instantiation")
}

func TestEndpoint_FinishRejectsLinkOutsideElaboratedTree(t *testing.T) {
	// Two roots in one design: the sink's root is never elaborated, so
	// the source's link can never pair.
	// --- Arrange ---
	d := elab.NewDesign("t")
	rootA := elab.NewBlock(d, nil).SuggestName("a")
	src := NewSource(d, "src", signal.UInt(8))
	rootA.Close()
	rootB := elab.NewBlock(d, nil).SuggestName("b")
	snk := NewSink(d, "snk", signal.UInt(8))
	rootB.Close()
	require.NoError(t, Connect(src, snk))

	// --- Act ---
	_, err := d.Elaborate(context.Background(), rootA, elab.ElabOptions{})

	// --- Assert ---
	require.ErrorContains(t, err, "outside the elaborated tree")
}
