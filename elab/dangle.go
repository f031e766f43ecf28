package elab

import (
	"fmt"

	"github.com/loomhdl/loom/signal"
)

// HalfEdge is the ordering key of a dangle: Serial identifies the node
// instance that produced the end, Index its position among that node's
// outputs. Keys compare lexicographically and exist only to make dangle
// grouping deterministic.
type HalfEdge struct {
	Serial int
	Index  int
}

// Less reports whether h orders before o.
func (h HalfEdge) Less(o HalfEdge) bool {
	if h.Serial != o.Serial {
		return h.Serial < o.Serial
	}
	return h.Index < o.Index
}

func (h HalfEdge) String() string {
	return fmt.Sprintf("%d.%d", h.Serial, h.Index)
}

// Dangle is one still-unresolved end of a potential connection. Nodes
// produce them during instantiation; each is consumed exactly once,
// either paired with its counterpart into a Link or promoted into a
// boundary port of the enclosing block.
//
// Flipped encodes directionality: true means this end expects to receive,
// false means it supplies.
type Dangle struct {
	Source  HalfEdge
	Sink    HalfEdge
	Flipped bool
	Name    string
	Data    signal.Signal
}

// Link records one internally resolved connection: the two dangles that
// shared a source key, with From the supplying end and To the receiving
// end.
type Link struct {
	Key      HalfEdge
	From, To Dangle
}
