package elab

import (
	"fmt"
	"regexp"

	"github.com/loomhdl/loom/signal"
)

// Direction of a boundary port as seen from outside the block.
type Direction int

const (
	// DirOutput ports supply a value to the enclosing block.
	DirOutput Direction = iota
	// DirInput ports receive a value from the enclosing block.
	DirInput
)

func (d Direction) String() string {
	if d == DirInput {
		return "input"
	}
	return "output"
}

// directionOf maps a dangle's orientation to its boundary direction: an
// end that expects to receive becomes an input port.
func directionOf(flipped bool) Direction {
	if flipped {
		return DirInput
	}
	return DirOutput
}

// Port is one finalized boundary entry.
type Port struct {
	Name      string
	Signal    signal.Signal
	Direction Direction
}

// Boundary is the finalized, ordered, direction-tagged port set a block
// exposes to its parent. It is built once per instantiation and immutable
// afterwards. Port order equals the canonical order of the unresolved
// dangles that produced it.
type Boundary struct {
	ports []Port
}

// Len returns the number of ports.
func (b *Boundary) Len() int { return len(b.ports) }

// Ports returns the ports in boundary order.
func (b *Boundary) Ports() []Port {
	out := make([]Port, len(b.ports))
	copy(out, b.ports)
	return out
}

// Port returns the port with the given final name.
func (b *Boundary) Port(name string) (Port, bool) {
	for _, p := range b.ports {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

var trailingIndexRE = regexp.MustCompile(`(_\d+)+$`)

// normalizeName strips a trailing run of _<digits> groups, so that names
// already carrying numeric suffixes cannot collide with the suffixes
// dedupNames assigns.
func normalizeName(raw string) string {
	return trailingIndexRE.ReplaceAllString(raw, "")
}

// dedupNames maps raw port names to pairwise-distinct final names. Names
// whose normalized key is unique keep the bare key; names sharing a key
// get "key_<position>" with 0-based positions assigned in input order.
// The result preserves input order and length.
func dedupNames(raw []string) []string {
	keys := make([]string, len(raw))
	counts := make(map[string]int, len(raw))
	for i, r := range raw {
		keys[i] = normalizeName(r)
		counts[keys[i]]++
	}
	next := make(map[string]int, len(counts))
	out := make([]string, len(raw))
	for i, k := range keys {
		if counts[k] == 1 {
			out[i] = k
			continue
		}
		out[i] = fmt.Sprintf("%s_%d", k, next[k])
		next[k]++
	}
	return out
}
