package elab

import (
	"reflect"
	"strings"
)

// State is the instantiation lifecycle of a block. Transitions run
// Declared → Instantiating → Done and never back.
type State int

const (
	StateDeclared State = iota
	StateInstantiating
	StateDone
)

func (s State) String() string {
	switch s {
	case StateDeclared:
		return "declared"
	case StateInstantiating:
		return "instantiating"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Block is a node of the declaration tree. It owns its children, its
// connection-point nodes and its deferred-action queue, all populated in
// declaration order. Wiring results (links, boundary, forwarded dangles)
// appear once the block reaches Done and are frozen afterwards.
type Block struct {
	design    *Design
	id        int
	parent    *Block
	children  []*Block
	nodes     []Node
	defName   string
	suggested string
	deferred  []func() error
	closed    bool
	state     State

	boundary  *Boundary
	links     []Link
	forwarded []Dangle
}

// NewBlock creates a block under the design's open scope (nil scope makes
// it a root), registers it with its parent and opens it as the new
// current scope. The caller must Close it when its declaration body is
// complete. def is the block's definition value; its Go type derives the
// default display name.
func NewBlock(d *Design, def any) *Block {
	b := &Block{
		design:  d,
		id:      len(d.blocks),
		defName: deriveName(def),
		parent:  d.Current(),
	}
	if b.parent != nil {
		b.parent.children = append(b.parent.children, b)
	}
	d.blocks = append(d.blocks, b)
	d.enter(b)
	return b
}

// Declare creates a block, runs body inside its scope and closes it.
// Errors from body propagate without closing the block; the declaration
// pass is unrecoverable at that point.
func Declare(d *Design, def any, body func(b *Block) error) (*Block, error) {
	b := NewBlock(d, def)
	if err := body(b); err != nil {
		return nil, err
	}
	b.Close()
	return b, nil
}

// Close ends the block's declaration and hands the scope back to its
// parent. Closing twice panics with a LifecycleError; closing while an
// inner scope is still open, or out of order, panics with a ScopeError.
func (b *Block) Close() {
	if b.closed {
		panic(&LifecycleError{Block: b.Name(), State: b.state, Op: "double close"})
	}
	b.design.exit(b)
	b.closed = true
}

// SuggestName sets the display name, overwriting any previous suggestion.
// The last call before instantiation wins. It panics with a
// LifecycleError once instantiation has started, since boundary port
// names bake in the block name.
func (b *Block) SuggestName(name string) *Block {
	if b.state != StateDeclared {
		panic(&LifecycleError{Block: b.Name(), State: b.state, Op: "suggest name"})
	}
	b.suggested = name
	return b
}

// Name returns the suggested name, falling back to the name derived from
// the definition's type.
func (b *Block) Name() string {
	if b.suggested != "" {
		return b.suggested
	}
	return b.defName
}

// ID returns the block's id, unique and monotonically increasing within
// its design.
func (b *Block) ID() int { return b.id }

// Design returns the owning design.
func (b *Block) Design() *Design { return b.design }

// Parent returns the enclosing block, or nil for roots.
func (b *Block) Parent() *Block { return b.parent }

// State returns the block's lifecycle state.
func (b *Block) State() State { return b.state }

// Children returns the owned blocks in declaration order.
func (b *Block) Children() []*Block {
	out := make([]*Block, len(b.children))
	copy(out, b.children)
	return out
}

// Nodes returns the owned connection points in declaration order.
func (b *Block) Nodes() []Node {
	out := make([]Node, len(b.nodes))
	copy(out, b.nodes)
	return out
}

// Path returns the dot-separated display path from the root down to this
// block. It panics with a PrematureError before the block is Done.
func (b *Block) Path() string {
	if b.state != StateDone {
		panic(&PrematureError{Block: b.Name(), What: "display path"})
	}
	var parts []string
	for cur := b; cur != nil; cur = cur.parent {
		parts = append(parts, cur.Name())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Boundary returns the block's finalized port set. It panics with a
// PrematureError until instantiation has built it. The boundary exists
// before the block reaches Done: the block's own deferred actions run
// against it.
func (b *Block) Boundary() *Boundary {
	if b.boundary == nil {
		panic(&PrematureError{Block: b.Name(), What: "boundary"})
	}
	return b.boundary
}

// Links returns the connections resolved inside this block. It panics
// with a PrematureError before the block is Done.
func (b *Block) Links() []Link {
	if b.state != StateDone {
		panic(&PrematureError{Block: b.Name(), What: "resolved links"})
	}
	out := make([]Link, len(b.links))
	copy(out, b.links)
	return out
}

// Dangles returns the unresolved ends this block forwarded to its parent,
// rewritten onto its boundary ports. It panics with a PrematureError
// before the block is Done.
func (b *Block) Dangles() []Dangle {
	if b.state != StateDone {
		panic(&PrematureError{Block: b.Name(), What: "forwarded dangles"})
	}
	out := make([]Dangle, len(b.forwarded))
	copy(out, b.forwarded)
	return out
}

// deriveName maps a definition value to a default display name: the bare
// Go type name behind any pointers, or "block" when there is none to
// take.
func deriveName(def any) string {
	if def == nil {
		return "block"
	}
	t := reflect.TypeOf(def)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "block"
	}
	return t.Name()
}
