package elab

import (
	"github.com/loomhdl/loom/signal"
)

// Design is the elaboration context: it owns the scope stack, the block
// arena, the node serial counter and the backing circuit. There is no
// process-global state; every elaboration (and every test) builds its own
// Design. A Design is single-threaded by contract.
type Design struct {
	name    string
	circuit *signal.Circuit
	scopes  []*Block
	blocks  []*Block
	serial  int
}

// NewDesign returns an empty design backed by a fresh circuit.
func NewDesign(name string) *Design {
	return &Design{
		name:    name,
		circuit: signal.NewCircuit(name),
	}
}

// Name returns the design name given at construction.
func (d *Design) Name() string { return d.name }

// Circuit returns the circuit this design's elaboration writes into.
func (d *Design) Circuit() *signal.Circuit { return d.circuit }

// Current returns the currently open block scope, or nil when none is.
func (d *Design) Current() *Block {
	if len(d.scopes) == 0 {
		return nil
	}
	return d.scopes[len(d.scopes)-1]
}

// Blocks returns every block of the design in creation order. A block's
// id is its position in this sequence.
func (d *Design) Blocks() []*Block {
	out := make([]*Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

func (d *Design) enter(b *Block) {
	d.scopes = append(d.scopes, b)
}

// exit pops the stack iff b is the open scope; any mismatch panics with a
// ScopeError and leaves the stack untouched.
func (d *Design) exit(b *Block) {
	top := d.Current()
	if top == nil {
		panic(&ScopeError{Op: "close", Block: b.Name()})
	}
	if top != b {
		panic(&ScopeError{Op: "close", Block: b.Name(), Top: top.Name()})
	}
	d.scopes = d.scopes[:len(d.scopes)-1]
}

// AddNode registers n into the currently open block and returns the
// serial assigned to it. Serials are unique within the design and give
// dangles their deterministic resolution order. It panics with a
// ScopeError when no scope is open.
func (d *Design) AddNode(n Node) int {
	owner := d.Current()
	if owner == nil {
		panic(&ScopeError{Op: "add node"})
	}
	owner.nodes = append(owner.nodes, n)
	s := d.serial
	d.serial++
	return s
}

// NextSerial hands out a fresh serial without registering a node. Node
// implementations that produce several independently keyed dangles use it
// for their extra keys.
func (d *Design) NextSerial() int {
	s := d.serial
	d.serial++
	return s
}

// Defer appends fn to the currently open block's deferred queue. The
// queue runs exactly once, in registration order, after that block's
// boundary is finalized. It panics with a ScopeError when no scope is
// open.
func (d *Design) Defer(fn func() error) {
	owner := d.Current()
	if owner == nil {
		panic(&ScopeError{Op: "defer"})
	}
	owner.deferred = append(owner.deferred, fn)
}

// Scope reopens b for late declaration-time additions: it pushes b, runs
// fn, and pops back to the previous scope. fn must close any block it
// opens; an inner scope left open is a ScopeError panic. When fn returns
// an error the stack is left as fn left it and the error propagates; the
// declaration pass is dead at that point. Reopening a block that already
// started instantiation panics with a LifecycleError.
func (d *Design) Scope(b *Block, fn func() error) error {
	if b.state != StateDeclared {
		panic(&LifecycleError{Block: b.Name(), State: b.state, Op: "reopen scope"})
	}
	d.enter(b)
	if err := fn(); err != nil {
		return err
	}
	d.exit(b)
	return nil
}
