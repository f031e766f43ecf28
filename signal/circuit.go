package signal

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Connection errors. Callers match with errors.Is; the wrapping message
// carries the wire names involved.
var (
	ErrTypeMismatch    = errors.New("signal: connected wires have different types")
	ErrMultipleDrivers = errors.New("signal: wire already has a driver")
	ErrCrossCircuit    = errors.New("signal: wires belong to different circuits")
	ErrSelfConnect     = errors.New("signal: wire connected to itself")
	ErrUnbound         = errors.New("signal: zero Signal is not bound to a circuit")
)

// Circuit is the arena a single elaboration writes into. It owns every
// wire and net created during that run. A Circuit is not safe for
// concurrent use; elaboration is single-threaded by construction.
type Circuit struct {
	name    string
	buildID uuid.UUID
	wires   []wireRec
	nets    []Net
}

type wireRec struct {
	name   string
	typ    Type
	driver int // index into nets, -1 while undriven
}

// Net is a directed connection: the wire Src drives the wire Dst.
// The ints are wire ids within the owning circuit.
type Net struct {
	Src int
	Dst int
}

// WireInfo is a read-only snapshot of one wire, as returned by Wires.
type WireInfo struct {
	ID     int
	Name   string
	Type   Type
	Driven bool
}

// NewCircuit returns an empty circuit with a fresh build id.
func NewCircuit(name string) *Circuit {
	return &Circuit{
		name:    name,
		buildID: uuid.New(),
	}
}

// Name returns the circuit name given at construction.
func (c *Circuit) Name() string { return c.name }

// BuildID identifies this particular elaboration run.
func (c *Circuit) BuildID() uuid.UUID { return c.buildID }

// Wire allocates a new undriven wire and returns a handle onto it.
// It panics if t is the invalid zero Type; wires always have a shape.
func (c *Circuit) Wire(name string, t Type) Signal {
	if !t.Valid() {
		panic(fmt.Sprintf("signal: wire %q created with invalid type", name))
	}
	id := len(c.wires)
	c.wires = append(c.wires, wireRec{name: name, typ: t, driver: -1})
	return Signal{c: c, id: id}
}

// WireCount returns the number of wires allocated so far.
func (c *Circuit) WireCount() int { return len(c.wires) }

// NetCount returns the number of connections recorded so far.
func (c *Circuit) NetCount() int { return len(c.nets) }

// Wires returns a snapshot of every wire in allocation order.
func (c *Circuit) Wires() []WireInfo {
	out := make([]WireInfo, len(c.wires))
	for i, w := range c.wires {
		out[i] = WireInfo{ID: i, Name: w.name, Type: w.typ, Driven: w.driver >= 0}
	}
	return out
}

// Nets returns a copy of every connection in creation order.
func (c *Circuit) Nets() []Net {
	out := make([]Net, len(c.nets))
	copy(out, c.nets)
	return out
}

// WireName returns the name of the wire with the given id, or "" when the
// id is out of range.
func (c *Circuit) WireName(id int) string {
	if id < 0 || id >= len(c.wires) {
		return ""
	}
	return c.wires[id].name
}

// connect records src driving dst after checking the structural rules.
func (c *Circuit) connect(dst, src Signal) error {
	if dst.c == nil || src.c == nil {
		return ErrUnbound
	}
	if dst.c != c || src.c != c {
		return fmt.Errorf("%w: %q and %q", ErrCrossCircuit, dst.Name(), src.Name())
	}
	if dst.id == src.id {
		return fmt.Errorf("%w: %q", ErrSelfConnect, dst.Name())
	}
	if !dst.Type().Equal(src.Type()) {
		return fmt.Errorf("%w: %q is %s, %q is %s",
			ErrTypeMismatch, dst.Name(), dst.Type(), src.Name(), src.Type())
	}
	if c.wires[dst.id].driver >= 0 {
		prev := c.nets[c.wires[dst.id].driver]
		return fmt.Errorf("%w: %q already driven by %q",
			ErrMultipleDrivers, dst.Name(), c.WireName(prev.Src))
	}
	c.nets = append(c.nets, Net{Src: src.id, Dst: dst.id})
	c.wires[dst.id].driver = len(c.nets) - 1
	return nil
}
