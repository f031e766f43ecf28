package signal

import "fmt"

// Signal is a value handle onto one wire of a circuit, plus an orientation
// bit. Copies of a Signal alias the same wire; Flip changes only the copy.
// The zero Signal is unbound and every operation on it fails or returns
// zero values.
type Signal struct {
	c       *Circuit
	id      int
	flipped bool
}

// Valid reports whether the handle is bound to a circuit wire.
func (s Signal) Valid() bool { return s.c != nil }

// ID returns the wire id within the owning circuit, or -1 when unbound.
func (s Signal) ID() int {
	if s.c == nil {
		return -1
	}
	return s.id
}

// Name returns the wire name, or "" when unbound.
func (s Signal) Name() string {
	if s.c == nil {
		return ""
	}
	return s.c.wires[s.id].name
}

// Type returns the wire's payload shape, or the invalid Type when unbound.
func (s Signal) Type() Type {
	if s.c == nil {
		return Type{}
	}
	return s.c.wires[s.id].typ
}

// Flipped reports the handle's orientation bit.
func (s Signal) Flipped() bool { return s.flipped }

// Flip returns a handle onto the same wire with the orientation reversed.
func (s Signal) Flip() Signal {
	s.flipped = !s.flipped
	return s
}

// Clone allocates a fresh wire of the same type and orientation under the
// given name and returns a handle onto it. It panics when s is unbound;
// cloning an unbound handle is a programming error, not a runtime
// condition.
func (s Signal) Clone(name string) Signal {
	if s.c == nil {
		panic(fmt.Sprintf("signal: clone of unbound signal as %q", name))
	}
	ns := s.c.Wire(name, s.Type())
	ns.flipped = s.flipped
	return ns
}

// Connect records from driving s. Orientation bits are ignored here; the
// caller decides direction before calling. Errors wrap the sentinel
// connection errors of this package.
func (s Signal) Connect(from Signal) error {
	if s.c == nil {
		return ErrUnbound
	}
	return s.c.connect(s, from)
}

// String renders "name:type" for logs and test failure messages.
func (s Signal) String() string {
	if s.c == nil {
		return "<unbound>"
	}
	return fmt.Sprintf("%s:%s", s.Name(), s.Type())
}
