package wire

import (
	"context"
	"errors"
	"fmt"

	"github.com/loomhdl/loom/elab"
	"github.com/loomhdl/loom/internal/ctxlog"
	"github.com/loomhdl/loom/signal"
)

// Role of an endpoint: sources supply a value, sinks receive one.
type Role int

const (
	RoleSource Role = iota
	RoleSink
)

func (r Role) String() string {
	if r == RoleSink {
		return "sink"
	}
	return "source"
}

// link is one declared source-to-sink connection, shared by both
// endpoints. The index fields fix the HalfEdge keys: srcIndex positions
// the link among the source's links, snkIndex among the sink's.
type link struct {
	src, snk *Endpoint
	srcIndex int
	snkIndex int
}

// Endpoint is a typed connection point registered into exactly one block.
// Create endpoints with NewSource and NewSink while the owning block's
// scope is open; link them with Connect before elaboration.
type Endpoint struct {
	design       *elab.Design
	owner        *elab.Block
	role         Role
	name         string
	typ          signal.Type
	serial       int
	links        []*link
	instantiated bool
}

// NewSource declares a supplying endpoint in the currently open block.
// It panics with an elab.ScopeError when no scope is open.
func NewSource(d *elab.Design, name string, t signal.Type) *Endpoint {
	return newEndpoint(d, RoleSource, name, t)
}

// NewSink declares a receiving endpoint in the currently open block.
// It panics with an elab.ScopeError when no scope is open.
func NewSink(d *elab.Design, name string, t signal.Type) *Endpoint {
	return newEndpoint(d, RoleSink, name, t)
}

func newEndpoint(d *elab.Design, role Role, name string, t signal.Type) *Endpoint {
	ep := &Endpoint{
		design: d,
		owner:  d.Current(),
		role:   role,
		name:   name,
		typ:    t,
	}
	ep.serial = d.AddNode(ep)
	return ep
}

// Name returns the endpoint name given at declaration.
func (ep *Endpoint) Name() string { return ep.name }

// Type returns the payload type.
func (ep *Endpoint) Type() signal.Type { return ep.typ }

// Role returns whether the endpoint supplies or receives.
func (ep *Endpoint) Role() Role { return ep.role }

// Owner returns the block the endpoint was declared in.
func (ep *Endpoint) Owner() *elab.Block { return ep.owner }

// Serial returns the design serial assigned at declaration.
func (ep *Endpoint) Serial() int { return ep.serial }

// LinkCount returns the number of links declared on this endpoint.
func (ep *Endpoint) LinkCount() int { return len(ep.links) }

// Connect declares a link from src to snk. Links are declaration-time
// only; declaration order fixes the dangles' key indices and with them
// the resolution order.
func Connect(src, snk *Endpoint) error {
	if src == nil || snk == nil {
		return errors.New("wire: connect with nil endpoint")
	}
	if src.role != RoleSource {
		return fmt.Errorf("wire: %q is a %s, links must start at a source", src.name, src.role)
	}
	if snk.role != RoleSink {
		return fmt.Errorf("wire: %q is a %s, links must end at a sink", snk.name, snk.role)
	}
	if src.design != snk.design {
		return fmt.Errorf("wire: endpoints %q and %q belong to different designs", src.name, snk.name)
	}
	if src.instantiated || snk.instantiated {
		return fmt.Errorf("wire: cannot link %q to %q after instantiation", src.name, snk.name)
	}
	if !src.typ.Equal(snk.typ) {
		return fmt.Errorf("wire: type mismatch linking %q (%s) to %q (%s)",
			src.name, src.typ, snk.name, snk.typ)
	}
	l := &link{src: src, snk: snk, srcIndex: len(src.links), snkIndex: len(snk.links)}
	src.links = append(src.links, l)
	snk.links = append(snk.links, l)
	return nil
}

// Instantiate emits the endpoint's dangles: one per link, keyed on the
// source side so the pair meets during resolution, or a single unpaired
// dangle when the endpoint is unlinked.
func (ep *Endpoint) Instantiate(ctx context.Context) ([]elab.Dangle, error) {
	if ep.instantiated {
		return nil, fmt.Errorf("wire: endpoint %q instantiated twice", ep.name)
	}
	ep.instantiated = true
	circuit := ep.design.Circuit()

	var out []elab.Dangle
	if len(ep.links) == 0 {
		key := elab.HalfEdge{Serial: ep.serial, Index: 0}
		out = append(out, elab.Dangle{
			Source:  key,
			Sink:    key,
			Flipped: ep.role == RoleSink,
			Name:    ep.name,
			Data:    circuit.Wire(ep.name, ep.typ),
		})
	} else {
		for _, l := range ep.links {
			out = append(out, elab.Dangle{
				Source:  elab.HalfEdge{Serial: l.src.serial, Index: l.srcIndex},
				Sink:    elab.HalfEdge{Serial: l.snk.serial, Index: l.snkIndex},
				Flipped: ep.role == RoleSink,
				Name:    ep.name,
				Data:    circuit.Wire(ep.name, ep.typ),
			})
		}
	}

	ctxlog.FromContext(ctx).Debug("Endpoint instantiated.",
		"endpoint", ep.name, "role", ep.role.String(), "dangles", len(out))
	return out, nil
}

// FinishInstantiate checks that every link found both of its ends inside
// the elaborated tree. A link whose counterpart was never instantiated
// means the endpoints were declared under different roots.
func (ep *Endpoint) FinishInstantiate(context.Context) error {
	if !ep.instantiated {
		return fmt.Errorf("wire: endpoint %q finished before instantiation", ep.name)
	}
	for _, l := range ep.links {
		other := l.snk
		if ep.role == RoleSink {
			other = l.src
		}
		if !other.instantiated {
			return fmt.Errorf("wire: endpoint %q is linked to %q, which is outside the elaborated tree",
				ep.name, other.name)
		}
	}
	return nil
}
