package elab

import "context"

// Node is the capability contract a connection point implements. The core
// never inspects a node beyond these two calls; domain semantics live
// entirely in implementations (see package wire for the reference one).
//
// Instantiate runs once, during the owning block's instantiation, and
// returns the node's dangling ends in a fixed order. FinishInstantiate
// runs in a second pass after every dangle in the whole tree has been
// resolved, for validation that needs the final wiring.
type Node interface {
	Instantiate(ctx context.Context) ([]Dangle, error)
	FinishInstantiate(ctx context.Context) error
}
