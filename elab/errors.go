package elab

import "fmt"

// ScopeError reports a violation of the scope-stack discipline: closing a
// block that is not the open scope, closing with no scope open, or
// registering with no scope open. Declaration-phase code panics with it.
type ScopeError struct {
	Op    string // operation that failed, e.g. "close", "add node"
	Block string // block the operation targeted, "" when not applicable
	Top   string // open scope at the time, "" when the stack was empty
}

func (e *ScopeError) Error() string {
	switch {
	case e.Top == "" && e.Block == "":
		return fmt.Sprintf("elab: scope violation in %s: no block scope is open", e.Op)
	case e.Top == "":
		return fmt.Sprintf("elab: scope violation in %s: block %q is not the open scope (stack is empty)", e.Op, e.Block)
	case e.Block == "":
		return fmt.Sprintf("elab: scope violation in %s: scope %q is still open", e.Op, e.Top)
	default:
		return fmt.Sprintf("elab: scope violation in %s: block %q is not the open scope (top is %q)", e.Op, e.Block, e.Top)
	}
}

// LifecycleError reports an operation applied to a block in a state that
// forbids it: closing twice, instantiating a block that is already
// Instantiating or Done, or renaming after instantiation started.
type LifecycleError struct {
	Block string
	State State
	Op    string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("elab: %s on block %q in state %s", e.Op, e.Block, e.State)
}

// DirectionError reports two dangles paired by source key that share the
// same direction. This is an invariant violation in a node
// implementation, not a user input error.
type DirectionError struct {
	Key     HalfEdge
	A, B    string // names of the two ends
	Flipped bool   // the direction both ends share
}

func (e *DirectionError) Error() string {
	verb := "supply"
	if e.Flipped {
		verb = "receive"
	}
	return fmt.Sprintf("elab: direction conflict at %s: ends %q and %q both %s", e.Key, e.A, e.B, verb)
}

// PairingError reports more than two dangles sharing one source key.
// Source keys are unique per producing call, so this is unreachable with
// correct node implementations; it is checked rather than assumed.
type PairingError struct {
	Key  HalfEdge
	Size int
}

func (e *PairingError) Error() string {
	return fmt.Sprintf("elab: %d dangles share source key %s, at most 2 may pair", e.Size, e.Key)
}

// PrematureError reports a read of an instantiation-only property (a
// deferred value, a display path, a boundary) before the owning block
// reached Done.
type PrematureError struct {
	Block string
	What  string
}

func (e *PrematureError) Error() string {
	return fmt.Sprintf("elab: premature access to %s of block %q: block is not instantiated", e.What, e.Block)
}
