package elab

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/loomhdl/loom/internal/ctxlog"
)

// Instantiate forces the block: children first in declaration order, then
// its own nodes, then dangle resolution, boundary construction and the
// deferred queue. It returns the finalized boundary and the unresolved
// ends the caller must resolve. A block in any state but Declared returns
// a LifecycleError; the result of the first call is unaffected.
func (b *Block) Instantiate(ctx context.Context) (*Boundary, []Dangle, error) {
	log := ctxlog.FromContext(ctx)

	if b.state != StateDeclared {
		return nil, nil, &LifecycleError{Block: b.Name(), State: b.state, Op: "instantiate"}
	}
	b.state = StateInstantiating
	log.Debug("Instantiating block.",
		"block", b.Name(), "id", b.id, "children", len(b.children), "nodes", len(b.nodes))

	var childDangles []Dangle
	for _, c := range b.children {
		_, ds, err := c.Instantiate(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("instantiating child %q of %q: %w", c.Name(), b.Name(), err)
		}
		childDangles = append(childDangles, ds...)
	}

	var ownDangles []Dangle
	for i, n := range b.nodes {
		ds, err := n.Instantiate(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("instantiating node %d of block %q: %w", i, b.Name(), err)
		}
		ownDangles = append(ownDangles, ds...)
	}

	all := append(ownDangles, childDangles...)
	leftover, links, err := resolveDangles(all)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving block %q: %w", b.Name(), err)
	}
	b.links = links

	boundary, forwarded, err := b.buildBoundary(leftover)
	if err != nil {
		return nil, nil, err
	}
	b.boundary = boundary
	b.forwarded = forwarded

	for i, fn := range b.deferred {
		if err := fn(); err != nil {
			return nil, nil, fmt.Errorf("deferred action %d of block %q: %w", i, b.Name(), err)
		}
	}

	b.state = StateDone
	log.Debug("Block instantiated.",
		"block", b.Name(), "links", len(links), "boundary_ports", boundary.Len(), "forwarded", len(forwarded))
	return boundary, b.Dangles(), nil
}

// resolveDangles groups dangles by source key in ascending key order and
// resolves each group: singletons are carried forward, pairs with
// opposite orientation are connected (the non-flipped end supplies),
// anything else is an invariant violation. The leftover order is
// canonical and independent of input order.
func resolveDangles(all []Dangle) (leftover []Dangle, links []Link, err error) {
	sorted := make([]Dangle, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Source.Less(sorted[j].Source)
	})

	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j].Source == sorted[i].Source {
			j++
		}
		group := sorted[i:j]
		switch len(group) {
		case 1:
			leftover = append(leftover, group[0])
		case 2:
			link, cerr := connectPair(group[0], group[1])
			if cerr != nil {
				return nil, nil, cerr
			}
			links = append(links, link)
		default:
			return nil, nil, &PairingError{Key: group[0].Source, Size: len(group)}
		}
		i = j
	}
	return leftover, links, nil
}

// connectPair wires two dangles sharing a source key: the non-flipped end
// supplies, the flipped end receives. A pair sharing one direction is a
// DirectionError.
func connectPair(a, b Dangle) (Link, error) {
	if a.Flipped == b.Flipped {
		return Link{}, &DirectionError{Key: a.Source, A: a.Name, B: b.Name, Flipped: a.Flipped}
	}
	from, to := a, b
	if a.Flipped {
		from, to = b, a
	}
	if err := to.Data.Connect(from.Data); err != nil {
		return Link{}, fmt.Errorf("connecting %q to %q: %w", from.Name, to.Name, err)
	}
	return Link{Key: a.Source, From: from, To: to}, nil
}

// buildBoundary turns the leftover dangles into boundary ports: one port
// per end, with deduplicated names, wired to the inner signal in the
// direction the end dictates. Each leftover is rewritten into a forwarded
// dangle pointing at the new port, renamed with this block's name as
// prefix.
func (b *Block) buildBoundary(leftover []Dangle) (*Boundary, []Dangle, error) {
	raw := make([]string, len(leftover))
	for i, dg := range leftover {
		raw[i] = dg.Name
	}
	finals := dedupNames(raw)

	ports := make([]Port, len(leftover))
	forwarded := make([]Dangle, len(leftover))
	for i, dg := range leftover {
		ps := dg.Data.Clone(finals[i])
		if ps.Flipped() != dg.Flipped {
			ps = ps.Flip()
		}
		if dg.Flipped {
			err := dg.Data.Connect(ps)
			if err != nil {
				return nil, nil, fmt.Errorf("wiring boundary port %q of block %q: %w", finals[i], b.Name(), err)
			}
		} else {
			err := ps.Connect(dg.Data)
			if err != nil {
				return nil, nil, fmt.Errorf("wiring boundary port %q of block %q: %w", finals[i], b.Name(), err)
			}
		}
		ports[i] = Port{Name: finals[i], Signal: ps, Direction: directionOf(dg.Flipped)}

		fd := dg
		fd.Name = b.Name() + "_" + dg.Name
		fd.Data = ps
		forwarded[i] = fd
	}
	return &Boundary{ports: ports}, forwarded, nil
}

// ElabOptions configures a root elaboration pass.
type ElabOptions struct {
	// FailOnUnresolved makes dangles surviving at the root an error
	// instead of a reported leftover.
	FailOnUnresolved bool
}

// Result is the outcome of a root elaboration.
type Result struct {
	Root       *Block
	Boundary   *Boundary
	Unresolved []Dangle
}

// Elaborate drives a full elaboration: it forces root, then runs the
// whole-tree finish pass. root must be a parentless block of this design
// with declaration complete (no scope left open).
func (d *Design) Elaborate(ctx context.Context, root *Block, opts ElabOptions) (*Result, error) {
	log := ctxlog.FromContext(ctx)

	if root == nil {
		return nil, fmt.Errorf("elaborate: nil root block")
	}
	if root.design != d {
		return nil, fmt.Errorf("elaborate: block %q belongs to design %q, not %q", root.Name(), root.design.name, d.name)
	}
	if root.parent != nil {
		return nil, fmt.Errorf("elaborate: block %q is not a root (parent is %q)", root.Name(), root.parent.Name())
	}
	if open := d.Current(); open != nil {
		return nil, fmt.Errorf("elaborate: declaration incomplete: %w", &ScopeError{Op: "elaborate", Top: open.Name()})
	}

	boundary, dangles, err := root.Instantiate(ctx)
	if err != nil {
		return nil, err
	}
	if err := finishPass(ctx, root); err != nil {
		return nil, err
	}

	if len(dangles) > 0 {
		if opts.FailOnUnresolved {
			names := make([]string, len(dangles))
			for i, dg := range dangles {
				names[i] = dg.Name
			}
			return nil, fmt.Errorf("elaborate: %d unresolved ports at root %q: %s",
				len(dangles), root.Name(), strings.Join(names, ", "))
		}
		log.Warn("Root has unresolved boundary ports.", "root", root.Name(), "count", len(dangles))
	}

	log.Debug("Elaboration complete.",
		"root", root.Name(), "blocks", len(d.blocks),
		"wires", d.circuit.WireCount(), "nets", d.circuit.NetCount())
	return &Result{Root: root, Boundary: boundary, Unresolved: dangles}, nil
}

// finishPass runs FinishInstantiate over every node of the tree in the
// same child-first order instantiation used.
func finishPass(ctx context.Context, b *Block) error {
	for _, c := range b.children {
		if err := finishPass(ctx, c); err != nil {
			return err
		}
	}
	for i, n := range b.nodes {
		if err := n.FinishInstantiate(ctx); err != nil {
			return fmt.Errorf("finishing node %d of block %q: %w", i, b.Name(), err)
		}
	}
	return nil
}
