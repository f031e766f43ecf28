package export

import (
	"errors"
	"fmt"

	"github.com/loomhdl/loom/elab"
)

// Report is the serializable snapshot of one elaborated design.
type Report struct {
	Design  string      `json:"design" yaml:"design"`
	BuildID string      `json:"build_id" yaml:"build_id"`
	Blocks  []BlockInfo `json:"blocks" yaml:"blocks"`
	Links   []LinkInfo  `json:"links,omitempty" yaml:"links,omitempty"`
	Stats   Stats       `json:"stats" yaml:"stats"`
}

// BlockInfo describes one block of the tree. Parent is -1 for the root.
type BlockInfo struct {
	ID       int        `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	Path     string     `json:"path" yaml:"path"`
	State    string     `json:"state" yaml:"state"`
	Parent   int        `json:"parent" yaml:"parent"`
	Children []int      `json:"children,omitempty" yaml:"children,omitempty"`
	Ports    []PortInfo `json:"ports,omitempty" yaml:"ports,omitempty"`
}

// PortInfo describes one boundary port.
type PortInfo struct {
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	Direction string `json:"direction" yaml:"direction"`
	Wire      int    `json:"wire" yaml:"wire"`
}

// LinkInfo describes one resolved connection and the block that resolved
// it.
type LinkInfo struct {
	Block    string `json:"block" yaml:"block"`
	Key      string `json:"key" yaml:"key"`
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
	FromWire int    `json:"from_wire" yaml:"from_wire"`
	ToWire   int    `json:"to_wire" yaml:"to_wire"`
}

// Stats summarizes the elaboration.
type Stats struct {
	Blocks int `json:"blocks" yaml:"blocks"`
	Links  int `json:"links" yaml:"links"`
	Wires  int `json:"wires" yaml:"wires"`
	Nets   int `json:"nets" yaml:"nets"`
}

// Snapshot walks a finalized root block and builds its report. Blocks
// appear in depth-first declaration order; ports in boundary order; links
// in resolution order.
func Snapshot(root *elab.Block) (*Report, error) {
	if root == nil {
		return nil, errors.New("export: nil root block")
	}
	if root.Parent() != nil {
		return nil, fmt.Errorf("export: block %q is not a root", root.Name())
	}
	if root.State() != elab.StateDone {
		return nil, fmt.Errorf("export: design %q is not finalized (root state %s)", root.Name(), root.State())
	}

	design := root.Design()
	rep := &Report{
		Design:  design.Name(),
		BuildID: design.Circuit().BuildID().String(),
	}
	collectBlock(rep, root, -1)

	rep.Stats = Stats{
		Blocks: len(rep.Blocks),
		Links:  len(rep.Links),
		Wires:  design.Circuit().WireCount(),
		Nets:   design.Circuit().NetCount(),
	}
	return rep, nil
}

func collectBlock(rep *Report, b *elab.Block, parent int) {
	info := BlockInfo{
		ID:     b.ID(),
		Name:   b.Name(),
		Path:   b.Path(),
		State:  b.State().String(),
		Parent: parent,
	}
	for _, p := range b.Boundary().Ports() {
		info.Ports = append(info.Ports, PortInfo{
			Name:      p.Name,
			Type:      p.Signal.Type().String(),
			Direction: p.Direction.String(),
			Wire:      p.Signal.ID(),
		})
	}
	for _, c := range b.Children() {
		info.Children = append(info.Children, c.ID())
	}
	rep.Blocks = append(rep.Blocks, info)

	for _, l := range b.Links() {
		rep.Links = append(rep.Links, LinkInfo{
			Block:    b.Path(),
			Key:      l.Key.String(),
			From:     l.From.Name,
			To:       l.To.Name,
			FromWire: l.From.Data.ID(),
			ToWire:   l.To.Data.ID(),
		})
	}

	for _, c := range b.Children() {
		collectBlock(rep, c, b.ID())
	}
}
