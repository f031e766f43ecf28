package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, rep *Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("export: encoding json: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteYAML encodes the report as YAML.
func WriteYAML(w io.Writer, rep *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("export: encoding yaml: %w", err)
	}
	return enc.Close()
}

// WriteDOT renders the report as a Graphviz digraph: one cluster per
// block, one node per boundary port, one edge per resolved link. Wires
// that appear in a link without being boundary ports get plain nodes in
// the cluster of the block that resolved the link.
func WriteDOT(w io.Writer, rep *Report) error {
	byID := make(map[int]*BlockInfo, len(rep.Blocks))
	for i := range rep.Blocks {
		byID[rep.Blocks[i].ID] = &rep.Blocks[i]
	}
	root := &rep.Blocks[0]

	portWires := make(map[int]bool)
	for _, b := range rep.Blocks {
		for _, p := range b.Ports {
			portWires[p.Wire] = true
		}
	}
	nodeID := func(wire int) string {
		if portWires[wire] {
			return fmt.Sprintf("p%d", wire)
		}
		return fmt.Sprintf("w%d", wire)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %q {\n", rep.Design)
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, fontname=\"monospace\"];\n")

	var renderBlock func(b *BlockInfo, indent string)
	renderBlock = func(b *BlockInfo, indent string) {
		fmt.Fprintf(&sb, "%ssubgraph \"cluster_%d\" {\n", indent, b.ID)
		fmt.Fprintf(&sb, "%s  label=%q;\n", indent, b.Name)
		for _, p := range b.Ports {
			fmt.Fprintf(&sb, "%s  \"p%d\" [label=\"%s\\n%s %s\"];\n",
				indent, p.Wire, p.Name, p.Direction, p.Type)
		}
		for _, l := range rep.Links {
			if l.Block != b.Path {
				continue
			}
			if !portWires[l.FromWire] {
				fmt.Fprintf(&sb, "%s  \"w%d\" [label=%q];\n", indent, l.FromWire, l.From)
			}
			if !portWires[l.ToWire] {
				fmt.Fprintf(&sb, "%s  \"w%d\" [label=%q];\n", indent, l.ToWire, l.To)
			}
		}
		for _, childID := range b.Children {
			renderBlock(byID[childID], indent+"  ")
		}
		fmt.Fprintf(&sb, "%s}\n", indent)
	}
	renderBlock(root, "  ")

	for _, l := range rep.Links {
		fmt.Fprintf(&sb, "  %q -> %q [label=%q];\n", nodeID(l.FromWire), nodeID(l.ToWire), l.Key)
	}
	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
