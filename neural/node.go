package neural

import "fmt"

// Reference is a directed, weighted edge. The owning node reads the value of
// the node at (Layer, Index) and multiplies it by Weight.
type Reference struct {
	Layer  int     `yaml:"layer"`
	Index  int     `yaml:"index"`
	Weight float32 `yaml:"weight"`
}

// Coord returns the coordinate the reference points at.
func (r Reference) Coord() Coord {
	return Coord{Layer: r.Layer, Index: r.Index}
}

// Coord addresses a node by layer and position within that layer.
type Coord struct {
	Layer int
	Index int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Layer, c.Index)
}

// Node is a single vertex of a network.
//
// References is nil for nodes without computed inputs (raw inputs).
// Bias is nil only for input nodes and for a zero Node before generation.
type Node struct {
	Value      float32
	Bias       *float32
	References []Reference
}

// NewInputNode returns a leaf node carrying a raw input value.
func NewInputNode(value float32) Node {
	return Node{Value: value}
}

// HasBias reports whether a bias has been assigned.
func (n *Node) HasBias() bool {
	return n.Bias != nil
}

// BiasValue returns the bias, or 0 when none is set.
func (n *Node) BiasValue() float32 {
	if n.Bias == nil {
		return 0
	}
	return *n.Bias
}

func (n *Node) setBias(b float32) {
	n.Bias = &b
}

func (n *Node) addReference(ref Reference) {
	n.References = append(n.References, ref)
}

// Layer is an ordered group of nodes. Layer 0 of a network holds inputs.
type Layer []Node
