// Package export renders networks for inspection and visualization.
package export

import (
	"fmt"
	"strings"

	"github.com/baldhumanity/sparsenet/neural"
)

// Format specifies the output format for network rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatYAML Format = "yaml"
)

// Render renders net in the given format.
func Render(net *neural.NeuralNetwork, format Format) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(RenderDOT(net)), nil
	case FormatYAML:
		return RenderYAML(net)
	default:
		return nil, fmt.Errorf("unsupported format %q (use 'dot' or 'yaml')", format)
	}
}

// nodeID names the node at (layer, index). Outputs use the layer index that
// follows the last hidden layer.
func nodeID(layer, index int) string {
	return fmt.Sprintf("L%d_%d", layer, index)
}

// RenderDOT produces a Graphviz DOT digraph of net. Each node is labeled with
// its coordinate and current value; each edge points from a node to the node
// it reads. Output nodes are ranked together.
func RenderDOT(net *neural.NeuralNetwork) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph network%d {\n", net.Num)
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=circle, fontname=\"Helvetica\", fontsize=10];\n\n")

	for i, layer := range net.Layers {
		for j := range layer {
			writeNode(&b, i, j, &layer[j], "")
		}
	}

	outLayer := net.OutputLayer()
	for j := range net.Outputs {
		writeNode(&b, outLayer, j, &net.Outputs[j], ", shape=doublecircle")
	}

	if len(net.Outputs) > 0 {
		b.WriteString("\n  subgraph outputs {\n    rank=\"same\";\n")
		for j := range net.Outputs {
			fmt.Fprintf(&b, "    %s;\n", nodeID(outLayer, j))
		}
		b.WriteString("  }\n")
	}

	b.WriteString("}\n")
	return b.String()
}

func writeNode(b *strings.Builder, layer, index int, node *neural.Node, attrs string) {
	id := nodeID(layer, index)
	fmt.Fprintf(b, "  %s [label=\"%d,%d\\n%.3f\"%s];\n", id, layer, index, node.Value, attrs)
	for _, ref := range node.References {
		fmt.Fprintf(b, "  %s -> %s [label=\"%.2f\"];\n", id, nodeID(ref.Layer, ref.Index), ref.Weight)
	}
}
