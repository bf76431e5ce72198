package neural

// propagate recomputes every hidden node, layer by layer from layer 1, then
// every output node. Each value is written back before the next node is
// computed, and referenced nodes are read as stored, not recomputed: a node
// that has not been visited yet in this sweep contributes the value from the
// previous sweep (0 on the first).
func (n *NeuralNetwork) propagate() {
	if len(n.Layers) == 0 || len(n.Layers[0]) == 0 {
		panic("neural: cannot propagate because input is empty")
	}

	for i := 1; i < len(n.Layers); i++ {
		layer := n.Layers[i]
		for j := range layer {
			layer[j].Value = n.computeValue(&layer[j])
		}
	}
	for j := range n.Outputs {
		n.Outputs[j].Value = n.computeValue(&n.Outputs[j])
	}
}

// computeValue returns clamp(sum(ref value * weight) + bias, -1, 1).
// A reference outside the network panics; that is a generation bug.
func (n *NeuralNetwork) computeValue(node *Node) float32 {
	var v float32
	for _, ref := range node.References {
		v += n.Layers[ref.Layer][ref.Index].Value * ref.Weight
	}
	v += node.BiasValue()
	return clamp(v, -1, 1)
}
