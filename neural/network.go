package neural

// NeuralNetwork is a layered, sparse feed-forward graph.
//
// Layers[0] holds the raw inputs and Layers[1:] the generated hidden layers.
// Outputs is kept apart from Layers and its length never changes after
// generation. Edges are (layer, index) coordinates, never pointers.
type NeuralNetwork struct {
	Num     int     // Position of the network in its simulation.
	Layers  []Layer // Input layer followed by hidden layers.
	Outputs []Node  // Output layer.
}

func newNetwork(num, inputSize, outputSize int) *NeuralNetwork {
	return &NeuralNetwork{
		Num:     num,
		Layers:  []Layer{make(Layer, 0, inputSize)},
		Outputs: make([]Node, 0, outputSize),
	}
}

// Update appends input as new nodes of the input layer, runs one forward
// sweep and returns the output values.
//
// The input layer is never cleared: every call grows it by len(input). Edges
// into the input layer were placed while it was empty, so they all read the
// first input node ever supplied. Update panics when the input layer is still
// empty after appending.
func (n *NeuralNetwork) Update(input []float32) []float32 {
	for _, x := range input {
		n.Layers[0] = append(n.Layers[0], NewInputNode(x))
	}

	n.propagate()

	out := make([]float32, len(n.Outputs))
	for i := range n.Outputs {
		out[i] = n.Outputs[i].Value
	}
	return out
}

// InputCount returns how many input nodes have been supplied so far.
func (n *NeuralNetwork) InputCount() int {
	return len(n.Layers[0])
}

// HiddenLayers returns the number of generated hidden layers.
func (n *NeuralNetwork) HiddenLayers() int {
	return len(n.Layers) - 1
}

// Node returns the hidden or input node at c. It panics when c is out of range.
func (n *NeuralNetwork) Node(c Coord) *Node {
	return &n.Layers[c.Layer][c.Index]
}

// OutputLayer returns the layer index outputs would have if they were stored
// after the hidden layers. Graph exporters use it to name output nodes.
func (n *NeuralNetwork) OutputLayer() int {
	return len(n.Layers)
}

// Shape returns the node count of every layer followed by the output count.
func (n *NeuralNetwork) Shape() []int {
	shape := make([]int, 0, len(n.Layers)+1)
	for _, layer := range n.Layers {
		shape = append(shape, len(layer))
	}
	return append(shape, len(n.Outputs))
}
