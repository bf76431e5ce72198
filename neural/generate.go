package neural

import "math/rand/v2"

// Generation bounds. Upper bounds are exclusive.
const (
	minHiddenLayers = 1
	maxHiddenLayers = 6
	minLayerNodes   = 3
	maxLayerNodes   = 100
	minFanIn        = 1
	maxFanIn        = 10

	// A roll above sameLayerRoll (out of 100) lets a node reference its own layer.
	sameLayerRoll = 90
)

// Weight and bias ranges.
const (
	weightMin     float32 = -1.0
	weightMax     float32 = 1.0
	biasMin       float32 = -1.0
	biasMax       float32 = 1.0
	outputBiasMin float32 = -0.3
	outputBiasMax float32 = 0.3
)

// generate builds the hidden layers on top of the (empty) input layer and then
// resolves the output layer. All randomness is drawn from rng in a fixed order.
func (n *NeuralNetwork) generate(rng *rand.Rand, outputSize int) {
	numLayers := intRange(rng, minHiddenLayers, maxHiddenLayers)
	for i := 0; i < numLayers; i++ {
		numNodes := intRange(rng, minLayerNodes, maxLayerNodes)
		n.Layers = append(n.Layers, make(Layer, 0, numNodes))
		current := len(n.Layers) - 1

		for j := 0; j < numNodes; j++ {
			numRefs := intRange(rng, minFanIn, maxFanIn)
			var node Node
			node.setBias(floatRange(rng, biasMin, biasMax))
			node.References = make([]Reference, 0, numRefs)
			for k := 0; k < numRefs; k++ {
				node.addReference(n.placeReference(rng, current))
			}
			n.Layers[current] = append(n.Layers[current], node)
		}
	}

	n.generateOutputLayer(rng, outputSize)
}

// placeReference picks the source of one incoming edge for a node being added
// to layer current.
//
// The source layer is drawn from [0, current] while the current layer is still
// empty or when the same-layer roll succeeds, and from [0, current) otherwise.
// The source node is drawn from the nodes the layer holds right now, or is 0
// when it holds none.
func (n *NeuralNetwork) placeReference(rng *rand.Rand, current int) Reference {
	var layerIdx int
	if len(n.Layers[current]) == 0 || rng.IntN(100) > sameLayerRoll {
		layerIdx = rng.IntN(current + 1)
	} else {
		layerIdx = rng.IntN(current)
	}

	nodeIdx := 0
	if size := len(n.Layers[layerIdx]); size > 0 {
		nodeIdx = rng.IntN(size)
	}

	return Reference{
		Layer:  layerIdx,
		Index:  nodeIdx,
		Weight: floatRange(rng, weightMin, weightMax),
	}
}
