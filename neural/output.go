package neural

import "math/rand/v2"

// Orphans returns the coordinates of hidden-layer nodes that no node in the
// hidden layers references, in (layer, index) order. Input nodes in layer 0
// are never orphans, so the result does not change as Update grows the input
// layer. Output references are not taken into account.
func (n *NeuralNetwork) Orphans() []Coord {
	referenced := make(map[Coord]struct{})
	for _, layer := range n.Layers {
		for j := range layer {
			for _, ref := range layer[j].References {
				referenced[ref.Coord()] = struct{}{}
			}
		}
	}

	var orphans []Coord
	for i := 1; i < len(n.Layers); i++ {
		for j := range n.Layers[i] {
			c := Coord{Layer: i, Index: j}
			if _, ok := referenced[c]; !ok {
				orphans = append(orphans, c)
			}
		}
	}
	return orphans
}

// generateOutputLayer builds exactly size output nodes so that every orphan is
// read by at least one output.
//
// Each output slot sweeps the orphans not yet claimed and claims each with
// probability 100/size+1 percent. Orphans left over after all slots are
// attached to a random slot. With size 0 there is nowhere to attach them and
// they are dropped.
func (n *NeuralNetwork) generateOutputLayer(rng *rand.Rand, size int) {
	outputs := make([]Node, 0, size)
	orphans := n.Orphans()
	used := make([]bool, len(orphans))

	for s := 0; s < size; s++ {
		var node Node
		prob := 100/size + 1
		for i, orph := range orphans {
			if used[i] {
				continue
			}
			if rng.IntN(100) < prob {
				used[i] = true
				node.addReference(Reference{
					Layer:  orph.Layer,
					Index:  orph.Index,
					Weight: floatRange(rng, weightMin, weightMax),
				})
			}
		}
		// Outputs are only weakly biased
		node.setBias(floatRange(rng, outputBiasMin, outputBiasMax))
		outputs = append(outputs, node)
	}

	if size > 0 {
		for i, orph := range orphans {
			if used[i] {
				continue
			}
			slot := rng.IntN(size)
			outputs[slot].addReference(Reference{
				Layer:  orph.Layer,
				Index:  orph.Index,
				Weight: floatRange(rng, weightMin, weightMax),
			})
		}
	}

	n.Outputs = outputs
}
