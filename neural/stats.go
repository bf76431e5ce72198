package neural

// Stats summarizes the structure of a network.
type Stats struct {
	Num            int     `json:"num"`
	HiddenLayers   int     `json:"hidden_layers"`
	HiddenNodes    int     `json:"hidden_nodes"`
	Inputs         int     `json:"inputs"`
	Outputs        int     `json:"outputs"`
	Edges          int     `json:"edges"`
	SameLayerEdges int     `json:"same_layer_edges"`
	InputEdges     int     `json:"input_edges"`
	OutputEdges    int     `json:"output_edges"`
	Orphans        int     `json:"orphans"`
	MeanFanIn      float64 `json:"mean_fan_in"`
	StdevFanIn     float64 `json:"stdev_fan_in"`
	MedianFanIn    float64 `json:"median_fan_in"`
}

// Summarize computes structural statistics. Edges counts hidden-node edges;
// output edges are counted separately.
func (n *NeuralNetwork) Summarize() Stats {
	st := Stats{
		Num:          n.Num,
		HiddenLayers: n.HiddenLayers(),
		Inputs:       n.InputCount(),
		Outputs:      len(n.Outputs),
		Orphans:      len(n.Orphans()),
	}

	var fanIn []float64
	for i := 1; i < len(n.Layers); i++ {
		for j := range n.Layers[i] {
			refs := n.Layers[i][j].References
			st.HiddenNodes++
			st.Edges += len(refs)
			fanIn = append(fanIn, float64(len(refs)))
			for _, ref := range refs {
				switch ref.Layer {
				case i:
					st.SameLayerEdges++
				case 0:
					st.InputEdges++
				}
			}
		}
	}
	for j := range n.Outputs {
		st.OutputEdges += len(n.Outputs[j].References)
	}

	st.MeanFanIn = Mean(fanIn)
	st.StdevFanIn = Stdev(fanIn)
	if len(fanIn) > 0 {
		st.MedianFanIn = Median(fanIn)
	}
	return st
}
