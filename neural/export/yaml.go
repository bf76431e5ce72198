package export

import (
	"fmt"

	"github.com/baldhumanity/sparsenet/neural"
	"gopkg.in/yaml.v3"
)

type networkView struct {
	Num     int         `yaml:"num"`
	Layers  []layerView `yaml:"layers"`
	Outputs []nodeView  `yaml:"outputs"`
}

type layerView struct {
	Index int        `yaml:"index"`
	Nodes []nodeView `yaml:"nodes"`
}

type nodeView struct {
	Index      int                `yaml:"index"`
	Value      float32            `yaml:"value"`
	Bias       *float32           `yaml:"bias,omitempty"`
	References []neural.Reference `yaml:"references,omitempty"`
}

func viewNodes(nodes []neural.Node) []nodeView {
	views := make([]nodeView, len(nodes))
	for j := range nodes {
		views[j] = nodeView{
			Index:      j,
			Value:      nodes[j].Value,
			Bias:       nodes[j].Bias,
			References: nodes[j].References,
		}
	}
	return views
}

// RenderYAML dumps the structure and current values of net. Input nodes have
// neither bias nor references and are rendered with their value only.
func RenderYAML(net *neural.NeuralNetwork) ([]byte, error) {
	view := networkView{
		Num:     net.Num,
		Layers:  make([]layerView, len(net.Layers)),
		Outputs: viewNodes(net.Outputs),
	}
	for i, layer := range net.Layers {
		view.Layers[i] = layerView{Index: i, Nodes: viewNodes(layer)}
	}

	data, err := yaml.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("marshal network %d: %w", net.Num, err)
	}
	return data, nil
}
