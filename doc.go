// Package neural generates and evaluates populations of randomly structured,
// sparse, layered feed-forward networks.
//
// A Simulation owns one seeded random stream and builds every network of its
// population from it, in order, so the whole population is reproducible from
// the seed. Each network has 1 to 5 hidden layers of 3 to 99 nodes, every node
// reading 1 to 9 earlier (and occasionally same-layer) nodes. Nodes that no
// other node reads are wired into a fixed-size output layer.
//
// Evaluation is a single forward sweep: inputs are appended to layer 0, then
// every hidden node and output is recomputed in order as
// clamp(sum(value*weight)+bias, -1, 1). Nodes read what is currently stored,
// so same-layer edges see the previous sweep's values.
//
// Basic usage:
//
//	// Load configuration
//	config, err := neural.LoadConfig("path/to/sim.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Generate the population
//	sim, err := neural.NewSimulationFromConfig(config)
//	if err != nil {
//		log.Fatalf("Error creating simulation: %v", err)
//	}
//
//	// Feed one tick of inputs to every network
//	for i := range sim.Networks {
//		outputs, err := sim.Evaluate(i, []float32{0.1, 0.2})
//		if err != nil {
//			log.Fatalf("Error evaluating network %d: %v", i, err)
//		}
//		fmt.Println(outputs)
//	}
package neural
