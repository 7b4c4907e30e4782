package flow_test

import (
	"fmt"

	"github.com/transferflow/transferflow/pkg/flow"
	"github.com/transferflow/transferflow/pkg/network"
)

func ExampleTransform() {
	net := &network.Network{
		Nodes: []network.Node{
			{ID: "chelsea", League: "Premier League"},
			{ID: "real", League: "La Liga"},
			{ID: "bayern", League: "Bundesliga"},
		},
		Edges: []network.Edge{
			{From: "chelsea", To: "real", TotalValue: 100},
			{From: "real", To: "bayern", TotalValue: 80},
			{From: "bayern", To: "chelsea", TotalValue: 50},
		},
	}

	result := flow.Transform(net, flow.Options{
		Level:    flow.LevelLeague,
		FlowType: flow.FlowNet,
	})

	for _, l := range result.Links {
		fmt.Printf("%s -> %s: %.0f\n", l.Source, l.Target, l.Value)
	}
	fmt.Println("cycles broken:", result.Stats.HasCycles)
	// Output:
	// La Liga -> Bundesliga: 80
	// Premier League -> La Liga: 100
	// cycles broken: true
}
