// Package pkg provides the core libraries for transferflow.
//
// # Overview
//
// Transferflow re-aggregates club-level transfer networks into coarser
// category flow graphs suitable for flow-diagram rendering. The pkg
// directory is organized into these areas:
//
//  1. [network] - Input model (clubs, transfer edges, JSON IO)
//  2. [flow] - The transform engine (aggregation, netting, cycle breaking)
//  3. [digraph] - Directed graph structure with cycle detection
//  4. [render] - Graphviz DOT/SVG/PNG output
//  5. [cache], [store] - Result caching and archival backends
//  6. [observability] - Hook interfaces for metrics without coupling
//
// # Architecture
//
// The typical data flow through transferflow:
//
//	Transfer Network (JSON)
//	         ↓
//	    [network] package (decode + index)
//	         ↓
//	    [flow] package (aggregate → net/bidirectional → assemble)
//	         ↓
//	    [digraph] package (cycle detection + weakest-link breaking)
//	         ↓
//	    Flow Result → [render] → DOT/SVG/PNG
//
// # Quick Start
//
// Transform a network into a net flow graph:
//
//	import (
//	    "github.com/transferflow/transferflow/pkg/flow"
//	    "github.com/transferflow/transferflow/pkg/network"
//	)
//
//	net, err := network.ReadFile("transfers.json")
//	if err != nil {
//	    return err
//	}
//	result := flow.Transform(net, flow.Options{
//	    Level:    flow.LevelLeague,
//	    FlowType: flow.FlowNet,
//	    Metric:   flow.MetricSum,
//	})
package pkg
