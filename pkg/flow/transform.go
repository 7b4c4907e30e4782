package flow

import (
	"time"

	"github.com/transferflow/transferflow/pkg/network"
	"github.com/transferflow/transferflow/pkg/observability"
)

// Transform re-aggregates a raw transfer network into a category-level flow
// graph according to opts. It is a pure function of (net, opts): no state
// survives the call, no I/O happens, and identical inputs produce
// byte-identical results.
//
// Transform never returns an error. Degenerate inputs (no edges, flows that
// cancel completely) yield a valid empty result, and any unexpected internal
// fault is recovered, logged through opts.Logger, and converted to an empty
// result with zeroed stats. Visualization availability is deliberately
// favored over strict failure signaling; callers that need the failure must
// watch the log stream.
func Transform(net *network.Network, opts Options) (result *Result) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		if opts.Logger != nil {
			opts.Logger.Error("invalid transform options", "err", err)
		}
		return emptyResult()
	}
	logger := opts.Logger

	defer func() {
		if r := recover(); r != nil {
			logger.Error("transform recovered from internal fault", "panic", r)
			result = emptyResult()
		}
	}()

	start := time.Now()
	observability.Transform().OnTransformStart(string(opts.Level), string(opts.FlowType), string(opts.Metric), net.NodeCount())

	flows := Aggregate(net, opts.Level, opts.Metric)

	var (
		nodes     []ResultNode
		links     []ResultLink
		hasCycles bool
	)
	switch opts.FlowType {
	case FlowBidirectional:
		nodes, links = buildBidirectional(flows)
	default:
		nodes, links, hasCycles = buildNet(flows, logger)
	}

	result = assemble(net.NodeCount(), net.EdgeCount(), nodes, links, hasCycles)
	observability.Transform().OnTransformComplete(string(opts.Level), string(opts.FlowType), string(opts.Metric),
		result.Stats.Nodes, result.Stats.Links, result.Stats.HasCycles, time.Since(start))
	logger.Debug("transform complete",
		"level", opts.Level, "flow", opts.FlowType, "metric", opts.Metric,
		"nodes", result.Stats.Nodes, "links", result.Stats.Links,
		"cycles", result.Stats.HasCycles, "elapsed", time.Since(start).Round(time.Microsecond))
	return result
}
