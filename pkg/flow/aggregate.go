package flow

import (
	"slices"

	"github.com/transferflow/transferflow/pkg/network"
)

// Flow is an aggregated directed quantity between two categories, prior to
// cycle resolution. Invariant: From != To (self-loops are excluded during
// aggregation).
type Flow struct {
	From      string
	To        string
	Value     float64
	Transfers []network.Transfer
}

// categoryPair is the ordered category-pair key used to bucket flows.
// A struct key avoids the lookup corruption a delimiter-joined string key
// would suffer for category names containing the delimiter.
type categoryPair struct {
	from, to string
}

// reversed returns the key for the opposing direction.
func (p categoryPair) reversed() categoryPair {
	return categoryPair{from: p.to, to: p.from}
}

// Aggregate re-buckets the network's raw edges into category-level flows at
// the given level, accumulating the selected metric.
//
// Edges with a dangling endpoint (an ID absent from the node index) are
// skipped silently - dangling references are treated as absent data, not
// errors. Edges whose endpoints map to the same category are skipped too, so
// no self-loop flow survives aggregation.
//
// Values come from the edges' precomputed aggregates (total value or
// transfer count), never re-derived from individual transfers. Zero-value
// flows are kept; filtering is a builder concern. Transfer details are
// accumulated per flow without a cap - accepted for the expected scale of
// tens to low hundreds of category nodes.
//
// The returned flows are sorted by (From, To).
func Aggregate(net *network.Network, level Level, metric Metric) []Flow {
	idx := net.NodeIndex()
	totals := make(map[categoryPair]*Flow)

	for _, e := range net.Edges {
		src, ok := idx[e.From]
		if !ok {
			continue
		}
		dst, ok := idx[e.To]
		if !ok {
			continue
		}

		from := level.Category(src)
		to := level.Category(dst)
		if from == to {
			continue
		}

		key := categoryPair{from: from, to: to}
		f := totals[key]
		if f == nil {
			f = &Flow{From: from, To: to}
			totals[key] = f
		}

		switch metric {
		case MetricCount:
			f.Value += float64(e.TransferCount)
		default:
			f.Value += e.TotalValue
		}
		f.Transfers = append(f.Transfers, e.Transfers...)
	}

	flows := make([]Flow, 0, len(totals))
	for _, f := range totals {
		flows = append(flows, *f)
	}
	slices.SortFunc(flows, compareFlows)
	return flows
}

func compareFlows(a, b Flow) int {
	switch {
	case a.From != b.From && a.From < b.From:
		return -1
	case a.From != b.From:
		return 1
	case a.To < b.To:
		return -1
	case a.To > b.To:
		return 1
	default:
		return 0
	}
}
