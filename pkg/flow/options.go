package flow

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// FlowType selects how opposing flows between two categories are handled.
type FlowType string

const (
	// FlowBidirectional splits every flow into disjoint Out/In node halves.
	// The result is acyclic by construction and preserves both directions.
	FlowBidirectional FlowType = "bidirectional"

	// FlowNet cancels opposing flows pairwise and keeps only the dominant
	// direction, then breaks any residual multi-node cycles.
	FlowNet FlowType = "net"
)

// Metric selects the value accumulated per flow.
type Metric string

const (
	// MetricSum accumulates the precomputed monetary total of each edge.
	MetricSum Metric = "sum"

	// MetricCount accumulates the precomputed transfer count of each edge.
	MetricCount Metric = "count"
)

// Defaults applied by [Options.ValidateAndSetDefaults].
const (
	DefaultLevel    = LevelLeague
	DefaultFlowType = FlowNet
	DefaultMetric   = MetricSum
)

// ValidFlowTypes is the set of supported flow types.
var ValidFlowTypes = map[FlowType]bool{
	FlowBidirectional: true,
	FlowNet:           true,
}

// ValidMetrics is the set of supported value metrics.
var ValidMetrics = map[Metric]bool{
	MetricSum:   true,
	MetricCount: true,
}

// ParseFlowType converts a string to a FlowType.
func ParseFlowType(s string) (FlowType, error) {
	t := FlowType(s)
	if !ValidFlowTypes[t] {
		return "", fmt.Errorf("invalid flow type: %q (must be one of: bidirectional, net)", s)
	}
	return t, nil
}

// ParseMetric converts a string to a Metric.
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if !ValidMetrics[m] {
		return "", fmt.Errorf("invalid metric: %q (must be one of: sum, count)", s)
	}
	return m, nil
}

// Options configures a transform run. The zero value is usable: unset fields
// are filled by ValidateAndSetDefaults, which [Transform] calls internally.
// This struct supports JSON serialization for API requests.
type Options struct {
	Level    Level    `json:"level,omitempty"`
	FlowType FlowType `json:"flow_type,omitempty"`
	Metric   Metric   `json:"metric,omitempty"`

	// Logger receives diagnostics (broken cycle edges, recovered faults).
	// Defaults to a discard logger; the engine never writes to stderr on
	// its own. Not serialized.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Level == "" {
		o.Level = DefaultLevel
	}
	if o.FlowType == "" {
		o.FlowType = DefaultFlowType
	}
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if !ValidLevels[o.Level] {
		return fmt.Errorf("invalid level: %q (must be one of: club, league, country, continent)", o.Level)
	}
	if !ValidFlowTypes[o.FlowType] {
		return fmt.Errorf("invalid flow type: %q (must be one of: bidirectional, net)", o.FlowType)
	}
	if !ValidMetrics[o.Metric] {
		return fmt.Errorf("invalid metric: %q (must be one of: sum, count)", o.Metric)
	}
	return nil
}
