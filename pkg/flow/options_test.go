package flow

import "testing"

func TestParseFlowType(t *testing.T) {
	if got, err := ParseFlowType("net"); err != nil || got != FlowNet {
		t.Errorf("ParseFlowType(net) = %q, %v", got, err)
	}
	if got, err := ParseFlowType("bidirectional"); err != nil || got != FlowBidirectional {
		t.Errorf("ParseFlowType(bidirectional) = %q, %v", got, err)
	}
	if _, err := ParseFlowType("gross"); err == nil {
		t.Error("ParseFlowType(gross) accepted an invalid value")
	}
}

func TestParseMetric(t *testing.T) {
	if got, err := ParseMetric("sum"); err != nil || got != MetricSum {
		t.Errorf("ParseMetric(sum) = %q, %v", got, err)
	}
	if got, err := ParseMetric("count"); err != nil || got != MetricCount {
		t.Errorf("ParseMetric(count) = %q, %v", got, err)
	}
	if _, err := ParseMetric("avg"); err == nil {
		t.Error("ParseMetric(avg) accepted an invalid value")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Level != DefaultLevel {
		t.Errorf("Level = %q, want %q", opts.Level, DefaultLevel)
	}
	if opts.FlowType != DefaultFlowType {
		t.Errorf("FlowType = %q, want %q", opts.FlowType, DefaultFlowType)
	}
	if opts.Metric != DefaultMetric {
		t.Errorf("Metric = %q, want %q", opts.Metric, DefaultMetric)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	// Idempotent: a second call leaves the options unchanged.
	logger := opts.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Logger != logger {
		t.Error("second call replaced the logger")
	}
}

func TestValidateAndSetDefaultsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad level", Options{Level: "galaxy"}},
		{"bad flow type", Options{FlowType: "gross"}},
		{"bad metric", Options{Metric: "median"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("ValidateAndSetDefaults() accepted invalid options")
			}
		})
	}
}
