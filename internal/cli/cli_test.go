package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/transferflow/transferflow/internal/config"
	"github.com/transferflow/transferflow/pkg/flow"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"dot", []string{"dot"}},
		{"dot,svg,png", []string{"dot", "svg", "png"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBuildOptionsConfigFallback(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cfg := &config.Config{
		Defaults: config.Defaults{Level: "country", FlowType: "bidirectional", Metric: "count"},
	}

	opts, err := c.buildOptions(cfg, "", "", "")
	if err != nil {
		t.Fatalf("buildOptions() error = %v", err)
	}
	if opts.Level != flow.LevelCountry {
		t.Errorf("Level = %q, want country", opts.Level)
	}
	if opts.FlowType != flow.FlowBidirectional {
		t.Errorf("FlowType = %q, want bidirectional", opts.FlowType)
	}
	if opts.Metric != flow.MetricCount {
		t.Errorf("Metric = %q, want count", opts.Metric)
	}
}

func TestBuildOptionsFlagsWin(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cfg := &config.Config{
		Defaults: config.Defaults{Level: "country", FlowType: "bidirectional", Metric: "count"},
	}

	opts, err := c.buildOptions(cfg, "league", "net", "sum")
	if err != nil {
		t.Fatalf("buildOptions() error = %v", err)
	}
	if opts.Level != flow.LevelLeague || opts.FlowType != flow.FlowNet || opts.Metric != flow.MetricSum {
		t.Errorf("options = %s/%s/%s, want league/net/sum",
			opts.Level, opts.FlowType, opts.Metric)
	}
}

func TestBuildOptionsInvalid(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cfg := &config.Config{Defaults: config.Defaults{Level: "league", FlowType: "net", Metric: "sum"}}

	if _, err := c.buildOptions(cfg, "galaxy", "", ""); err == nil {
		t.Error("buildOptions() accepted an invalid level")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"transform": false, "render": false, "serve": false,
		"cache": false, "completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
