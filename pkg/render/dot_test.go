package render

import (
	"strings"
	"testing"

	"github.com/transferflow/transferflow/pkg/flow"
)

func testResult() *flow.Result {
	return &flow.Result{
		Nodes: []flow.ResultNode{
			{ID: "La Liga", Name: "La Liga", Category: "La Liga", Value: 80},
			{ID: "Premier League", Name: "Premier League", Category: "Premier League", Value: 100},
		},
		Links: []flow.ResultLink{
			{Source: "Premier League", Target: "La Liga", Value: 100},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testResult(), Options{})

	if !strings.HasPrefix(dot, "digraph flows {") {
		t.Errorf("DOT does not open a digraph: %q", dot[:40])
	}
	for _, want := range []string{
		`"La Liga" [label="La Liga"];`,
		`"Premier League" -> "La Liga" [label="100"];`,
		"rankdir=LR;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testResult(), Options{Detailed: true})

	if !strings.Contains(dot, `label="La Liga\n80"`) {
		t.Errorf("detailed DOT missing value label:\n%s", dot)
	}
}

func TestToDOTBidirectionalStyling(t *testing.T) {
	res := &flow.Result{
		Nodes: []flow.ResultNode{
			{ID: "A (Out)", Name: "A (Out)", Category: "A", Value: 5},
			{ID: "B (In)", Name: "B (In)", Category: "B", Value: 5},
		},
		Links: []flow.ResultLink{{Source: "A (Out)", Target: "B (In)", Value: 5}},
	}

	dot := ToDOT(res, Options{})

	if !strings.Contains(dot, `"B (In)" [label="B (In)", fillcolor=lightgrey];`) {
		t.Errorf("In-node not greyed out:\n%s", dot)
	}
	if strings.Contains(dot, `"A (Out)" [label="A (Out)", fillcolor=lightgrey];`) {
		t.Errorf("Out-node wrongly greyed out:\n%s", dot)
	}
}

func TestFmtValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100"},
		{0, "0"},
		{12.5, "12.50"},
		{0.333, "0.33"},
	}
	for _, tt := range tests {
		if got := fmtValue(tt.in); got != tt.want {
			t.Errorf("fmtValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
