package network

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDisplayName(t *testing.T) {
	named := &Node{ID: "chelsea", Name: "Chelsea FC"}
	if got := named.DisplayName(); got != "Chelsea FC" {
		t.Errorf("DisplayName() = %q, want %q", got, "Chelsea FC")
	}

	unnamed := &Node{ID: "chelsea"}
	if got := unnamed.DisplayName(); got != "chelsea" {
		t.Errorf("DisplayName() = %q, want the ID", got)
	}
}

func TestNodeIndex(t *testing.T) {
	net := &Network{
		Nodes: []Node{
			{ID: "a", League: "L1"},
			{ID: "b", League: "L2"},
		},
	}

	idx := net.NodeIndex()
	if len(idx) != 2 {
		t.Fatalf("NodeIndex() has %d entries, want 2", len(idx))
	}
	if idx["a"].League != "L1" {
		t.Errorf("idx[a].League = %q, want L1", idx["a"].League)
	}

	// Index pointers refer to the network's own nodes.
	idx["a"].League = "changed"
	if net.Nodes[0].League != "changed" {
		t.Error("index pointer does not alias the network node")
	}
}

func TestUnmarshal(t *testing.T) {
	data := []byte(`{
		"nodes": [{"id": "a", "league": "L1"}],
		"edges": [{"from": "a", "to": "b", "total_value": 12.5, "transfer_count": 2,
			"transfers": [{"player": "Someone", "fee": 12.5, "window": "summer"}]}]
	}`)

	net, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if net.NodeCount() != 1 || net.EdgeCount() != 1 {
		t.Errorf("counts = %d/%d, want 1/1", net.NodeCount(), net.EdgeCount())
	}
	e := net.Edges[0]
	if e.TotalValue != 12.5 || e.TransferCount != 2 {
		t.Errorf("edge aggregates = %v/%d, want 12.5/2", e.TotalValue, e.TransferCount)
	}
	if e.Transfers[0].Fee == nil || *e.Transfers[0].Fee != 12.5 {
		t.Errorf("transfer fee = %v, want 12.5", e.Transfers[0].Fee)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	_, err := Unmarshal([]byte("not json"))
	if err == nil {
		t.Fatal("Unmarshal() accepted invalid JSON")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error = %q, want decode context", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	fee := 50.0
	want := &Network{
		Nodes: []Node{
			{ID: "a", Name: "Club A", League: "L1", Country: "C1", Continent: "Europe"},
			{ID: "b"},
		},
		Edges: []Edge{
			{From: "a", To: "b", TotalValue: 50, TransferCount: 1,
				Transfers: []Transfer{{Player: "Someone", Fee: &fee, Season: "2023/24"}}},
		},
	}

	path := filepath.Join(t.TempDir(), "net.json")
	if err := WriteFile(want, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("ReadFile() on a missing file returned no error")
	}
}
