package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/transferflow/transferflow/pkg/flow"
	"github.com/transferflow/transferflow/pkg/store"
)

const testNetwork = `{
	"nodes": [
		{"id": "a1", "league": "A"},
		{"id": "b1", "league": "B"},
		{"id": "c1", "league": "C"}
	],
	"edges": [
		{"from": "a1", "to": "b1", "total_value": 100},
		{"from": "b1", "to": "c1", "total_value": 80},
		{"from": "c1", "to": "a1", "total_value": 50}
	]
}`

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	return New(opts)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if body["version"] == "" {
		t.Error("version field is empty")
	}
}

func TestTransformEndpoint(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/transform?level=league&flow=net&metric=sum",
		strings.NewReader(testNetwork))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result flow.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Stats.Links != 2 {
		t.Errorf("Stats.Links = %d, want 2 (weakest cycle edge broken)", result.Stats.Links)
	}
	if !result.Stats.HasCycles {
		t.Error("Stats.HasCycles = false, want true")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response lacks a request ID")
	}
}

func TestTransformEndpointBadOptions(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/transform?level=galaxy", strings.NewReader(testNetwork))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.Contains(body["error"], "invalid level") {
		t.Errorf("error = %q, want invalid level message", body["error"])
	}
}

func TestTransformEndpointBadBody(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transform",
		strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestArchiveAndFetch(t *testing.T) {
	s := newTestServer(t, Options{Store: store.NewMemoryStore()})

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/results?level=league", strings.NewReader(testNetwork))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("archive status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode archive response: %v", err)
	}
	id := created["id"]
	if id == "" {
		t.Fatal("archive response lacks an id")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/results/"+id, nil)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("fetch status = %d", rec.Code)
	}
	var fetched store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if fetched.ID != id {
		t.Errorf("record ID = %q, want %q", fetched.ID, id)
	}
	if fetched.Level != "league" {
		t.Errorf("record Level = %q, want league", fetched.Level)
	}
}

func TestFetchMissingResult(t *testing.T) {
	s := newTestServer(t, Options{Store: store.NewMemoryStore()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results/nope", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestArchiveDisabledWithoutStore(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/results",
		strings.NewReader(testNetwork))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code == http.StatusCreated {
		t.Error("archive endpoint served without a configured store")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Errorf("X-Request-ID = %q, want caller-supplied", got)
	}
}

func TestPrettyOutput(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/transform?pretty=true", strings.NewReader(testNetwork))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "\n  ") {
		t.Error("pretty output is not indented")
	}
}
