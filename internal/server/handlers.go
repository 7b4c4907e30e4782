package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/transferflow/transferflow/pkg/buildinfo"
	"github.com/transferflow/transferflow/pkg/cache"
	"github.com/transferflow/transferflow/pkg/flow"
	"github.com/transferflow/transferflow/pkg/network"
	"github.com/transferflow/transferflow/pkg/store"
)

// maxBodyBytes bounds request bodies; transfer networks are small but the
// endpoint is public in hosted deployments.
const maxBodyBytes = 32 << 20 // 32 MiB

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	}, false)
}

// transformRequest is the decoded, validated input of a transform call.
type transformRequest struct {
	body    []byte
	net     *network.Network
	opts    flow.Options
	pretty  bool
	refresh bool
}

// decodeTransformRequest reads the network body and the option query
// parameters. Option parsing failures are client errors.
func (s *Server) decodeTransformRequest(r *http.Request) (*transformRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.New("failed to read request body")
	}
	defer r.Body.Close()

	net, err := network.Unmarshal(body)
	if err != nil {
		return nil, errors.New("invalid network: " + err.Error())
	}

	opts := flow.Options{Logger: s.opts.Logger}
	q := r.URL.Query()
	if v := q.Get("level"); v != "" {
		if opts.Level, err = flow.ParseLevel(v); err != nil {
			return nil, err
		}
	}
	if v := q.Get("flow"); v != "" {
		if opts.FlowType, err = flow.ParseFlowType(v); err != nil {
			return nil, err
		}
	}
	if v := q.Get("metric"); v != "" {
		if opts.Metric, err = flow.ParseMetric(v); err != nil {
			return nil, err
		}
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	return &transformRequest{
		body:    body,
		net:     net,
		opts:    opts,
		pretty:  q.Get("pretty") == "true",
		refresh: q.Get("refresh") == "true",
	}, nil
}

// transform runs the engine with result caching and returns the compact
// serialized result.
func (s *Server) transform(r *http.Request, req *transformRequest) ([]byte, error) {
	key := cache.TransformKey(cache.Hash(req.body),
		string(req.opts.Level), string(req.opts.FlowType), string(req.opts.Metric))

	if !req.refresh {
		if data, ok, err := s.opts.Cache.Get(r.Context(), key); err == nil && ok {
			return data, nil
		}
	}

	result := flow.Transform(req.net, req.opts)
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	if err := s.opts.Cache.Set(r.Context(), key, data, s.opts.CacheTTL); err != nil {
		s.opts.Logger.Warn("cache write failed", "err", err)
	}
	return data, nil
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeTransformRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	data, err := s.transform(r, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeRawJSON(w, http.StatusOK, data, req.pretty)
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeTransformRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := flow.Transform(req.net, req.opts)
	rec := store.NewRecord(req.opts, result)
	if err := s.opts.Store.Save(r.Context(), rec); err != nil {
		s.opts.Logger.Error("archive failed", "id", rec.ID, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to archive result"))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": rec.ID}, req.pretty)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.opts.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.opts.Logger.Error("result lookup failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to load result"))
		return
	}
	writeJSON(w, http.StatusOK, rec, r.URL.Query().Get("pretty") == "true")
}

func writeJSON(w http.ResponseWriter, status int, v any, pretty bool) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "encoding failure", http.StatusInternalServerError)
		return
	}
	writeRawJSON(w, status, data, pretty)
}

func writeRawJSON(w http.ResponseWriter, status int, data []byte, pretty bool) {
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err == nil {
			data = buf.Bytes()
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()}, false)
}
