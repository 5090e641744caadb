package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/approxql/aqe/internal/metrics"
	"github.com/approxql/aqe/pkg/dataset"
	"github.com/approxql/aqe/pkg/estimator"
	"github.com/approxql/aqe/pkg/query"
	"github.com/approxql/aqe/pkg/sketches"
)

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, JSON{"status": "ok"})
}

// ListDatasets reports every registered dataset's name, ID, and row count.
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	entries := h.datasets.List()
	out := make([]JSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, JSON{"id": e.ID, "name": e.Name, "rows": len(e.Rows)})
	}
	writeJSON(w, http.StatusOK, JSON{"datasets": out})
}

// CreateDatasetRequest is the POST /datasets body: a name and raw CSV text.
type CreateDatasetRequest struct {
	Name string `json:"name"`
	CSV  string `json:"csv"`
}

// CreateDataset parses req.CSV and registers it under req.Name.
func (h *Handler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	var req CreateDatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, JSON{"error": "invalid json"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.CSV == "" {
		writeJSON(w, http.StatusBadRequest, JSON{"error": "name and csv are required"})
		return
	}

	rows, err := dataset.LoadCSV(strings.NewReader(req.CSV))
	if err != nil {
		h.log.Error("failed to load dataset", "name", req.Name, "error", err)
		writeJSON(w, http.StatusBadRequest, JSON{"error": err.Error()})
		return
	}

	entry := h.datasets.Register(req.Name, rows)
	metrics.DatasetsLoaded.Set(float64(len(h.datasets.List())))
	writeJSON(w, http.StatusOK, JSON{"id": entry.ID, "name": entry.Name, "rows": len(entry.Rows)})
}

// QueryRequest is the POST /query body.
type QueryRequest struct {
	Dataset string `json:"dataset"`
	SQL     string `json:"sql"`
}

// QueryResponse is the POST /query result.
type QueryResponse struct {
	ColumnNames []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	Approximate bool       `json:"approximate"`
	// ConfidenceIntervals is present only for approximate queries: one
	// entry per row, keyed by the COUNT/SUM column's rendered name.
	ConfidenceIntervals []map[string]estimator.CIResult `json:"confidence_intervals,omitempty"`
}

// PostQuery parses req.SQL, executes it against req.Dataset, and returns
// the materialized result table.
func (h *Handler) PostQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, JSON{"error": "invalid json"})
		return
	}

	entry, ok := h.datasets.Get(req.Dataset)
	if !ok {
		writeJSON(w, http.StatusNotFound, JSON{"error": "unknown dataset: " + req.Dataset})
		return
	}

	q, err := h.parser.Parse(req.SQL)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("parse_error").Inc()
		writeJSON(w, http.StatusBadRequest, JSON{"error": err.Error()})
		return
	}

	start := time.Now()
	result, err := h.executor.Execute(q, entry.Rows)
	approximate := q.Sampling.Method != query.SamplingNone
	metrics.QueryDuration.WithLabelValues(strconv.FormatBool(approximate)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("exec_error").Inc()
		writeJSON(w, http.StatusInternalServerError, JSON{"error": err.Error()})
		return
	}

	metrics.RowsScanned.Add(float64(result.RowsScanned))
	metrics.RowsSampled.Add(float64(result.RowsSampled))
	metrics.LastSampleRate.Set(result.SampleRate)
	metrics.QueriesTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, QueryResponse{
		ColumnNames:         result.ColumnNames,
		Rows:                result.Rows,
		Approximate:         result.Approximate,
		ConfidenceIntervals: result.ConfidenceIntervals,
	})
}

// CreateSketchRequest is the POST /sketches body.
type CreateSketchRequest struct {
	Dataset string `json:"dataset"`
	Column  string `json:"column"`
	Type    string `json:"type"`
}

// CreateSketch builds and registers a sketch of the requested type over a
// dataset column.
func (h *Handler) CreateSketch(w http.ResponseWriter, r *http.Request) {
	var req CreateSketchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, JSON{"error": "invalid json"})
		return
	}

	entry, ok := h.datasets.Get(req.Dataset)
	if !ok {
		writeJSON(w, http.StatusNotFound, JSON{"error": "unknown dataset: " + req.Dataset})
		return
	}

	switch sketches.SketchType(req.Type) {
	case sketches.HyperLogLogType:
		e := h.sketches.BuildHyperLogLog(req.Dataset, req.Column, entry.Rows)
		metrics.SketchesRegistered.WithLabelValues(string(sketches.HyperLogLogType)).Inc()
		writeJSON(w, http.StatusOK, JSON{"id": e.ID, "type": e.Type, "column": e.Column})
	case sketches.CountMinSketchType:
		e := h.sketches.BuildCountMinSketch(req.Dataset, req.Column, entry.Rows)
		metrics.SketchesRegistered.WithLabelValues(string(sketches.CountMinSketchType)).Inc()
		writeJSON(w, http.StatusOK, JSON{"id": e.ID, "type": e.Type, "column": e.Column})
	case sketches.BloomFilterType:
		e := h.sketches.BuildBloomFilter(req.Dataset, req.Column, entry.Rows)
		metrics.SketchesRegistered.WithLabelValues(string(sketches.BloomFilterType)).Inc()
		writeJSON(w, http.StatusOK, JSON{"id": e.ID, "type": e.Type, "column": e.Column})
	default:
		writeJSON(w, http.StatusBadRequest, JSON{"error": "unsupported sketch type: " + req.Type})
	}
}

// ListSketches reports every registered sketch; when an "item" query
// parameter is given it also evaluates an estimate (cardinality for
// HyperLogLog, frequency for Count-Min) against that item.
func (h *Handler) ListSketches(w http.ResponseWriter, r *http.Request) {
	item := r.URL.Query().Get("item")
	entries := h.sketches.List()
	out := make([]JSON, 0, len(entries))
	for _, e := range entries {
		row := JSON{"id": e.ID, "table": e.Table, "column": e.Column, "type": e.Type}
		if item != "" {
			switch s := e.Sketch.(type) {
			case *sketches.HyperLogLog:
				row["cardinality_estimate"] = s.Count()
			case *sketches.CountMinSketch:
				row["frequency_estimate"] = s.Estimate(item)
			case *sketches.BloomFilter:
				row["might_contain"] = s.MightContain(item)
			}
		}
		out = append(out, row)
	}
	writeJSON(w, http.StatusOK, JSON{"sketches": out})
}
