// Package api exposes the query engine over HTTP: dataset registration,
// query execution, and sketch management, routed with gorilla/mux the
// way the teacher's server wires its own handlers.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/approxql/aqe/internal/config"
	"github.com/approxql/aqe/pkg/dataset"
	"github.com/approxql/aqe/pkg/executor"
	"github.com/approxql/aqe/pkg/query"
	"github.com/approxql/aqe/pkg/sketchstore"
)

// JSON is a loosely typed response/request body.
type JSON map[string]any

// Handler holds the in-memory state the HTTP surface operates over.
type Handler struct {
	datasets *dataset.Registry
	sketches *sketchstore.Store
	parser   *query.Parser
	executor *executor.Executor
	log      *slog.Logger
}

// NewHandler wires a Handler against the given in-memory stores, building
// an Executor whose sampling defaults come from cfg.
func NewHandler(datasets *dataset.Registry, sketches *sketchstore.Store, cfg config.SamplingConfig, log *slog.Logger) *Handler {
	return &Handler{
		datasets: datasets,
		sketches: sketches,
		parser:   query.NewParser(),
		executor: executor.NewWithConfig(cfg),
		log:      log,
	}
}

// RegisterRoutes wires every handler onto r.
func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/datasets", h.ListDatasets).Methods(http.MethodGet)
	r.HandleFunc("/datasets", h.CreateDataset).Methods(http.MethodPost)
	r.HandleFunc("/query", h.PostQuery).Methods(http.MethodPost)
	r.HandleFunc("/sketches", h.CreateSketch).Methods(http.MethodPost)
	r.HandleFunc("/sketches", h.ListSketches).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
