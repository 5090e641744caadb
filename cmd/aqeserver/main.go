// Command aqeserver runs the query engine as an HTTP service: dataset
// registration, query execution, and sketch management behind a
// gorilla/mux router, configured from a YAML file.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/approxql/aqe/internal/config"
	"github.com/approxql/aqe/internal/obslog"
	"github.com/approxql/aqe/pkg/api"
	"github.com/approxql/aqe/pkg/dataset"
	"github.com/approxql/aqe/pkg/sketchstore"
)

func main() {
	log := obslog.New(obslog.ParseLevel(os.Getenv("AQE_LOG_LEVEL")))

	cfg := config.Default()
	if path := os.Getenv("AQE_CONFIG_PATH"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Error("failed to load config, falling back to defaults", "path", path, "error", err)
		} else {
			cfg = loaded
		}
	}

	datasets := dataset.NewRegistry()
	sketches := sketchstore.New(cfg.Sketches)
	h := api.NewHandler(datasets, sketches, cfg.Sampling, log)

	r := mux.NewRouter()
	api.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info("aqe server listening", "addr", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
