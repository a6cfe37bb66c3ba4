// Package server exposes the simulation engine over a small JSON API.
// Presentation (charts, tables, widgets) is an external collaborator that
// consumes the monthly-record sequence and derived metrics read-only.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/revenuex/revenue-forecast/internal/config"
	"github.com/revenuex/revenue-forecast/internal/simulation"
	"github.com/revenuex/revenue-forecast/pkg/constants"
	"github.com/revenuex/revenue-forecast/pkg/output"
	"go.uber.org/zap"
)

type handler struct {
	logger       *zap.Logger
	maxBodyBytes int64
	version      string
}

// NewHandler constructs the HTTP handler that serves the simulation API.
func NewHandler(logger *zap.Logger, maxBodyBytes int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodyBytes <= 0 {
		maxBodyBytes = constants.DefaultMaxBodyBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodyBytes: maxBodyBytes, version: trimmedVersion}

	router := mux.NewRouter()
	router.HandleFunc("/api/simulate", h.handleSimulate).Methods(http.MethodPost)
	router.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	return router
}

type simulateResponse struct {
	Records  []simulation.MonthlyRecord `json:"records"`
	Summary  simulation.Summary         `json:"summary"`
	Warnings []string                   `json:"warnings,omitempty"`
	CSV      string                     `json:"csv"`
	Duration string                     `json:"duration"`
}

// handleSimulate accepts a configuration document (YAML or JSON body) and
// responds with the monthly records plus derived metrics.
func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodyBytes))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return
	}

	// YAML is a superset of JSON, so one reader-based loader covers both
	// content types.
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(body))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	warnings := cfg.ValidateConfiguration()

	engine := simulation.NewEngine(h.logger)
	records := engine.Run(cfg.Simulation)
	summary := engine.Summarize(cfg.Simulation, records, cfg.Milestones)

	elapsed := time.Since(start)

	response := simulateResponse{
		Records:  records,
		Summary:  summary,
		Warnings: warnings,
		CSV:      output.CsvString(records),
		Duration: elapsed.String(),
	}

	h.logger.Info("simulation computed",
		zap.String("op", "server.handleSimulate"),
		zap.Int("months", len(records)),
		zap.Int("plans", len(cfg.Simulation.Subscriptions)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.logger.Error("simulation request failed",
		zap.String("op", "server.handleSimulate"),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
