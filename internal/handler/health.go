package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/undercity-game/undercity/internal/catalog"
	"github.com/undercity-game/undercity/internal/database"
)

const readinessPingTimeout = 2 * time.Second

var errEmptyCatalog = errors.New("item catalog is empty")

// HealthResponse reports liveness or readiness, with one entry per
// readiness check on /readyz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// readinessCheck probes one dependency the engine cannot serve without.
type readinessCheck struct {
	name  string
	probe func(ctx context.Context) error
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports whether the engine can take traffic: the
// database must answer a ping and the item catalog must have loaded.
// @Summary Readiness check
// @Description Returns OK if the database is reachable and the item catalog is loaded
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool, lookup catalog.Lookup) http.HandlerFunc {
	checks := []readinessCheck{
		{name: "database", probe: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, readinessPingTimeout)
			defer cancel()
			return dbPool.Ping(pingCtx)
		}},
		{name: "catalog", probe: func(context.Context) error {
			if len(lookup.All()) == 0 {
				return errEmptyCatalog
			}
			return nil
		}},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK

		for _, check := range checks {
			if err := check.probe(r.Context()); err != nil {
				slog.Error("Readiness check failed", "check", check.name, "error", err)
				response.Status = "unavailable"
				response.Checks[check.name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			response.Checks[check.name] = "ok"
		}

		writeHealth(w, status, response)
	}
}

func writeHealth(w http.ResponseWriter, status int, response HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
