package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/stratfolio/stratfolio/internal/database"
	"log/slog"
)

const version = "0.1.0"

// Handler serves the health and service info endpoints.
type Handler struct {
	db        *sql.DB
	logger    *slog.Logger
	startTime time.Time
}

// NewHandler creates the base handler. db may be nil when running without
// persistence.
func NewHandler(db *sql.DB, logger *slog.Logger) *Handler {
	return &Handler{
		db:        db,
		logger:    logger,
		startTime: time.Now(),
	}
}

// HealthHandler handles GET /api/health
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]string{
		"status":  "healthy",
		"version": version,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// InfoHandler handles GET /api/info
func (h *Handler) InfoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	info := map[string]interface{}{
		"service":        "stratfolio",
		"status":         "ready",
		"version":        version,
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
	}

	if h.db != nil {
		info["database"] = database.Stats(h.db)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(info); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
