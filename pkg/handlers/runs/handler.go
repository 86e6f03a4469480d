// Package runs serves run history from the ledger over HTTP.
package runs

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/qed-tools/fabric-atlas/pkg/adapters"
	"github.com/qed-tools/fabric-atlas/pkg/models/api"
	"github.com/qed-tools/fabric-atlas/pkg/models/store"
)

const defaultRunLimit = 50

// History is the slice of the ledger the handler needs.
type History interface {
	GetRuns(ctx context.Context, limit int) ([]store.Run, error)
	GetRunReports(ctx context.Context, runID string) ([]store.ReportEntry, error)
	GetFlaggedReports(ctx context.Context, since time.Time) ([]store.ReportEntry, error)
}

type Handler struct {
	history History
}

func NewHandler(history History) *Handler {
	return &Handler{history: history}
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	limit := defaultRunLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := h.history.GetRuns(ctx, limit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load runs")
		http.Error(w, "failed to load runs", http.StatusInternalServerError)
		return
	}

	response := make([]api.Run, 0, len(runs))
	for _, run := range runs {
		response = append(response, adapters.MapRunStoreToApi(run))
	}
	writeJSON(w, logger, response)
}

func (h *Handler) ListRunReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	runID := chi.URLParam(r, "run")

	entries, err := h.history.GetRunReports(ctx, runID)
	if err != nil {
		logger.Error().Err(err).Str("run", runID).Msg("failed to load run reports")
		http.Error(w, "failed to load run reports", http.StatusInternalServerError)
		return
	}

	response := make([]api.ReportEntry, 0, len(entries))
	for _, e := range entries {
		response = append(response, adapters.MapReportEntryStoreToApi(e))
	}
	writeJSON(w, logger, response)
}

func (h *Handler) ListFlaggedReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	since := time.Time{}
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "invalid since date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	entries, err := h.history.GetFlaggedReports(ctx, since)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load flagged reports")
		http.Error(w, "failed to load flagged reports", http.StatusInternalServerError)
		return
	}

	response := make([]api.ReportEntry, 0, len(entries))
	for _, e := range entries {
		response = append(response, adapters.MapReportEntryStoreToApi(e))
	}
	writeJSON(w, logger, response)
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
