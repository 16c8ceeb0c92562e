package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/fmcg-atlas/pkg/models/api"
	"github.com/de-tools/fmcg-atlas/pkg/models/report"
	"github.com/de-tools/fmcg-atlas/pkg/services/section"
	"github.com/de-tools/fmcg-atlas/pkg/store/source"
)

type InsightsService interface {
	Dashboard(ctx context.Context) (*api.DashboardView, error)
	Section(ctx context.Context, name string) (any, error)
}

type ForecastService interface {
	Forecasting(ctx context.Context) (*api.ForecastView, error)
	Section(ctx context.Context, name string) (any, error)
}

type Handler struct {
	insights InsightsService
	forecast ForecastService
}

func NewHandler(insights InsightsService, forecast ForecastService) *Handler {
	return &Handler{
		insights: insights,
		forecast: forecast,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.insights.Dashboard(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, view)
}

func (h *Handler) GetDashboardSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "section")

	payload, err := h.insights.Section(ctx, name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, payload)
}

func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.forecast.Forecasting(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, view)
}

func (h *Handler) GetForecastSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "section")

	payload, err := h.forecast.Section(ctx, name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusOf(err)
	message := err.Error()
	if errors.Is(err, section.ErrUnavailable) {
		message = section.Unavailable
	}

	event := zerolog.Ctx(ctx).Warn()
	if status >= http.StatusInternalServerError {
		event = zerolog.Ctx(ctx).Error()
	}
	event.Err(err).Int("status", status).Msg("request failed")

	writeJSON(ctx, w, status, errorResponse{Error: message})
}

func statusOf(err error) int {
	var (
		loadErr   *source.LoadError
		schemaErr *report.SchemaError
	)
	switch {
	case errors.Is(err, section.ErrUnknownSection):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &loadErr), errors.As(err, &schemaErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
