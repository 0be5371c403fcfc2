package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pulseboard/internal/service"
)

// AnalyticsHandler handles dashboard analytics endpoints
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Survey handles GET /v1/surveys/{surveyId}/analytics
func (h *AnalyticsHandler) Survey(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analyticsSvc.Survey(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}

// Segments handles GET /v1/surveys/{surveyId}/analytics/segments?field=
func (h *AnalyticsHandler) Segments(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if field == "" {
		writeError(w, http.StatusBadRequest, "field is required")
		return
	}

	segments, err := h.analyticsSvc.Segments(r.Context(), mux.Vars(r)["surveyId"], field)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"field": field, "segments": segments})
}

// Issues handles GET /v1/surveys/{surveyId}/analytics/issues?limit=
func (h *AnalyticsHandler) Issues(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	issues, err := h.analyticsSvc.TopIssues(r.Context(), mux.Vars(r)["surveyId"], limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"issues": issues})
}

// Trend handles GET /v1/surveys/{surveyId}/analytics/trend
func (h *AnalyticsHandler) Trend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.analyticsSvc.Trend(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trend)
}

// Participation handles GET /v1/surveys/{surveyId}/analytics/participation?field=
func (h *AnalyticsHandler) Participation(w http.ResponseWriter, r *http.Request) {
	p, err := h.analyticsSvc.Participation(r.Context(), mux.Vars(r)["surveyId"], r.URL.Query().Get("field"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}
