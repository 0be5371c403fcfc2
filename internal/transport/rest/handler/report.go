package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"pulseboard/internal/service"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// GetSnapshot handles GET /v1/reports/{surveyId}/snapshot
func (h *ReportHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.reportSvc.GetSnapshot(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// List handles GET /v1/reports?clientId=
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.reportSvc.ListSnapshots(r.Context(), r.URL.Query().Get("clientId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"reports": snapshots})
}
