package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"pulseboard/internal/service"
	"pulseboard/internal/transport/rest/middleware"
)

// ResponseHandler handles respondent endpoints
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// Join handles POST /v1/surveys/{surveyId}/join
func (h *ResponseHandler) Join(w http.ResponseWriter, r *http.Request) {
	resp, err := h.responseSvc.Join(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Questions handles GET /v1/surveys/{surveyId}/questions
func (h *ResponseHandler) Questions(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := h.scopedSurvey(w, r)
	if !ok {
		return
	}

	questions, err := h.responseSvc.Questions(r.Context(), surveyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// Submit handles POST /v1/surveys/{surveyId}/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := h.scopedSurvey(w, r)
	if !ok {
		return
	}

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.responseSvc.Submit(r.Context(), surveyID, middleware.GetRespondentID(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"responseId": resp.ID})
}

// scopedSurvey rejects respondent tokens issued for another survey
func (h *ResponseHandler) scopedSurvey(w http.ResponseWriter, r *http.Request) (string, bool) {
	surveyID := mux.Vars(r)["surveyId"]
	if middleware.GetSurveyID(r.Context()) != surveyID {
		writeError(w, http.StatusForbidden, "token not valid for this survey")
		return "", false
	}
	return surveyID, true
}
