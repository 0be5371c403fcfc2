package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"pulseboard/internal/model"
	"pulseboard/internal/service"
)

// SurveyHandler handles survey endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
	bankSvc   *service.QuestionBankService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService, bankSvc *service.QuestionBankService) *SurveyHandler {
	return &SurveyHandler{
		surveySvc: surveySvc,
		bankSvc:   bankSvc,
	}
}

// SurveyRequest is the request body for creating or updating a survey.
// BankQuestionIDs are appended after Questions, copied from the question bank.
type SurveyRequest struct {
	ClientID         string                   `json:"clientId"`
	Title            string                   `json:"title"`
	Description      string                   `json:"description"`
	Questions        []model.SelectedQuestion `json:"questions"`
	BankQuestionIDs  []string                 `json:"bankQuestionIds"`
	SegmentFields    []string                 `json:"segmentFields"`
	TotalEmployees   int                      `json:"totalEmployees"`
	PreviousSurveyID string                   `json:"previousSurveyId"`
}

func (h *SurveyHandler) toSurvey(r *http.Request, req *SurveyRequest) (*model.Survey, error) {
	questions := append([]model.SelectedQuestion{}, req.Questions...)
	if len(req.BankQuestionIDs) > 0 {
		selected, err := h.bankSvc.Select(r.Context(), req.BankQuestionIDs)
		if err != nil {
			return nil, err
		}
		questions = append(questions, selected...)
	}

	return &model.Survey{
		ClientID:         req.ClientID,
		Title:            req.Title,
		Description:      req.Description,
		Questions:        questions,
		SegmentFields:    req.SegmentFields,
		TotalEmployees:   req.TotalEmployees,
		PreviousSurveyID: req.PreviousSurveyID,
	}, nil
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := h.toSurvey(r, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	id, err := h.surveySvc.Create(r.Context(), survey)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"surveyId": id})
}

// Update handles PUT /v1/surveys/{surveyId}
func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := h.toSurvey(r, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	survey.ID = mux.Vars(r)["surveyId"]

	if err := h.surveySvc.Update(r.Context(), survey); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	survey, err := h.surveySvc.GetByID(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// List handles GET /v1/surveys?clientId=
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveySvc.GetByClientID(r.Context(), r.URL.Query().Get("clientId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": surveys})
}

// Delete handles DELETE /v1/surveys/{surveyId}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.surveySvc.Delete(r.Context(), mux.Vars(r)["surveyId"]); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Open handles POST /v1/surveys/{surveyId}/open
func (h *SurveyHandler) Open(w http.ResponseWriter, r *http.Request) {
	survey, err := h.surveySvc.Open(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// Close handles POST /v1/surveys/{surveyId}/close
func (h *SurveyHandler) Close(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.surveySvc.Close(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
