package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"pulseboard/internal/model"
	"pulseboard/internal/service"
)

// QuestionHandler handles question bank endpoints
type QuestionHandler struct {
	bankSvc *service.QuestionBankService
}

// NewQuestionHandler creates a new question bank handler
func NewQuestionHandler(bankSvc *service.QuestionBankService) *QuestionHandler {
	return &QuestionHandler{bankSvc: bankSvc}
}

// Create handles POST /v1/questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var q model.QuestionTemplate
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	q.ID = ""

	if err := h.bankSvc.Create(r.Context(), &q); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, q)
}

// List handles GET /v1/questions?category=&type=
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	questions, err := h.bankSvc.List(r.Context(), query.Get("category"), model.QuestionType(query.Get("type")))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// Categories handles GET /v1/questions/categories
func (h *QuestionHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.bankSvc.Categories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// Get handles GET /v1/questions/{questionId}
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.bankSvc.Get(r.Context(), mux.Vars(r)["questionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// Update handles PUT /v1/questions/{questionId}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var q model.QuestionTemplate
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	q.ID = mux.Vars(r)["questionId"]

	if err := h.bankSvc.Update(r.Context(), &q); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// Delete handles DELETE /v1/questions/{questionId}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.bankSvc.Delete(r.Context(), mux.Vars(r)["questionId"]); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
