package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"quizzical/internal/app/service"
	"quizzical/internal/common"
	"quizzical/internal/domain/model"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(qs *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: qs}
}

// Uses lists the distinct use tags. Public.
func (h *QuestionHandler) Uses(w http.ResponseWriter, r *http.Request) {
	uses, err := h.questionService.Uses(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, uses)
}

// Subjects lists the distinct subject tags. Public.
func (h *QuestionHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.questionService.Subjects(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, subjects)
}

// Ask returns n randomly-ordered questions matching the optional use and
// subject filters. n defaults to 5 and must be 5, 10 or 20.
func (h *QuestionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	n := 5
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "n must be an integer")
			return
		}
		n = parsed
	}

	use := r.URL.Query().Get("use")
	subject := r.URL.Query().Get("subject")

	questions, err := h.questionService.Ask(r.Context(), n, use, subject)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}

// Add inserts a new question. The payload must carry the full question
// schema; success is an empty 200.
func (h *QuestionHandler) Add(w http.ResponseWriter, r *http.Request) {
	var q model.Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.questionService.Add(r.Context(), &q); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
}
