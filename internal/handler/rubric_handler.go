package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"civicposts/internal/models"
)

type CreateRubricRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type RenameRubricRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

func (h *Handlers) GetRubrics(w http.ResponseWriter, r *http.Request) {
	rubrics, err := h.RubricService.ListRubrics(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if rubrics == nil {
		rubrics = []models.Rubric{}
	}

	WriteSuccess(w, rubrics, http.StatusOK)
}

func (h *Handlers) CreateRubric(w http.ResponseWriter, r *http.Request) {
	if currentUserID(r) == 0 {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req CreateRubricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	rubric, err := h.RubricService.CreateRubric(r.Context(), req.Name)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, rubric, http.StatusCreated)
}

func (h *Handlers) GetRubric(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	rubric, err := h.RubricService.GetRubric(r.Context(), name)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, rubric, http.StatusOK)
}

func (h *Handlers) RenameRubric(w http.ResponseWriter, r *http.Request) {
	if currentUserID(r) == 0 {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	name := mux.Vars(r)["name"]

	var req RenameRubricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	rubric, err := h.RubricService.RenameRubric(r.Context(), name, req.Name)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, rubric, http.StatusOK)
}

func (h *Handlers) DeleteRubric(w http.ResponseWriter, r *http.Request) {
	if currentUserID(r) == 0 {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	name := mux.Vars(r)["name"]

	if err := h.RubricService.DeleteRubric(r.Context(), name); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Рубрика удалена"}, http.StatusOK)
}

func (h *Handlers) IncrementRubric(w http.ResponseWriter, r *http.Request) {
	if currentUserID(r) == 0 {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	name := mux.Vars(r)["name"]

	rubric, err := h.RubricService.IncrementCounter(r.Context(), name)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"status":  "success",
		"name":    rubric.Name,
		"counter": rubric.Counter,
	}, http.StatusOK)
}

func (h *Handlers) DecrementRubric(w http.ResponseWriter, r *http.Request) {
	if currentUserID(r) == 0 {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	name := mux.Vars(r)["name"]

	rubric, err := h.RubricService.DecrementCounter(r.Context(), name)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"status":  "success",
		"name":    rubric.Name,
		"counter": rubric.Counter,
	}, http.StatusOK)
}

func (h *Handlers) TopRubrics(w http.ResponseWriter, r *http.Request) {
	rubrics, err := h.RubricService.TopRubrics(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if rubrics == nil {
		rubrics = []models.Rubric{}
	}

	WriteSuccess(w, rubrics, http.StatusOK)
}
