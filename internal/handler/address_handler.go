package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type AddressReverseRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

func (h *Handlers) AddressReverse(w http.ResponseWriter, r *http.Request) {
	var req AddressReverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Координаты вне допустимого диапазона", http.StatusBadRequest)
		return
	}

	info, err := h.AddressService.Reverse(r.Context(), *req.Lat, *req.Lon)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, info, http.StatusOK)
}

func (h *Handlers) AddressSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, "Отсутствует параметр q", http.StatusBadRequest)
		return
	}

	limit := 5
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 || parsed > 10 {
			WriteError(w, "Параметр limit должен быть числом от 1 до 10", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	results, err := h.AddressService.Search(r.Context(), query, limit)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, results, http.StatusOK)
}
