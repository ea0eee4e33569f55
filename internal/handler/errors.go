package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"civicposts/internal/models"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteAppError переводит ошибку сервиса в HTTP-статус.
func WriteAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrPasswordMismatch),
		errors.Is(err, models.ErrInvalidCode),
		errors.Is(err, models.ErrExpiredCode),
		errors.Is(err, models.ErrUsedCode):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrUnauthorized):
		WriteError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrForbidden):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrConflict):
		WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrGateway):
		WriteError(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, models.ErrDispatchFailed):
		WriteError(w, err.Error(), http.StatusInternalServerError)
	default:
		log.Printf("Внутренняя ошибка: %v", err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
