package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type ResetRequestBody struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetVerifyBody struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type ResetConfirmBody struct {
	Email           string `json:"email" validate:"required,email"`
	Code            string `json:"code" validate:"required,len=6,numeric"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type ResetStatusResponse struct {
	HasActiveRequest bool   `json:"hasActiveRequest"`
	ExpiresAt        string `json:"expiresAt,omitempty"`
	TimeRemaining    string `json:"timeRemaining,omitempty"`
}

func (h *Handlers) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req ResetRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	if err := h.ResetService.Request(r.Context(), req.Email); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Код подтверждения отправлен на ваш email"}, http.StatusOK)
}

func (h *Handlers) PasswordResetVerify(w http.ResponseWriter, r *http.Request) {
	var req ResetVerifyBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	if err := h.ResetService.Verify(r.Context(), req.Email, req.Code); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message":  "Код подтвержден",
		"verified": true,
	}, http.StatusOK)
}

func (h *Handlers) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req ResetConfirmBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	err := h.ResetService.Confirm(r.Context(), req.Email, req.Code, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{
		Message: "Пароль успешно изменен. Теперь вы можете войти с новым паролем.",
	}, http.StatusOK)
}

func (h *Handlers) PasswordResetStatus(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	status, err := h.ResetService.Status(r.Context(), email)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	resp := ResetStatusResponse{HasActiveRequest: status.HasActiveRequest}
	if status.HasActiveRequest {
		resp.ExpiresAt = status.ExpiresAt.Format("2006-01-02T15:04:05Z07:00")
		resp.TimeRemaining = status.TimeRemaining.String()
	}

	WriteSuccess(w, resp, http.StatusOK)
}
