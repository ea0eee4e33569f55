package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"civicposts/internal/config"
	"civicposts/internal/repository"
	"civicposts/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	RubricService  service.RubricService
	ResetService   service.ResetService
	AddressService service.AddressService
	UserRepo       repository.UserRepository
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		PostService:    service.Post,
		RubricService:  service.Rubric,
		ResetService:   service.Reset,
		AddressService: service.Address,
		UserRepo:       repo.User,
		Cfg:            config,
		Validate:       validator.New(),
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(MessageResponse{Message: "CivicPosts API"})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// currentUserID возвращает id пользователя из контекста запроса,
// 0 - анонимный запрос.
func currentUserID(r *http.Request) int64 {
	userID, _ := r.Context().Value("userID").(int64)
	return userID
}
