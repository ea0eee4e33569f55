package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"civicposts/cmd/app"
	"civicposts/internal/config"
	handlers "civicposts/internal/handler"
	"civicposts/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler).Methods("GET")
	router.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", handler.Register).Methods("POST")
	api.HandleFunc("/auth/login", handler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", handler.Logout).Methods("POST")
	api.HandleFunc("/auth/refresh-token", handler.RefreshToken).Methods("POST")
	api.HandleFunc("/auth/change-password", handler.ChangePassword).Methods("POST")

	api.HandleFunc("/auth/password-reset/request", handler.PasswordResetRequest).Methods("POST")
	api.HandleFunc("/auth/password-reset/verify", handler.PasswordResetVerify).Methods("POST")
	api.HandleFunc("/auth/password-reset/confirm", handler.PasswordResetConfirm).Methods("POST")
	api.HandleFunc("/auth/password-reset/status/{email}", handler.PasswordResetStatus).Methods("GET")

	api.HandleFunc("/me", handler.GetCurrentUser).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}", handler.GetUser).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}/posts", handler.GetUserPosts).Methods("GET")

	// /rubrics/top регистрируется до /rubrics/{name}
	api.HandleFunc("/rubrics/top", handler.TopRubrics).Methods("GET")
	api.HandleFunc("/rubrics", handler.GetRubrics).Methods("GET")
	api.HandleFunc("/rubrics", handler.CreateRubric).Methods("POST")
	api.HandleFunc("/rubrics/{name}", handler.GetRubric).Methods("GET")
	api.HandleFunc("/rubrics/{name}", handler.RenameRubric).Methods("PUT", "PATCH")
	api.HandleFunc("/rubrics/{name}", handler.DeleteRubric).Methods("DELETE")
	api.HandleFunc("/rubrics/{name}/increment", handler.IncrementRubric).Methods("POST")
	api.HandleFunc("/rubrics/{name}/decrement", handler.DecrementRubric).Methods("POST")

	api.HandleFunc("/posts", handler.GetPosts).Methods("GET")
	api.HandleFunc("/posts", handler.CreatePost).Methods("POST")
	api.HandleFunc("/posts/photos/upload", handler.UploadPhotos).Methods("POST")
	api.HandleFunc("/posts/photos/{id:[0-9]+}", handler.DeletePhoto).Methods("DELETE")
	api.HandleFunc("/posts/{id:[0-9]+}", handler.GetPost).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", handler.UpdatePost).Methods("PUT", "PATCH")
	api.HandleFunc("/posts/{id:[0-9]+}", handler.DeletePost).Methods("DELETE")

	api.HandleFunc("/address/reverse", handler.AddressReverse).Methods("POST")
	api.HandleFunc("/address/search", handler.AddressSearch).Methods("GET")

	handlerChain := middleware.Chain(
		router,
		middleware.AuthMiddleware(cfg),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
