package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"civicposts/internal/models"
	"civicposts/internal/service"
)

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Rubric      string   `json:"rubric"`
	Status      string   `json:"status" validate:"omitempty,oneof=draft published archived"`
}

type UpdatePostRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Rubric      *string  `json:"rubric"`
	Status      *string  `json:"status" validate:"omitempty,oneof=draft published archived"`
}

type PostResponse struct {
	PostID      int64              `json:"postId"`
	AuthorID    int64              `json:"authorId"`
	Rubric      *string            `json:"rubric"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Address     string             `json:"address"`
	Latitude    *float64           `json:"latitude"`
	Longitude   *float64           `json:"longitude"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	PublishedAt *time.Time         `json:"publishedAt"`
	Photos      []models.PostPhoto `json:"photos,omitempty"`
}

func toPostResponse(post *models.Post) PostResponse {
	resp := PostResponse{
		PostID:      post.PostID,
		AuthorID:    post.AuthorID,
		Title:       post.Title,
		Description: post.Description,
		Address:     post.Address,
		Status:      post.Status,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
		Photos:      post.Photos,
	}

	if post.RubricName.Valid {
		resp.Rubric = &post.RubricName.String
	}
	if post.Latitude.Valid {
		resp.Latitude = &post.Latitude.Float64
	}
	if post.Longitude.Valid {
		resp.Longitude = &post.Longitude.Float64
	}
	if post.PublishedAt.Valid {
		resp.PublishedAt = &post.PublishedAt.Time
	}

	return resp
}

func toPostResponses(posts []models.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, toPostResponse(&posts[i]))
	}
	return responses
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	viewerID := currentUserID(r)
	rubric := r.URL.Query().Get("rubric")
	address := r.URL.Query().Get("address")

	posts, err := h.PostService.ListPosts(r.Context(), viewerID, rubric, address)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, toPostResponses(posts), http.StatusOK)
}

func (h *Handlers) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	authorID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный идентификатор пользователя", http.StatusBadRequest)
		return
	}

	viewerID := currentUserID(r)
	rubric := r.URL.Query().Get("rubric")
	address := r.URL.Query().Get("address")

	posts, err := h.PostService.ListUserPosts(r.Context(), authorID, viewerID, rubric, address)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, toPostResponses(posts), http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный идентификатор поста", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID, currentUserID(r))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, toPostResponse(post), http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	authorID := currentUserID(r)
	if authorID == 0 {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), authorID, service.CreatePostRequest{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Rubric:      req.Rubric,
		Status:      req.Status,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, toPostResponse(post), http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	callerID := currentUserID(r)
	if callerID == 0 {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный идентификатор поста", http.StatusBadRequest)
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), postID, callerID, service.UpdatePostRequest{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Rubric:      req.Rubric,
		Status:      req.Status,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, toPostResponse(post), http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	callerID := currentUserID(r)
	if callerID == 0 {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный идентификатор поста", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID, callerID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пост успешно удален"}, http.StatusOK)
}
