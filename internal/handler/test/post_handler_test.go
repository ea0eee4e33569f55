package test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"civicposts/internal/models"
	"civicposts/internal/service"
)

func TestGetPostsHandler(t *testing.T) {
	t.Run("Анонимный запрос передаёт нулевой viewerID", func(t *testing.T) {
		h, _, posts, _, _, _ := newTestHandlers()

		posts.On("ListPosts", mock.Anything, int64(0), "Дороги", "").
			Return([]models.Post{{PostID: 10, Status: models.StatusPublished}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/posts?rubric=Дороги", nil)
		rr := httptest.NewRecorder()

		h.GetPosts(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		posts.AssertExpectations(t)
	})

	t.Run("Авторизованный запрос передаёт id пользователя", func(t *testing.T) {
		h, _, posts, _, _, _ := newTestHandlers()

		posts.On("ListPosts", mock.Anything, int64(5), "", "").
			Return([]models.Post{}, nil)

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/posts", nil), 5)
		rr := httptest.NewRecorder()

		h.GetPosts(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		posts.AssertExpectations(t)
	})
}

func TestGetPostHandler(t *testing.T) {
	t.Run("Пост с фотографиями и nullable-полями", func(t *testing.T) {
		h, _, posts, _, _, _ := newTestHandlers()

		publishedAt := time.Now()
		post := &models.Post{
			PostID:      10,
			AuthorID:    1,
			RubricName:  sql.NullString{String: "Дороги", Valid: true},
			Title:       "Яма",
			Status:      models.StatusPublished,
			PublishedAt: sql.NullTime{Time: publishedAt, Valid: true},
			Photos:      []models.PostPhoto{{PhotoID: 100, Order: 0}},
		}
		posts.On("GetPost", mock.Anything, int64(10), int64(0)).Return(post, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/posts/10", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "10"})
		rr := httptest.NewRecorder()

		h.GetPost(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "Дороги", response["rubric"])
		assert.NotNil(t, response["publishedAt"])
		assert.Len(t, response["photos"], 1)
	})

	t.Run("Чужой черновик недоступен", func(t *testing.T) {
		h, _, posts, _, _, _ := newTestHandlers()

		posts.On("GetPost", mock.Anything, int64(11), int64(2)).
			Return(nil, models.ErrForbidden)

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/posts/11", nil), 2)
		req = mux.SetURLVars(req, map[string]string{"id": "11"})
		rr := httptest.NewRecorder()

		h.GetPost(rr, req)

		assertJSONError(t, rr, http.StatusForbidden)
	})

	t.Run("Неверный идентификатор", func(t *testing.T) {
		h, _, _, _, _, _ := newTestHandlers()

		req := httptest.NewRequest(http.MethodGet, "/api/posts/abc", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "abc"})
		rr := httptest.NewRecorder()

		h.GetPost(rr, req)

		assertJSONError(t, rr, http.StatusBadRequest)
	})
}

func TestCreatePostHandler(t *testing.T) {
	t.Run("Успешное создание", func(t *testing.T) {
		h, _, posts, _, _, _ := newTestHandlers()

		posts.On("CreatePost", mock.Anything, int64(1), mock.AnythingOfType("service.CreatePostRequest")).
			Return(&models.Post{PostID: 10, AuthorID: 1, Title: "Яма", Status: models.StatusPublished}, nil)

		body, _ := json.Marshal(map[string]interface{}{
			"title":  "Яма",
			"rubric": "Дороги",
		})
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBuffer(body)), 1)
		rr := httptest.NewRecorder()

		h.CreatePost(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Без авторизации", func(t *testing.T) {
		h, _, posts, _, _, _ := newTestHandlers()

		body, _ := json.Marshal(map[string]interface{}{"title": "Яма"})
		req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()

		h.CreatePost(rr, req)

		assertJSONError(t, rr, http.StatusUnauthorized)
		posts.AssertNotCalled(t, "CreatePost")
	})

	t.Run("Координаты вне диапазона режутся валидатором", func(t *testing.T) {
		h, _, posts, _, _, _ := newTestHandlers()

		body, _ := json.Marshal(map[string]interface{}{
			"title":    "Яма",
			"latitude": 95.0,
		})
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBuffer(body)), 1)
		rr := httptest.NewRecorder()

		h.CreatePost(rr, req)

		assertJSONError(t, rr, http.StatusBadRequest)
		posts.AssertNotCalled(t, "CreatePost")
	})

	t.Run("Неизвестный статус", func(t *testing.T) {
		h, _, _, _, _, _ := newTestHandlers()

		body, _ := json.Marshal(map[string]interface{}{
			"title":  "Яма",
			"status": "pending",
		})
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBuffer(body)), 1)
		rr := httptest.NewRecorder()

		h.CreatePost(rr, req)

		assertJSONError(t, rr, http.StatusBadRequest)
	})
}

func TestUpdatePostHandler(t *testing.T) {
	t.Run("Частичное обновление статуса", func(t *testing.T) {
		h, _, posts, _, _, _ := newTestHandlers()

		status := models.StatusPublished
		posts.On("UpdatePost", mock.Anything, int64(10), int64(1), service.UpdatePostRequest{Status: &status}).
			Return(&models.Post{PostID: 10, AuthorID: 1, Title: "Яма", Status: status}, nil)

		body, _ := json.Marshal(map[string]interface{}{"status": "published"})
		req := withUser(httptest.NewRequest(http.MethodPatch, "/api/posts/10", bytes.NewBuffer(body)), 1)
		req = mux.SetURLVars(req, map[string]string{"id": "10"})
		rr := httptest.NewRecorder()

		h.UpdatePost(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Чужой пост", func(t *testing.T) {
		h, _, posts, _, _, _ := newTestHandlers()

		posts.On("UpdatePost", mock.Anything, int64(10), int64(2), mock.AnythingOfType("service.UpdatePostRequest")).
			Return(nil, models.ErrForbidden)

		body, _ := json.Marshal(map[string]interface{}{"title": "Новый"})
		req := withUser(httptest.NewRequest(http.MethodPatch, "/api/posts/10", bytes.NewBuffer(body)), 2)
		req = mux.SetURLVars(req, map[string]string{"id": "10"})
		rr := httptest.NewRecorder()

		h.UpdatePost(rr, req)

		assertJSONError(t, rr, http.StatusForbidden)
	})
}

func TestDeletePostHandler(t *testing.T) {
	t.Run("Успешное удаление", func(t *testing.T) {
		h, _, posts, _, _, _ := newTestHandlers()

		posts.On("DeletePost", mock.Anything, int64(10), int64(1)).Return(nil)

		req := withUser(httptest.NewRequest(http.MethodDelete, "/api/posts/10", nil), 1)
		req = mux.SetURLVars(req, map[string]string{"id": "10"})
		rr := httptest.NewRecorder()

		h.DeletePost(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		posts.AssertExpectations(t)
	})

	t.Run("Пост не найден", func(t *testing.T) {
		h, _, posts, _, _, _ := newTestHandlers()

		posts.On("DeletePost", mock.Anything, int64(999), int64(1)).
			Return(models.ErrNotFound)

		req := withUser(httptest.NewRequest(http.MethodDelete, "/api/posts/999", nil), 1)
		req = mux.SetURLVars(req, map[string]string{"id": "999"})
		rr := httptest.NewRecorder()

		h.DeletePost(rr, req)

		assertJSONError(t, rr, http.StatusNotFound)
	})
}
