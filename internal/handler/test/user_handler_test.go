package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"civicposts/internal/config"
	handlers "civicposts/internal/handler"
	"civicposts/internal/models"
)

func newUserTestHandlers() (*handlers.Handlers, *MockUserRepository) {
	users := new(MockUserRepository)
	h := &handlers.Handlers{
		UserRepo: users,
		Cfg:      &config.Config{JWTSecretKey: "test-secret-key"},
		Validate: validator.New(),
	}
	return h, users
}

func TestGetCurrentUserHandler(t *testing.T) {
	t.Run("Профиль текущего пользователя", func(t *testing.T) {
		h, users := newUserTestHandlers()

		users.On("GetUserByID", mock.Anything, int64(1)).
			Return(&models.User{
				UserID:   1,
				Username: "ivan",
				Email:    "ivan@example.com",
				City:     "Самара",
			}, nil)

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/me", nil), 1)
		rr := httptest.NewRecorder()

		h.GetCurrentUser(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, float64(1), response["userId"])
		assert.Equal(t, "ivan@example.com", response["email"])
	})

	t.Run("Без авторизации", func(t *testing.T) {
		h, users := newUserTestHandlers()

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		rr := httptest.NewRecorder()

		h.GetCurrentUser(rr, req)

		assertJSONError(t, rr, http.StatusUnauthorized)
		users.AssertNotCalled(t, "GetUserByID")
	})
}

func TestGetUserHandler(t *testing.T) {
	t.Run("Пользователь по идентификатору", func(t *testing.T) {
		h, users := newUserTestHandlers()

		users.On("GetUserByID", mock.Anything, int64(2)).
			Return(&models.User{UserID: 2, Username: "petr", Email: "petr@example.com"}, nil)

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/users/2", nil), 1)
		req = mux.SetURLVars(req, map[string]string{"id": "2"})
		rr := httptest.NewRecorder()

		h.GetUser(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "petr", response["username"])
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		h, users := newUserTestHandlers()

		users.On("GetUserByID", mock.Anything, int64(999)).
			Return(nil, models.ErrNotFound)

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/users/999", nil), 1)
		req = mux.SetURLVars(req, map[string]string{"id": "999"})
		rr := httptest.NewRecorder()

		h.GetUser(rr, req)

		assertJSONError(t, rr, http.StatusNotFound)
	})

	t.Run("Требуется авторизация", func(t *testing.T) {
		h, users := newUserTestHandlers()

		req := httptest.NewRequest(http.MethodGet, "/api/users/2", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "2"})
		rr := httptest.NewRecorder()

		h.GetUser(rr, req)

		assertJSONError(t, rr, http.StatusUnauthorized)
		users.AssertNotCalled(t, "GetUserByID")
	})
}
