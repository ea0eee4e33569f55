package test

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"civicposts/internal/config"
	handlers "civicposts/internal/handler"
	"civicposts/internal/models"
	"civicposts/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, string, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) Logout(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID int64, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID, viewerID int64) (*models.Post, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context, viewerID int64, rubric, address string) ([]models.Post, error) {
	args := m.Called(ctx, viewerID, rubric, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) ListUserPosts(ctx context.Context, authorID, viewerID int64, rubric, address string) ([]models.Post, error) {
	args := m.Called(ctx, authorID, viewerID, rubric, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, postID, callerID int64, req service.UpdatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, postID, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID, callerID int64) error {
	args := m.Called(ctx, postID, callerID)
	return args.Error(0)
}

func (m *MockPostService) AttachPhotos(ctx context.Context, postID, callerID int64, files []service.PhotoUpload, captions []string) ([]models.PostPhoto, error) {
	args := m.Called(ctx, postID, callerID, files, captions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostPhoto), args.Error(1)
}

func (m *MockPostService) DetachPhoto(ctx context.Context, photoID, callerID int64) error {
	args := m.Called(ctx, photoID, callerID)
	return args.Error(0)
}

type MockRubricService struct {
	mock.Mock
}

func (m *MockRubricService) CreateRubric(ctx context.Context, name string) (*models.Rubric, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rubric), args.Error(1)
}

func (m *MockRubricService) GetRubric(ctx context.Context, name string) (*models.Rubric, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rubric), args.Error(1)
}

func (m *MockRubricService) ListRubrics(ctx context.Context) ([]models.Rubric, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rubric), args.Error(1)
}

func (m *MockRubricService) RenameRubric(ctx context.Context, oldName, newName string) (*models.Rubric, error) {
	args := m.Called(ctx, oldName, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rubric), args.Error(1)
}

func (m *MockRubricService) DeleteRubric(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockRubricService) IncrementCounter(ctx context.Context, name string) (*models.Rubric, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rubric), args.Error(1)
}

func (m *MockRubricService) DecrementCounter(ctx context.Context, name string) (*models.Rubric, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rubric), args.Error(1)
}

func (m *MockRubricService) TopRubrics(ctx context.Context) ([]models.Rubric, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rubric), args.Error(1)
}

type MockResetService struct {
	mock.Mock
}

func (m *MockResetService) Request(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockResetService) Verify(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *MockResetService) Confirm(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	args := m.Called(ctx, email, code, newPassword, confirmPassword)
	return args.Error(0)
}

func (m *MockResetService) Status(ctx context.Context, email string) (*service.ResetStatus, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResetStatus), args.Error(1)
}

type MockAddressService struct {
	mock.Mock
}

func (m *MockAddressService) Reverse(ctx context.Context, lat, lon float64) (*service.AddressInfo, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AddressInfo), args.Error(1)
}

func (m *MockAddressService) Search(ctx context.Context, query string, limit int) ([]service.SearchResult, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SearchResult), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID int64, newPassword string) error {
	args := m.Called(ctx, userID, newPassword)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestHandlers() (*handlers.Handlers, *MockAuthService, *MockPostService, *MockRubricService, *MockResetService, *MockAddressService) {
	auth := new(MockAuthService)
	posts := new(MockPostService)
	rubrics := new(MockRubricService)
	reset := new(MockResetService)
	address := new(MockAddressService)

	h := &handlers.Handlers{
		AuthService:    auth,
		PostService:    posts,
		RubricService:  rubrics,
		ResetService:   reset,
		AddressService: address,
		UserRepo:       new(MockUserRepository),
		Cfg: &config.Config{
			JWTSecretKey:  "test-secret-key",
			ServerPort:    8080,
			MaxUploadSize: 5 * 1024 * 1024,
		},
		Validate: validator.New(),
	}

	return h, auth, posts, rubrics, reset, address
}
