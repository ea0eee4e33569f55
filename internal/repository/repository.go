package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"civicposts/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, newPassword string) error
	UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string, expiryTime time.Time) error
	ClearRefreshToken(ctx context.Context, userID int64) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type RubricRepository interface {
	Create(ctx context.Context, name string) (*models.Rubric, error)
	GetByName(ctx context.Context, name string) (*models.Rubric, error)
	GetAll(ctx context.Context) ([]models.Rubric, error)
	Rename(ctx context.Context, oldName, newName string) (*models.Rubric, error)
	Delete(ctx context.Context, name string) error
	Increment(ctx context.Context, name string) (*models.Rubric, error)
	Decrement(ctx context.Context, name string) (*models.Rubric, error)
	Top(ctx context.Context, limit int) ([]models.Rubric, error)
}

// PostFilter describes list constraints. ViewerID == 0 means an anonymous
// viewer, AuthorID == 0 means posts of any author.
type PostFilter struct {
	Rubric   string
	Address  string
	ViewerID int64
	AuthorID int64
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID int64) ([]string, error)
}

type PhotoRepository interface {
	CreateBatch(ctx context.Context, postID int64, photos []models.PostPhoto) ([]models.PostPhoto, error)
	GetByID(ctx context.Context, photoID int64) (*models.PostPhoto, error)
	GetByPostID(ctx context.Context, postID int64) ([]models.PostPhoto, error)
	Delete(ctx context.Context, photoID int64) error
}

type ResetRepository interface {
	Replace(ctx context.Context, userID int64, code string, expiresAt time.Time) (*models.PasswordResetCode, error)
	GetUnused(ctx context.Context, userID int64, code string) (*models.PasswordResetCode, error)
	GetActive(ctx context.Context, userID int64) (*models.PasswordResetCode, error)
	MarkUsed(ctx context.Context, codeID int64) error
}

type Repository struct {
	User   UserRepository
	Rubric RubricRepository
	Post   PostRepository
	Photo  PhotoRepository
	Reset  ResetRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:   NewUserRepository(db),
		Rubric: NewRubricRepository(db),
		Post:   NewPostRepository(db),
		Photo:  NewPhotoRepository(db),
		Reset:  NewResetRepository(db),
	}
}
