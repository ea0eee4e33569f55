package models

import (
	"database/sql"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type User struct {
	UserID                 int64          `json:"userId" db:"user_id"`
	Username               string         `json:"username" db:"username"`
	Email                  string         `json:"email" db:"email"`
	PasswordHash           string         `json:"-" db:"password_hash"`
	FirstName              string         `json:"firstName" db:"first_name"`
	LastName               string         `json:"lastName" db:"last_name"`
	Patronymic             string         `json:"patronymic" db:"patronymic"`
	PhoneNumber            string         `json:"phoneNumber" db:"phone_number"`
	City                   string         `json:"city" db:"city"`
	Street                 string         `json:"street" db:"street"`
	House                  string         `json:"house" db:"house"`
	Apartment              string         `json:"apartment" db:"apartment"`
	RefreshToken           sql.NullString `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime sql.NullTime   `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time      `json:"createdAt" db:"created_at"`
}

type Rubric struct {
	Name    string `json:"name" db:"name"`
	Counter int    `json:"counter" db:"counter"`
}

type Post struct {
	PostID      int64           `json:"postId" db:"post_id"`
	AuthorID    int64           `json:"authorId" db:"author_id"`
	RubricName  sql.NullString  `json:"rubric" db:"rubric_name"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Address     string          `json:"address" db:"address"`
	Latitude    sql.NullFloat64 `json:"latitude" db:"latitude"`
	Longitude   sql.NullFloat64 `json:"longitude" db:"longitude"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
	PublishedAt sql.NullTime    `json:"publishedAt" db:"published_at"`
	IsDeleted   bool            `json:"isDeleted" db:"is_deleted"`
	Photos      []PostPhoto     `json:"photos" db:"-"`
}

type PostPhoto struct {
	PhotoID    int64     `json:"photoId" db:"photo_id"`
	PostID     int64     `json:"postId" db:"post_id"`
	ObjectName string    `json:"-" db:"object_name"`
	PhotoURL   string    `json:"photoUrl" db:"photo_url"`
	Order      int       `json:"order" db:"photo_order"`
	Caption    string    `json:"caption" db:"caption"`
	UploadedAt time.Time `json:"uploadedAt" db:"uploaded_at"`
}

type PasswordResetCode struct {
	CodeID    int64     `json:"codeId" db:"code_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Code      string    `json:"-" db:"code"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	IsUsed    bool      `json:"isUsed" db:"is_used"`
}
