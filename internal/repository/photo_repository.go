package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"civicposts/internal/models"
)

type PhotoRepositoryImpl struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) *PhotoRepositoryImpl {
	return &PhotoRepositoryImpl{db: db}
}

// CreateBatch сохраняет пакет фотографий одной транзакцией: либо видны все
// строки пакета, либо ни одной.
func (r *PhotoRepositoryImpl) CreateBatch(ctx context.Context, postID int64, photos []models.PostPhoto) ([]models.PostPhoto, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO post_photos (post_id, object_name, photo_url, photo_order, caption, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING photo_id
	`

	now := time.Now()
	saved := make([]models.PostPhoto, 0, len(photos))

	for _, photo := range photos {
		photo.PostID = postID
		photo.UploadedAt = now

		err = tx.GetContext(ctx, &photo.PhotoID, query,
			photo.PostID,
			photo.ObjectName,
			photo.PhotoURL,
			photo.Order,
			photo.Caption,
			photo.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сохранении фотографии: %w", err)
		}

		saved = append(saved, photo)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return saved, nil
}

func (r *PhotoRepositoryImpl) GetByID(ctx context.Context, photoID int64) (*models.PostPhoto, error) {
	query := `SELECT * FROM post_photos WHERE photo_id = $1`

	var photo models.PostPhoto
	err := r.db.GetContext(ctx, &photo, query, photoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: фотография %d", models.ErrNotFound, photoID)
		}
		return nil, fmt.Errorf("ошибка при получении фотографии: %w", err)
	}

	return &photo, nil
}

func (r *PhotoRepositoryImpl) GetByPostID(ctx context.Context, postID int64) ([]models.PostPhoto, error) {
	// порядок показа: (order, id) по возрастанию
	query := `SELECT * FROM post_photos WHERE post_id = $1 ORDER BY photo_order, photo_id`

	var photos []models.PostPhoto
	err := r.db.SelectContext(ctx, &photos, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении фотографий: %w", err)
	}

	return photos, nil
}

func (r *PhotoRepositoryImpl) Delete(ctx context.Context, photoID int64) error {
	query := `DELETE FROM post_photos WHERE photo_id = $1`

	result, err := r.db.ExecContext(ctx, query, photoID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении фотографии: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: фотография %d", models.ErrNotFound, photoID)
	}

	return nil
}
