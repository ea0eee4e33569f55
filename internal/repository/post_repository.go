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

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

// incrementRubric и decrementRubric выполняются внутри транзакции поста,
// чтобы счётчик не разошёлся с фактическим числом постов.
func incrementRubric(ctx context.Context, tx *sqlx.Tx, name string) error {
	_, err := tx.ExecContext(ctx, `UPDATE rubrics SET counter = counter + 1 WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("ошибка при увеличении счётчика рубрики: %w", err)
	}
	return nil
}

func decrementRubric(ctx context.Context, tx *sqlx.Tx, name string) error {
	_, err := tx.ExecContext(ctx, `UPDATE rubrics SET counter = GREATEST(counter - 1, 0) WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("ошибка при уменьшении счётчика рубрики: %w", err)
	}
	return nil
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	if post.Status == "" {
		post.Status = models.StatusPublished
	}

	// publishedAt выставляется единожды, при первой публикации
	if post.Status == models.StatusPublished {
		post.PublishedAt = sql.NullTime{Time: now, Valid: true}
	}

	query := `
		INSERT INTO posts
		(author_id, rubric_name, title, description, address, latitude, longitude, status, created_at, updated_at, published_at)
		VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING post_id
	`

	err = tx.GetContext(ctx, &post.PostID, query,
		post.AuthorID,
		post.RubricName,
		post.Title,
		post.Description,
		post.Address,
		post.Latitude,
		post.Longitude,
		post.Status,
		post.CreatedAt,
		post.UpdatedAt,
		post.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	if post.Status == models.StatusPublished && post.RubricName.Valid {
		if err := incrementRubric(ctx, tx, post.RubricName.String); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: пост %d", models.ErrNotFound, postID)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE 1=1`
	var args []interface{}

	if filter.Rubric != "" {
		args = append(args, filter.Rubric)
		query += fmt.Sprintf(" AND rubric_name = $%d", len(args))
	}

	if filter.Address != "" {
		args = append(args, filter.Address)
		query += fmt.Sprintf(" AND address ILIKE '%%' || $%d || '%%'", len(args))
	}

	if filter.AuthorID != 0 {
		args = append(args, filter.AuthorID)
		query += fmt.Sprintf(" AND author_id = $%d", len(args))
	}

	// аноним видит только опубликованное, автор — ещё и свои посты
	if filter.ViewerID == 0 {
		query += " AND status = 'published'"
	} else {
		args = append(args, filter.ViewerID)
		query += fmt.Sprintf(" AND (status = 'published' OR author_id = $%d)", len(args))
	}

	query += " ORDER BY created_at DESC, published_at DESC NULLS LAST"

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

// Update записывает новое состояние поста и корректирует счётчики рубрик
// в одной транзакции: старая рубрика читается с блокировкой строки,
// чтобы конкурентные изменения не потеряли инкремент или декремент.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var old struct {
		RubricName  sql.NullString `db:"rubric_name"`
		Status      string         `db:"status"`
		PublishedAt sql.NullTime   `db:"published_at"`
	}

	err = tx.GetContext(ctx, &old,
		`SELECT rubric_name, status, published_at FROM posts WHERE post_id = $1 FOR UPDATE`,
		post.PostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: пост %d", models.ErrNotFound, post.PostID)
		}
		return fmt.Errorf("ошибка при чтении поста: %w", err)
	}

	post.UpdatedAt = time.Now()

	// publishedAt выставляется один раз и больше не меняется
	post.PublishedAt = old.PublishedAt
	if post.Status == models.StatusPublished && !old.PublishedAt.Valid {
		post.PublishedAt = sql.NullTime{Time: post.UpdatedAt, Valid: true}
	}

	query := `
		UPDATE posts SET
			rubric_name = $1,
			title = $2,
			description = $3,
			address = $4,
			latitude = $5,
			longitude = $6,
			status = $7,
			updated_at = $8,
			published_at = $9,
			is_deleted = $10
		WHERE post_id = $11
	`

	_, err = tx.ExecContext(ctx, query,
		post.RubricName,
		post.Title,
		post.Description,
		post.Address,
		post.Latitude,
		post.Longitude,
		post.Status,
		post.UpdatedAt,
		post.PublishedAt,
		post.IsDeleted,
		post.PostID,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	// счётчик учитывает только опубликованные посты рубрики
	oldCounted := old.Status == models.StatusPublished && old.RubricName.Valid
	newCounted := post.Status == models.StatusPublished && post.RubricName.Valid
	sameRubric := old.RubricName == post.RubricName

	if oldCounted && (!newCounted || !sameRubric) {
		if err := decrementRubric(ctx, tx, old.RubricName.String); err != nil {
			return err
		}
	}
	if newCounted && (!oldCounted || !sameRubric) {
		if err := incrementRubric(ctx, tx, post.RubricName.String); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

// Delete удаляет пост, его фотографии и уменьшает счётчик рубрики одной
// транзакцией. Возвращает объекты хранилища удалённых фотографий, чтобы
// вызывающий код убрал и сами файлы.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var old struct {
		RubricName sql.NullString `db:"rubric_name"`
		Status     string         `db:"status"`
	}
	err = tx.GetContext(ctx, &old,
		`SELECT rubric_name, status FROM posts WHERE post_id = $1 FOR UPDATE`, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: пост %d", models.ErrNotFound, postID)
		}
		return nil, fmt.Errorf("ошибка при чтении поста: %w", err)
	}

	var objectNames []string
	err = tx.SelectContext(ctx, &objectNames,
		`SELECT object_name FROM post_photos WHERE post_id = $1`, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении фотографий поста: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM post_photos WHERE post_id = $1`, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при удалении фотографий поста: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	if old.Status == models.StatusPublished && old.RubricName.Valid {
		if err := decrementRubric(ctx, tx, old.RubricName.String); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return objectNames, nil
}
