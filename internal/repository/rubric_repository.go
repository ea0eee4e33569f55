package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"civicposts/internal/models"
)

type rubricRepository struct {
	db *sqlx.DB
}

func NewRubricRepository(db *sqlx.DB) RubricRepository {
	return &rubricRepository{db: db}
}

func (r *rubricRepository) Create(ctx context.Context, name string) (*models.Rubric, error) {
	query := `INSERT INTO rubrics (name, counter) VALUES ($1, 0) RETURNING name, counter`

	var rubric models.Rubric
	err := r.db.GetContext(ctx, &rubric, query, name)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return nil, fmt.Errorf("%w: рубрика %s уже существует", models.ErrConflict, name)
		}
		return nil, fmt.Errorf("ошибка при создании рубрики: %w", err)
	}

	return &rubric, nil
}

func (r *rubricRepository) GetByName(ctx context.Context, name string) (*models.Rubric, error) {
	query := `SELECT name, counter FROM rubrics WHERE name = $1`

	var rubric models.Rubric
	err := r.db.GetContext(ctx, &rubric, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: рубрика %s", models.ErrNotFound, name)
		}
		return nil, fmt.Errorf("ошибка при получении рубрики: %w", err)
	}

	return &rubric, nil
}

func (r *rubricRepository) GetAll(ctx context.Context) ([]models.Rubric, error) {
	query := `SELECT name, counter FROM rubrics ORDER BY name`

	var rubrics []models.Rubric
	err := r.db.SelectContext(ctx, &rubrics, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении рубрик: %w", err)
	}

	return rubrics, nil
}

func (r *rubricRepository) Rename(ctx context.Context, oldName, newName string) (*models.Rubric, error) {
	query := `UPDATE rubrics SET name = $1 WHERE name = $2 RETURNING name, counter`

	var rubric models.Rubric
	err := r.db.GetContext(ctx, &rubric, query, newName, oldName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: рубрика %s", models.ErrNotFound, oldName)
		}
		if strings.Contains(err.Error(), "duplicate key value") {
			return nil, fmt.Errorf("%w: рубрика %s уже существует", models.ErrConflict, newName)
		}
		return nil, fmt.Errorf("ошибка при переименовании рубрики: %w", err)
	}

	return &rubric, nil
}

func (r *rubricRepository) Delete(ctx context.Context, name string) error {
	// rubric_name у ссылающихся постов обнуляется на уровне схемы (ON DELETE SET NULL)
	query := `DELETE FROM rubrics WHERE name = $1`

	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("ошибка при удалении рубрики: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: рубрика %s", models.ErrNotFound, name)
	}

	return nil
}

func (r *rubricRepository) Increment(ctx context.Context, name string) (*models.Rubric, error) {
	query := `UPDATE rubrics SET counter = counter + 1 WHERE name = $1 RETURNING name, counter`

	var rubric models.Rubric
	err := r.db.GetContext(ctx, &rubric, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: рубрика %s", models.ErrNotFound, name)
		}
		return nil, fmt.Errorf("ошибка при увеличении счётчика: %w", err)
	}

	return &rubric, nil
}

func (r *rubricRepository) Decrement(ctx context.Context, name string) (*models.Rubric, error) {
	// счётчик не опускается ниже нуля
	query := `UPDATE rubrics SET counter = GREATEST(counter - 1, 0) WHERE name = $1 RETURNING name, counter`

	var rubric models.Rubric
	err := r.db.GetContext(ctx, &rubric, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: рубрика %s", models.ErrNotFound, name)
		}
		return nil, fmt.Errorf("ошибка при уменьшении счётчика: %w", err)
	}

	return &rubric, nil
}

func (r *rubricRepository) Top(ctx context.Context, limit int) ([]models.Rubric, error) {
	query := `SELECT name, counter FROM rubrics ORDER BY counter DESC, name LIMIT $1`

	var rubrics []models.Rubric
	err := r.db.SelectContext(ctx, &rubrics, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении топа рубрик: %w", err)
	}

	return rubrics, nil
}
