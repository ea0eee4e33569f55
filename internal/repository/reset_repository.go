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

type resetRepository struct {
	db *sqlx.DB
}

func NewResetRepository(db *sqlx.DB) ResetRepository {
	return &resetRepository{db: db}
}

// Replace удаляет все прежние коды пользователя и вставляет новый одной
// транзакцией: активным может быть не более одного кода.
func (r *resetRepository) Replace(ctx context.Context, userID int64, code string, expiresAt time.Time) (*models.PasswordResetCode, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM password_reset_codes WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при удалении старых кодов: %w", err)
	}

	reset := models.PasswordResetCode{
		UserID:    userID,
		Code:      code,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}

	query := `
		INSERT INTO password_reset_codes (user_id, code, created_at, expires_at, is_used)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING code_id
	`

	err = tx.GetContext(ctx, &reset.CodeID, query, reset.UserID, reset.Code, reset.CreatedAt, reset.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка при сохранении кода: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return &reset, nil
}

func (r *resetRepository) GetUnused(ctx context.Context, userID int64, code string) (*models.PasswordResetCode, error) {
	query := `
		SELECT * FROM password_reset_codes
		WHERE user_id = $1 AND code = $2 AND is_used = FALSE
	`

	var reset models.PasswordResetCode
	err := r.db.GetContext(ctx, &reset, query, userID, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrInvalidCode
		}
		return nil, fmt.Errorf("ошибка при получении кода: %w", err)
	}

	return &reset, nil
}

func (r *resetRepository) GetActive(ctx context.Context, userID int64) (*models.PasswordResetCode, error) {
	query := `
		SELECT * FROM password_reset_codes
		WHERE user_id = $1 AND is_used = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`

	var reset models.PasswordResetCode
	err := r.db.GetContext(ctx, &reset, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: активный код отсутствует", models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении кода: %w", err)
	}

	return &reset, nil
}

func (r *resetRepository) MarkUsed(ctx context.Context, codeID int64) error {
	query := `UPDATE password_reset_codes SET is_used = TRUE WHERE code_id = $1 AND is_used = FALSE`

	result, err := r.db.ExecContext(ctx, query, codeID)
	if err != nil {
		return fmt.Errorf("ошибка при пометке кода использованным: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrUsedCode
	}

	return nil
}
