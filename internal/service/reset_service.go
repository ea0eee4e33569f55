package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"civicposts/internal/config"
	"civicposts/internal/mailer"
	"civicposts/internal/models"
	"civicposts/internal/repository"
)

type ResetStatus struct {
	HasActiveRequest bool          `json:"hasActiveRequest"`
	ExpiresAt        time.Time     `json:"expiresAt,omitempty"`
	TimeRemaining    time.Duration `json:"-"`
}

type ResetService interface {
	Request(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
	Confirm(ctx context.Context, email, code, newPassword, confirmPassword string) error
	Status(ctx context.Context, email string) (*ResetStatus, error)
}

type resetService struct {
	resetRepo repository.ResetRepository
	userRepo  repository.UserRepository
	mailer    mailer.Mailer
	cfg       *config.Config
}

func NewResetService(resetRepo repository.ResetRepository, userRepo repository.UserRepository, mail mailer.Mailer, cfg *config.Config) ResetService {
	return &resetService{
		resetRepo: resetRepo,
		userRepo:  userRepo,
		mailer:    mail,
		cfg:       cfg,
	}
}

// generateCode выдаёт 6 независимых случайных цифр из криптографического
// источника.
func generateCode() (string, error) {
	code := make([]byte, 6)
	for i := range code {
		digit, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("ошибка генерации кода: %w", err)
		}
		code[i] = byte('0' + digit.Int64())
	}
	return string(code), nil
}

func (s *resetService) Request(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	// старые коды удаляются вместе со вставкой нового: активен максимум один
	expiresAt := time.Now().Add(s.cfg.ResetCodeTTL)
	reset, err := s.resetRepo.Replace(ctx, user.UserID, code, expiresAt)
	if err != nil {
		return err
	}

	if err := s.mailer.SendResetCode(email, reset.Code); err != nil {
		return fmt.Errorf("%w: %v", models.ErrDispatchFailed, err)
	}

	return nil
}

func (s *resetService) validate(ctx context.Context, email, code string) (*models.PasswordResetCode, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	reset, err := s.resetRepo.GetUnused(ctx, user.UserID, code)
	if err != nil {
		return nil, err
	}

	if time.Now().After(reset.ExpiresAt) {
		return nil, models.ErrExpiredCode
	}

	return reset, nil
}

// Verify проверяет код, но не расходует его: до подтверждения или истечения
// срока один и тот же код можно проверять сколько угодно раз.
func (s *resetService) Verify(ctx context.Context, email, code string) error {
	_, err := s.validate(ctx, email, code)
	return err
}

func (s *resetService) Confirm(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return models.ErrPasswordMismatch
	}

	reset, err := s.validate(ctx, email, code)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, reset.UserID, newPassword); err != nil {
		return err
	}

	return s.resetRepo.MarkUsed(ctx, reset.CodeID)
}

func (s *resetService) Status(ctx context.Context, email string) (*ResetStatus, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	reset, err := s.resetRepo.GetActive(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &ResetStatus{HasActiveRequest: false}, nil
		}
		return nil, err
	}

	remaining := time.Until(reset.ExpiresAt)
	if remaining <= 0 {
		return &ResetStatus{HasActiveRequest: false}, nil
	}

	return &ResetStatus{
		HasActiveRequest: true,
		ExpiresAt:        reset.ExpiresAt,
		TimeRemaining:    remaining,
	}, nil
}
