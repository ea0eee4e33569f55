package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"civicposts/internal/models"
	"civicposts/internal/repository"
)

type RubricService interface {
	CreateRubric(ctx context.Context, name string) (*models.Rubric, error)
	GetRubric(ctx context.Context, name string) (*models.Rubric, error)
	ListRubrics(ctx context.Context) ([]models.Rubric, error)
	RenameRubric(ctx context.Context, oldName, newName string) (*models.Rubric, error)
	DeleteRubric(ctx context.Context, name string) error
	IncrementCounter(ctx context.Context, name string) (*models.Rubric, error)
	DecrementCounter(ctx context.Context, name string) (*models.Rubric, error)
	TopRubrics(ctx context.Context) ([]models.Rubric, error)
}

type rubricService struct {
	rubricRepo repository.RubricRepository
}

func NewRubricService(rubricRepo repository.RubricRepository) RubricService {
	return &rubricService{rubricRepo: rubricRepo}
}

func validateRubricName(name string) error {
	length := utf8.RuneCountInString(name)
	if length < 2 {
		return fmt.Errorf("%w: название рубрики должно быть не короче 2 символов", models.ErrValidation)
	}
	if length > 100 {
		return fmt.Errorf("%w: название рубрики должно быть не длиннее 100 символов", models.ErrValidation)
	}
	return nil
}

func (s *rubricService) CreateRubric(ctx context.Context, name string) (*models.Rubric, error) {
	if err := validateRubricName(name); err != nil {
		return nil, err
	}
	return s.rubricRepo.Create(ctx, name)
}

func (s *rubricService) GetRubric(ctx context.Context, name string) (*models.Rubric, error) {
	return s.rubricRepo.GetByName(ctx, name)
}

func (s *rubricService) ListRubrics(ctx context.Context) ([]models.Rubric, error) {
	return s.rubricRepo.GetAll(ctx)
}

func (s *rubricService) RenameRubric(ctx context.Context, oldName, newName string) (*models.Rubric, error) {
	if err := validateRubricName(newName); err != nil {
		return nil, err
	}
	return s.rubricRepo.Rename(ctx, oldName, newName)
}

func (s *rubricService) DeleteRubric(ctx context.Context, name string) error {
	return s.rubricRepo.Delete(ctx, name)
}

func (s *rubricService) IncrementCounter(ctx context.Context, name string) (*models.Rubric, error) {
	return s.rubricRepo.Increment(ctx, name)
}

func (s *rubricService) DecrementCounter(ctx context.Context, name string) (*models.Rubric, error) {
	return s.rubricRepo.Decrement(ctx, name)
}

func (s *rubricService) TopRubrics(ctx context.Context) ([]models.Rubric, error) {
	return s.rubricRepo.Top(ctx, 5)
}
