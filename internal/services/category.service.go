package services

import (
	"context"
	"fmt"

	"github.com/nimasrn/marketplace/internal/model"
)

type CategoryRepository interface {
	ListActive(ctx context.Context) ([]*model.Category, error)
	Create(ctx context.Context, p model.CategoryCreateRequest) (*model.Category, error)
}

type CategoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *CategoryService) ListActive(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.ListActive(ctx)
}

func (s *CategoryService) Create(ctx context.Context, p model.CategoryCreateRequest) (*model.Category, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return s.categoryRepo.Create(ctx, p)
}
