package repository

import (
	"context"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/pkg/pg"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct {
	*pg.DB
}

func NewCategoryRepository(db *pg.DB) *CategoryRepository {
	return &CategoryRepository{
		db,
	}
}

// ListActive returns active categories only; inactive ones stay visible to
// nobody but the seeder.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]*model.Category, error) {
	var entities []*CategoryEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toCategoryModels(entities), nil
}

func (r *CategoryRepository) Create(ctx context.Context, p model.CategoryCreateRequest) (*model.Category, error) {
	entity := &CategoryEntity{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Icon:        p.Icon,
		IsActive:    p.IsActive,
	}
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toCategoryModel(entity), nil
}

// CreateIfAbsent inserts the category, skipping on a slug conflict so that
// re-seeding stays idempotent.
func (r *CategoryRepository) CreateIfAbsent(ctx context.Context, p model.CategoryCreateRequest) error {
	entity := &CategoryEntity{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Icon:        p.Icon,
		IsActive:    p.IsActive,
	}
	return r.Write(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).
		Create(entity).
		Error
}
