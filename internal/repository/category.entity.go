package repository

import (
	"time"

	"github.com/nimasrn/marketplace/internal/model"
)

type CategoryEntity struct {
	ID          int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Name        string    `db:"name"        gorm:"column:name;not null"`
	Slug        string    `db:"slug"        gorm:"column:slug;not null;uniqueIndex"`
	Description string    `db:"description" gorm:"column:description"`
	Icon        string    `db:"icon"        gorm:"column:icon"`
	// No gorm default tag: with one, gorm drops a zero-valued field from the
	// INSERT and the column falls back to the database default, so an
	// explicit false would be stored as true.
	IsActive  bool      `db:"is_active"  gorm:"column:is_active"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (CategoryEntity) TableName() string {
	return "categories"
}

func toCategoryModel(e *CategoryEntity) *model.Category {
	if e == nil {
		return nil
	}
	return &model.Category{
		ID:          e.ID,
		Name:        e.Name,
		Slug:        e.Slug,
		Description: e.Description,
		Icon:        e.Icon,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
	}
}

func toCategoryModels(entities []*CategoryEntity) []*model.Category {
	models := make([]*model.Category, len(entities))
	for i, e := range entities {
		models[i] = toCategoryModel(e)
	}
	return models
}
