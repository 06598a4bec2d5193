package repository

import (
	"context"
	"testing"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_ListActive(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, model.CategoryCreateRequest{
		Name: "Gaming", Slug: "gaming", IsActive: true,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, model.CategoryCreateRequest{
		Name: "Retired", Slug: "retired", IsActive: false,
	})
	require.NoError(t, err)

	categories, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "gaming", categories[0].Slug)
}

func TestCategoryRepository_CreateInactive(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.CategoryCreateRequest{
		Name: "Retired", Slug: "retired", IsActive: false,
	})
	require.NoError(t, err)
	assert.False(t, created.IsActive)

	var entity CategoryEntity
	require.NoError(t, db.Read(ctx).Where("slug = ?", "retired").First(&entity).Error)
	assert.False(t, entity.IsActive)
}

func TestCategoryRepository_CreateIfAbsent(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	seed := model.CategoryCreateRequest{
		Name:        "Social Media",
		Slug:        "social-media",
		Description: "Accounts on social platforms",
		Icon:        "users",
		IsActive:    true,
	}

	// Seeding twice with the same slug must not duplicate.
	require.NoError(t, repo.CreateIfAbsent(ctx, seed))
	require.NoError(t, repo.CreateIfAbsent(ctx, seed))

	var count int64
	require.NoError(t, db.Read(ctx).Model(&CategoryEntity{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
