package repository

import (
	"context"
	"testing"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewReviewRepository(db)
	ctx := context.Background()

	review, err := repo.Create(ctx, model.ReviewCreateRequest{
		OrderID:    1,
		ReviewerID: "buyer-1",
		RevieweeID: "seller-1",
		Rating:     5,
		Comment:    "smooth trade",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	_, err = repo.Create(ctx, model.ReviewCreateRequest{
		OrderID:    2,
		ReviewerID: "buyer-2",
		RevieweeID: "seller-1",
		Rating:     4,
	})
	require.NoError(t, err)

	reviews, err := repo.ListForUser(ctx, "seller-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	reviews, err = repo.ListForUser(ctx, "buyer-1")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewRepository_AverageForUser(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewReviewRepository(db)
	ctx := context.Background()

	t.Run("no reviews yields zero", func(t *testing.T) {
		avg, err := repo.AverageForUser(ctx, "seller-1")
		require.NoError(t, err)
		assert.True(t, avg.IsZero())
	})

	t.Run("mean rounded to two decimals", func(t *testing.T) {
		for _, rating := range []int{5, 4, 4} {
			_, err := repo.Create(ctx, model.ReviewCreateRequest{
				OrderID:    1,
				ReviewerID: "buyer-1",
				RevieweeID: "seller-1",
				Rating:     rating,
			})
			require.NoError(t, err)
		}

		avg, err := repo.AverageForUser(ctx, "seller-1")
		require.NoError(t, err)
		assert.Equal(t, "4.33", avg.StringFixed(2))
	})
}
