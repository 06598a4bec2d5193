package repository

import (
	"context"
	"testing"
	"time"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/pkg/pg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewListingRepository(db)
	ctx := context.Background()

	listing, err := repo.Create(ctx, model.ListingCreateRequest{
		SellerID:    "seller-1",
		CategoryID:  1,
		Title:       "Instagram account 10k",
		Description: "Aged account, niche: travel",
		Price:       decimal.RequireFromString("149.99"),
		Platform:    "instagram",
		AccountDetails: model.Attributes{
			"followers": 10000,
		},
		IsInstantDelivery: true,
	})
	require.NoError(t, err)

	// New listings always start active regardless of input.
	assert.Equal(t, model.ListingStatusActive, listing.Status)
	assert.Equal(t, 0, listing.Views)

	t.Run("price round-trips to two decimal places", func(t *testing.T) {
		fetched, err := repo.Get(ctx, listing.ID)
		require.NoError(t, err)
		assert.Equal(t, "149.99", fetched.Price.StringFixed(2))
	})

	t.Run("attributes round-trip", func(t *testing.T) {
		fetched, err := repo.Get(ctx, listing.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 10000, fetched.AccountDetails["followers"])
	})
}

func TestListingRepository_Get(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewListingRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestListingRepository_ActiveOnlyQueries(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewListingRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	seedListing(t, db, &ListingEntity{
		SellerID: "seller-1", CategoryID: 1, Title: "old active",
		Description: "d", Price: decimal.NewFromInt(10),
		Status: "active", CreatedAt: base,
	})
	seedListing(t, db, &ListingEntity{
		SellerID: "seller-1", CategoryID: 1, Title: "new active",
		Description: "d", Price: decimal.NewFromInt(20),
		Status: "active", CreatedAt: base.Add(time.Minute),
	})
	seedListing(t, db, &ListingEntity{
		SellerID: "seller-1", CategoryID: 1, Title: "sold",
		Description: "d", Price: decimal.NewFromInt(30),
		Status: "sold", CreatedAt: base.Add(2 * time.Minute),
	})
	seedListing(t, db, &ListingEntity{
		SellerID: "seller-2", CategoryID: 2, Title: "suspended",
		Description: "d", Price: decimal.NewFromInt(40),
		Status: "suspended", CreatedAt: base.Add(3 * time.Minute),
	})

	t.Run("public list is active only, newest first", func(t *testing.T) {
		listings, err := repo.ListActive(ctx, 0)
		require.NoError(t, err)
		require.Len(t, listings, 2)
		assert.Equal(t, "new active", listings[0].Title)
		assert.Equal(t, "old active", listings[1].Title)
	})

	t.Run("limit is honored", func(t *testing.T) {
		listings, err := repo.ListActive(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, listings, 1)
	})

	t.Run("by seller hides non-active", func(t *testing.T) {
		listings, err := repo.ListBySeller(ctx, "seller-1")
		require.NoError(t, err)
		assert.Len(t, listings, 2)
	})

	t.Run("by category hides non-active", func(t *testing.T) {
		listings, err := repo.ListByCategory(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, listings)
	})
}

func TestListingRepository_Update(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewListingRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.ListingCreateRequest{
		SellerID:    "seller-1",
		CategoryID:  1,
		Title:       "before",
		Description: "d",
		Price:       decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	title := "after"
	price := decimal.RequireFromString("12.50")
	updated, err := repo.Update(ctx, created.ID, model.ListingUpdateRequest{
		Title: &title,
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "12.50", updated.Price.StringFixed(2))
	assert.Equal(t, "d", updated.Description)

	_, err = repo.Update(ctx, 999, model.ListingUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestListingRepository_SoftDelete(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewListingRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.ListingCreateRequest{
		SellerID:    "seller-1",
		CategoryID:  1,
		Title:       "doomed",
		Description: "d",
		Price:       decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, created.ID))

	// The row survives for order history but leaves every public query.
	fetched, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ListingStatusDeleted, fetched.Status)

	listings, err := repo.ListActive(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, listings)

	assert.ErrorIs(t, repo.SoftDelete(ctx, 999), ErrListingNotFound)
}

func TestListingRepository_IncrementViews(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewListingRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.ListingCreateRequest{
		SellerID:    "seller-1",
		CategoryID:  1,
		Title:       "watched",
		Description: "d",
		Price:       decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	require.NoError(t, repo.IncrementViews(ctx, created.ID))
	require.NoError(t, repo.IncrementViews(ctx, created.ID))

	fetched, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.Views)
}

func seedListing(t *testing.T, db *pg.DB, e *ListingEntity) {
	t.Helper()
	require.NoError(t, db.Write(context.Background()).Create(e).Error)
}
