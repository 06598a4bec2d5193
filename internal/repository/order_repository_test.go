package repository

import (
	"context"
	"testing"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order, err := repo.Create(ctx, model.OrderCreateRequest{
		BuyerID:       "buyer-1",
		SellerID:      "seller-1",
		ListingID:     3,
		Amount:        decimal.RequireFromString("299.99"),
		PaymentMethod: "wallet",
		DeliveryDetails: model.Attributes{
			"email": "buyer@example.com",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.False(t, order.EscrowReleased)
	assert.Nil(t, order.CompletedAt)
	assert.Equal(t, "299.99", order.Amount.StringFixed(2))
}

func TestOrderRepository_Get(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewOrderRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderRepository_ListByUser(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewOrderRepository(db)
	ctx := context.Background()

	mk := func(buyer, seller string) {
		_, err := repo.Create(ctx, model.OrderCreateRequest{
			BuyerID:   buyer,
			SellerID:  seller,
			ListingID: 1,
			Amount:    decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}
	mk("user-1", "user-2")
	mk("user-2", "user-1")
	mk("user-2", "user-3")

	// Both sides of the trade count.
	orders, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = repo.ListByUser(ctx, "user-3")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = repo.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewOrderRepository(db)
	ctx := context.Background()

	t.Run("completed stamps escrow and completion time", func(t *testing.T) {
		order, err := repo.Create(ctx, model.OrderCreateRequest{
			BuyerID:   "buyer-1",
			SellerID:  "seller-1",
			ListingID: 1,
			Amount:    decimal.NewFromInt(50),
		})
		require.NoError(t, err)

		updated, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusCompleted)
		require.NoError(t, err)

		assert.Equal(t, model.OrderStatusCompleted, updated.Status)
		assert.True(t, updated.EscrowReleased)
		require.NotNil(t, updated.CompletedAt)
		assert.False(t, updated.CompletedAt.Before(updated.CreatedAt))
	})

	t.Run("stale status makes the write miss", func(t *testing.T) {
		order, err := repo.Create(ctx, model.OrderCreateRequest{
			BuyerID:   "buyer-1",
			SellerID:  "seller-1",
			ListingID: 1,
			Amount:    decimal.NewFromInt(50),
		})
		require.NoError(t, err)

		first, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusCompleted)
		require.NoError(t, err)
		require.NotNil(t, first.CompletedAt)

		// A second writer that also observed "pending" loses the swap and
		// must not restamp anything.
		_, err = repo.UpdateStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusCompleted)
		assert.ErrorIs(t, err, model.ErrIllegalTransition)

		current, err := repo.Get(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, current.CompletedAt)
		assert.True(t, current.CompletedAt.Equal(*first.CompletedAt))
	})

	t.Run("cancelled leaves escrow fields alone", func(t *testing.T) {
		order, err := repo.Create(ctx, model.OrderCreateRequest{
			BuyerID:   "buyer-1",
			SellerID:  "seller-1",
			ListingID: 1,
			Amount:    decimal.NewFromInt(50),
		})
		require.NoError(t, err)

		updated, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusCancelled)
		require.NoError(t, err)

		assert.Equal(t, model.OrderStatusCancelled, updated.Status)
		assert.False(t, updated.EscrowReleased)
		assert.Nil(t, updated.CompletedAt)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, 999, model.OrderStatusPending, model.OrderStatusCompleted)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
