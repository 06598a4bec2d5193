package services

import (
	"context"
	"testing"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, p model.ListingCreateRequest) (*model.Listing, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) Get(ctx context.Context, id int64) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) ListActive(ctx context.Context, limit int) ([]*model.Listing, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Listing), args.Error(1)
}

func (m *MockListingRepository) ListBySeller(ctx context.Context, sellerID string) ([]*model.Listing, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Listing), args.Error(1)
}

func (m *MockListingRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*model.Listing, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Listing), args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, id int64, p model.ListingUpdateRequest) (*model.Listing, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) IncrementViews(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestListingService_Get_CountsView(t *testing.T) {
	repo := new(MockListingRepository)
	service := NewListingService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, int64(1)).Return(&model.Listing{ID: 1, Views: 3}, nil)
	repo.On("IncrementViews", ctx, int64(1)).Return(nil)

	listing, err := service.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), listing.ID)

	repo.AssertExpectations(t)
}

func TestListingService_Create_Validation(t *testing.T) {
	repo := new(MockListingRepository)
	service := NewListingService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, model.ListingCreateRequest{
		SellerID:   "seller-1",
		CategoryID: 1,
		Title:      "Sample account",
		// description missing
		Price: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Create(ctx, model.ListingCreateRequest{
		SellerID:    "seller-1",
		CategoryID:  1,
		Title:       "Sample account",
		Description: "desc",
		Price:       decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListingService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates price", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		price := decimal.NewFromFloat(19.99)
		patch := model.ListingUpdateRequest{Price: &price}

		repo.On("Get", ctx, int64(1)).Return(&model.Listing{
			ID:       1,
			SellerID: "seller-1",
			Status:   model.ListingStatusActive,
		}, nil)
		repo.On("Update", ctx, int64(1), patch).Return(&model.Listing{
			ID:       1,
			SellerID: "seller-1",
			Price:    price,
		}, nil)

		updated, err := service.Update(ctx, "seller-1", 1, patch)
		require.NoError(t, err)
		assert.True(t, updated.Price.Equal(price))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		price := decimal.NewFromInt(5)
		repo.On("Get", ctx, int64(1)).Return(&model.Listing{
			ID:       1,
			SellerID: "seller-1",
			Status:   model.ListingStatusActive,
		}, nil)

		_, err := service.Update(ctx, "someone-else", 1, model.ListingUpdateRequest{Price: &price})
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sold cannot reactivate", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		status := model.ListingStatusActive
		repo.On("Get", ctx, int64(1)).Return(&model.Listing{
			ID:       1,
			SellerID: "seller-1",
			Status:   model.ListingStatusSold,
		}, nil)

		_, err := service.Update(ctx, "seller-1", 1, model.ListingUpdateRequest{Status: &status})
		assert.ErrorIs(t, err, model.ErrIllegalTransition)
	})

	t.Run("suspended can reactivate", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		status := model.ListingStatusActive
		patch := model.ListingUpdateRequest{Status: &status}
		repo.On("Get", ctx, int64(1)).Return(&model.Listing{
			ID:       1,
			SellerID: "seller-1",
			Status:   model.ListingStatusSuspended,
		}, nil)
		repo.On("Update", ctx, int64(1), patch).Return(&model.Listing{
			ID:     1,
			Status: model.ListingStatusActive,
		}, nil)

		updated, err := service.Update(ctx, "seller-1", 1, patch)
		require.NoError(t, err)
		assert.Equal(t, model.ListingStatusActive, updated.Status)
	})
}

func TestListingService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes active listing", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		repo.On("Get", ctx, int64(1)).Return(&model.Listing{
			ID:       1,
			SellerID: "seller-1",
			Status:   model.ListingStatusActive,
		}, nil)
		repo.On("SoftDelete", ctx, int64(1)).Return(nil)

		require.NoError(t, service.Delete(ctx, "seller-1", 1))
		repo.AssertExpectations(t)
	})

	t.Run("deleting twice fails", func(t *testing.T) {
		repo := new(MockListingRepository)
		service := NewListingService(repo)

		repo.On("Get", ctx, int64(1)).Return(&model.Listing{
			ID:       1,
			SellerID: "seller-1",
			Status:   model.ListingStatusDeleted,
		}, nil)

		err := service.Delete(ctx, "seller-1", 1)
		assert.ErrorIs(t, err, model.ErrIllegalTransition)
		repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})
}
