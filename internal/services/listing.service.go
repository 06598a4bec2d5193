package services

import (
	"context"
	"fmt"

	"github.com/nimasrn/marketplace/internal/model"
)

type ListingRepository interface {
	Create(ctx context.Context, p model.ListingCreateRequest) (*model.Listing, error)
	Get(ctx context.Context, id int64) (*model.Listing, error)
	ListActive(ctx context.Context, limit int) ([]*model.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Listing, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*model.Listing, error)
	Update(ctx context.Context, id int64, p model.ListingUpdateRequest) (*model.Listing, error)
	SoftDelete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
}

type ListingService struct {
	listingRepo ListingRepository
}

func NewListingService(listingRepo ListingRepository) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
	}
}

func (s *ListingService) Create(ctx context.Context, p model.ListingCreateRequest) (*model.Listing, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return s.listingRepo.Create(ctx, p)
}

// Get returns a single listing and counts the view. The view counter is best
// effort; a failed bump never fails the read.
func (s *ListingService) Get(ctx context.Context, id int64) (*model.Listing, error) {
	listing, err := s.listingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.listingRepo.IncrementViews(ctx, id)
	return listing, nil
}

func (s *ListingService) ListActive(ctx context.Context, limit int) ([]*model.Listing, error) {
	return s.listingRepo.ListActive(ctx, limit)
}

func (s *ListingService) ListBySeller(ctx context.Context, sellerID string) ([]*model.Listing, error) {
	return s.listingRepo.ListBySeller(ctx, sellerID)
}

func (s *ListingService) ListByCategory(ctx context.Context, categoryID int64) ([]*model.Listing, error) {
	return s.listingRepo.ListByCategory(ctx, categoryID)
}

// Update mutates a listing on behalf of callerID. Only the owner may update,
// and status changes must follow the listing lifecycle.
func (s *ListingService) Update(ctx context.Context, callerID string, id int64, p model.ListingUpdateRequest) (*model.Listing, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	current, err := s.listingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.SellerID != callerID {
		return nil, ErrForbidden
	}
	if p.Status != nil && *p.Status != current.Status && !current.Status.CanTransitionTo(*p.Status) {
		return nil, fmt.Errorf("%w: listing %s -> %s", model.ErrIllegalTransition, current.Status, *p.Status)
	}

	return s.listingRepo.Update(ctx, id, p)
}

// Delete soft-deletes the caller's listing. Deleted is terminal; the row
// stays behind for order history.
func (s *ListingService) Delete(ctx context.Context, callerID string, id int64) error {
	current, err := s.listingRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.SellerID != callerID {
		return ErrForbidden
	}
	if !current.Status.CanTransitionTo(model.ListingStatusDeleted) {
		return fmt.Errorf("%w: listing %s -> %s", model.ErrIllegalTransition, current.Status, model.ListingStatusDeleted)
	}
	return s.listingRepo.SoftDelete(ctx, id)
}
