package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/shopspring/decimal"
)

var ErrOrderNotCompleted = errors.New("order is not completed")

type ReviewRepository interface {
	Create(ctx context.Context, p model.ReviewCreateRequest) (*model.Review, error)
	ListForUser(ctx context.Context, userID string) ([]*model.Review, error)
	AverageForUser(ctx context.Context, userID string) (decimal.Decimal, error)
}

type ReviewOrderRepository interface {
	Get(ctx context.Context, id int64) (*model.Order, error)
}

type ReviewUserRepository interface {
	SetSellerRating(ctx context.Context, sellerID string, rating decimal.Decimal) error
}

type ReviewService struct {
	reviewRepo ReviewRepository
	orderRepo  ReviewOrderRepository
	userRepo   ReviewUserRepository
}

func NewReviewService(reviewRepo ReviewRepository, orderRepo ReviewOrderRepository, userRepo ReviewUserRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		userRepo:   userRepo,
	}
}

// Create records a review against a completed order. The reviewer must be a
// party to the order and the reviewee is always the other side of the trade.
// The reviewee's cached rating aggregate is refreshed afterwards.
func (s *ReviewService) Create(ctx context.Context, p model.ReviewCreateRequest) (*model.Review, error) {
	order, err := s.orderRepo.Get(ctx, p.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusCompleted {
		return nil, fmt.Errorf("%w: order %d", ErrOrderNotCompleted, order.ID)
	}

	switch p.ReviewerID {
	case order.BuyerID:
		p.RevieweeID = order.SellerID
	case order.SellerID:
		p.RevieweeID = order.BuyerID
	default:
		return nil, ErrForbidden
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	review, err := s.reviewRepo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	// Rating refresh is best effort; the review itself already committed.
	if avg, err := s.reviewRepo.AverageForUser(ctx, p.RevieweeID); err == nil {
		_ = s.userRepo.SetSellerRating(ctx, p.RevieweeID, avg)
	}

	return review, nil
}

func (s *ReviewService) ListForUser(ctx context.Context, userID string) ([]*model.Review, error) {
	return s.reviewRepo.ListForUser(ctx, userID)
}
