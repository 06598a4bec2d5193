package repository

import (
	"context"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/pkg/pg"
	"github.com/shopspring/decimal"
)

type ReviewRepository struct {
	*pg.DB
}

func NewReviewRepository(db *pg.DB) *ReviewRepository {
	return &ReviewRepository{
		db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, p model.ReviewCreateRequest) (*model.Review, error) {
	entity := &ReviewEntity{
		OrderID:    p.OrderID,
		ReviewerID: p.ReviewerID,
		RevieweeID: p.RevieweeID,
		Rating:     p.Rating,
		Comment:    p.Comment,
	}
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toReviewModel(entity), nil
}

// ListForUser returns reviews received by the user, newest first.
func (r *ReviewRepository) ListForUser(ctx context.Context, userID string) ([]*model.Review, error) {
	var entities []*ReviewEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("reviewee_id = ?", userID).
		Order("created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toReviewModels(entities), nil
}

// AverageForUser computes the mean rating a user has received. Zero when the
// user has no reviews yet.
func (r *ReviewRepository) AverageForUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	var avg float64
	err := r.Read(ctx).WithContext(ctx).
		Model(&ReviewEntity{}).
		Where("reviewee_id = ?", userID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).
		Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(avg).Round(2), nil
}
