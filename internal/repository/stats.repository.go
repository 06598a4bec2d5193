package repository

import (
	"context"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/pkg/pg"
	"github.com/shopspring/decimal"
)

type StatsRepository struct {
	*pg.DB
}

func NewStatsRepository(db *pg.DB) *StatsRepository {
	return &StatsRepository{
		db,
	}
}

// GetMarketplaceStats aggregates across users, orders and reviews. Delivery
// time is derived from the gap between order creation and settlement.
func (r *StatsRepository) GetMarketplaceStats(ctx context.Context) (*model.MarketplaceStats, error) {
	stats := &model.MarketplaceStats{
		CompletedVolume: decimal.Zero,
		AverageRating:   decimal.Zero,
	}

	if err := r.Read(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Count(&stats.TotalUsers).
		Error; err != nil {
		return nil, err
	}

	var orderAgg struct {
		Count  int64
		Volume decimal.Decimal
	}
	if err := r.Read(ctx).WithContext(ctx).
		Model(&OrderEntity{}).
		Where("status = ?", model.OrderStatusCompleted).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS volume").
		Scan(&orderAgg).
		Error; err != nil {
		return nil, err
	}
	stats.CompletedOrders = orderAgg.Count
	stats.CompletedVolume = orderAgg.Volume

	var avgDeliverySecs float64
	if err := r.Read(ctx).WithContext(ctx).
		Model(&OrderEntity{}).
		Where("status = ? AND completed_at IS NOT NULL", model.OrderStatusCompleted).
		Select("COALESCE(AVG(" + r.secondsBetween("created_at", "completed_at") + "), 0)").
		Scan(&avgDeliverySecs).
		Error; err != nil {
		return nil, err
	}
	stats.AvgDeliveryTimeMins = int64(avgDeliverySecs / 60)

	var avgRating float64
	if err := r.Read(ctx).WithContext(ctx).
		Model(&ReviewEntity{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avgRating).
		Error; err != nil {
		return nil, err
	}
	stats.AverageRating = decimal.NewFromFloat(avgRating).Round(2)

	return stats, nil
}

// secondsBetween emits a dialect-appropriate expression; the test suite runs
// on sqlite while production runs on postgres.
func (r *StatsRepository) secondsBetween(from, to string) string {
	if r.Dialect(context.Background()) == "sqlite" {
		return "(strftime('%s', " + to + ") - strftime('%s', " + from + "))"
	}
	return "EXTRACT(EPOCH FROM (" + to + " - " + from + "))"
}
