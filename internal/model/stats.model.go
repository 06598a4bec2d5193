package model

import "github.com/shopspring/decimal"

// MarketplaceStats is the public aggregate snapshot served on /api/stats.
type MarketplaceStats struct {
	TotalUsers          int64           `json:"total_users"`
	CompletedOrders     int64           `json:"completed_orders"`
	CompletedVolume     decimal.Decimal `json:"completed_volume"`
	AvgDeliveryTimeMins int64           `json:"avg_delivery_time_mins"`
	AverageRating       decimal.Decimal `json:"average_rating"`
}
