package services

import (
	"context"

	"github.com/nimasrn/marketplace/internal/model"
)

type StatsRepository interface {
	GetMarketplaceStats(ctx context.Context) (*model.MarketplaceStats, error)
}

type StatsService struct {
	statsRepo StatsRepository
}

func NewStatsService(statsRepo StatsRepository) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
	}
}

func (s *StatsService) Get(ctx context.Context) (*model.MarketplaceStats, error) {
	return s.statsRepo.GetMarketplaceStats(ctx)
}
