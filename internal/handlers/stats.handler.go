package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/marketplace/internal/model"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
)

type StatsService interface {
	Get(ctx context.Context) (*model.MarketplaceStats, error)
}

type StatsHandler struct {
	svc StatsService
}

func RegisterStatsRoutes(e *router.Group, h *StatsHandler) {
	e.GET("/stats", h.GetStats)
}

func NewStatsHandler(statsService StatsService) *StatsHandler {
	return &StatsHandler{
		svc: statsService,
	}
}

func (h *StatsHandler) GetStats(ctx *xhttp.RequestCtx) {
	stats, err := h.svc.Get(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, stats)
}
