package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/marketplace/internal/model"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
)

type ReviewService interface {
	Create(ctx context.Context, p model.ReviewCreateRequest) (*model.Review, error)
	ListForUser(ctx context.Context, userID string) ([]*model.Review, error)
}

type ReviewHandler struct {
	svc ReviewService
}

func RegisterReviewRoutes(e *router.Group, h *ReviewHandler, m *AuthMiddleware) {
	e.GET("/reviews/user/{userId}", h.ListUserReviews)
	e.POST("/reviews", m.Require(h.CreateReview))
}

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		svc: reviewService,
	}
}

type createReviewRequest struct {
	OrderID int64  `json:"order_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) ListUserReviews(ctx *xhttp.RequestCtx) {
	reviews, err := h.svc.ListForUser(ctx, param(ctx, "userId"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, reviews)
}

func (h *ReviewHandler) CreateReview(ctx *xhttp.RequestCtx) {
	var req createReviewRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	review, err := h.svc.Create(ctx, model.ReviewCreateRequest{
		OrderID:    req.OrderID,
		ReviewerID: callerID(ctx),
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, review)
}
