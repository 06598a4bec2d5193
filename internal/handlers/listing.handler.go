package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/marketplace/internal/model"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
	"github.com/shopspring/decimal"
)

type ListingService interface {
	Create(ctx context.Context, p model.ListingCreateRequest) (*model.Listing, error)
	Get(ctx context.Context, id int64) (*model.Listing, error)
	ListActive(ctx context.Context, limit int) ([]*model.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Listing, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*model.Listing, error)
	Update(ctx context.Context, callerID string, id int64, p model.ListingUpdateRequest) (*model.Listing, error)
	Delete(ctx context.Context, callerID string, id int64) error
}

type ListingHandler struct {
	svc ListingService
}

func RegisterListingRoutes(e *router.Group, h *ListingHandler, m *AuthMiddleware) {
	e.GET("/listings", h.ListListings)
	e.GET("/listings/{id}", h.GetListing)
	e.GET("/listings/seller/{sellerId}", m.Require(h.ListBySeller))
	e.GET("/listings/category/{categoryId}", h.ListByCategory)
	e.POST("/listings", m.Require(h.CreateListing))
	e.PUT("/listings/{id}", m.Require(h.UpdateListing))
	e.DELETE("/listings/{id}", m.Require(h.DeleteListing))
}

func NewListingHandler(listingService ListingService) *ListingHandler {
	return &ListingHandler{
		svc: listingService,
	}
}

type createListingRequest struct {
	CategoryID        int64            `json:"category_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Price             decimal.Decimal  `json:"price"`
	ImageURL          string           `json:"image_url"`
	Platform          string           `json:"platform"`
	AccountDetails    model.Attributes `json:"account_details"`
	IsInstantDelivery bool             `json:"is_instant_delivery"`
}

type updateListingRequest struct {
	Title             *string              `json:"title"`
	Description       *string              `json:"description"`
	Price             *decimal.Decimal     `json:"price"`
	ImageURL          *string              `json:"image_url"`
	Platform          *string              `json:"platform"`
	AccountDetails    model.Attributes     `json:"account_details"`
	IsInstantDelivery *bool                `json:"is_instant_delivery"`
	Status            *model.ListingStatus `json:"status"`
}

func (h *ListingHandler) ListListings(ctx *xhttp.RequestCtx) {
	listings, err := h.svc.ListActive(ctx, queryInt(ctx, "limit", 0))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, listings)
}

func (h *ListingHandler) GetListing(ctx *xhttp.RequestCtx) {
	id, err := paramInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid listing id")
		return
	}
	listing, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, listing)
}

func (h *ListingHandler) ListBySeller(ctx *xhttp.RequestCtx) {
	listings, err := h.svc.ListBySeller(ctx, param(ctx, "sellerId"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, listings)
}

func (h *ListingHandler) ListByCategory(ctx *xhttp.RequestCtx) {
	categoryID, err := paramInt64(ctx, "categoryId")
	if err != nil {
		writeError(ctx, 400, "invalid category id")
		return
	}
	listings, err := h.svc.ListByCategory(ctx, categoryID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, listings)
}

func (h *ListingHandler) CreateListing(ctx *xhttp.RequestCtx) {
	var req createListingRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	listing, err := h.svc.Create(ctx, model.ListingCreateRequest{
		SellerID:          callerID(ctx),
		CategoryID:        req.CategoryID,
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		ImageURL:          req.ImageURL,
		Platform:          req.Platform,
		AccountDetails:    req.AccountDetails,
		IsInstantDelivery: req.IsInstantDelivery,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, listing)
}

func (h *ListingHandler) UpdateListing(ctx *xhttp.RequestCtx) {
	id, err := paramInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid listing id")
		return
	}
	var req updateListingRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	listing, err := h.svc.Update(ctx, callerID(ctx), id, model.ListingUpdateRequest{
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		ImageURL:          req.ImageURL,
		Platform:          req.Platform,
		AccountDetails:    req.AccountDetails,
		IsInstantDelivery: req.IsInstantDelivery,
		Status:            req.Status,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, listing)
}

func (h *ListingHandler) DeleteListing(ctx *xhttp.RequestCtx) {
	id, err := paramInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid listing id")
		return
	}
	if err := h.svc.Delete(ctx, callerID(ctx), id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "deleted"})
}
