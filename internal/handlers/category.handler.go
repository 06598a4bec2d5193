package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/marketplace/internal/model"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
)

type CategoryService interface {
	ListActive(ctx context.Context) ([]*model.Category, error)
	Create(ctx context.Context, p model.CategoryCreateRequest) (*model.Category, error)
}

type CategoryHandler struct {
	svc CategoryService
}

func RegisterCategoryRoutes(e *router.Group, h *CategoryHandler, m *AuthMiddleware) {
	e.GET("/categories", h.ListCategories)
	e.POST("/categories", m.Require(h.CreateCategory))
}

func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{
		svc: categoryService,
	}
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (h *CategoryHandler) ListCategories(ctx *xhttp.RequestCtx) {
	categories, err := h.svc.ListActive(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, categories)
}

func (h *CategoryHandler) CreateCategory(ctx *xhttp.RequestCtx) {
	var req createCategoryRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	category, err := h.svc.Create(ctx, model.CategoryCreateRequest{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, category)
}
