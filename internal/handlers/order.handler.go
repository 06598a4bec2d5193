package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/marketplace/internal/model"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	Create(ctx context.Context, p model.OrderCreateRequest) (*model.Order, error)
	Get(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, callerID string, id int64, status model.OrderStatus) (*model.Order, error)
}

type OrderHandler struct {
	svc OrderService
}

func RegisterOrderRoutes(e *router.Group, h *OrderHandler, m *AuthMiddleware) {
	e.GET("/orders", m.Require(h.ListOrders))
	e.GET("/orders/{id}", m.Require(h.GetOrder))
	e.POST("/orders", m.Require(h.CreateOrder))
	e.PATCH("/orders/{id}/status", m.Require(h.UpdateOrderStatus))
}

func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{
		svc: orderService,
	}
}

type createOrderRequest struct {
	SellerID        string           `json:"seller_id"`
	ListingID       int64            `json:"listing_id"`
	Amount          decimal.Decimal  `json:"amount"`
	PaymentMethod   string           `json:"payment_method"`
	DeliveryDetails model.Attributes `json:"delivery_details"`
}

type updateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

func (h *OrderHandler) ListOrders(ctx *xhttp.RequestCtx) {
	orders, err := h.svc.ListByUser(ctx, callerID(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, orders)
}

func (h *OrderHandler) GetOrder(ctx *xhttp.RequestCtx) {
	id, err := paramInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid order id")
		return
	}
	order, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	// Orders are only visible to their two parties.
	caller := callerID(ctx)
	if order.BuyerID != caller && order.SellerID != caller {
		writeError(ctx, 403, "forbidden")
		return
	}
	writeJSON(ctx, 200, order)
}

func (h *OrderHandler) CreateOrder(ctx *xhttp.RequestCtx) {
	var req createOrderRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	order, err := h.svc.Create(ctx, model.OrderCreateRequest{
		BuyerID:         callerID(ctx),
		SellerID:        req.SellerID,
		ListingID:       req.ListingID,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		DeliveryDetails: req.DeliveryDetails,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, order)
}

func (h *OrderHandler) UpdateOrderStatus(ctx *xhttp.RequestCtx) {
	id, err := paramInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid order id")
		return
	}
	var req updateOrderStatusRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	order, err := h.svc.UpdateStatus(ctx, callerID(ctx), id, req.Status)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, order)
}
