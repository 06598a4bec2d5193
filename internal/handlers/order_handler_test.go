package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/internal/repository"
	"github.com/nimasrn/marketplace/internal/services"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, p model.OrderCreateRequest) (*model.Order, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, callerID string, id int64, status model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, callerID, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func setupAuthedContext(method, path string, body []byte, caller string) *xhttp.RequestCtx {
	ctx := setupTestContext(method, path, body)
	ctx.SetUserValue(callerKey, caller)
	return ctx
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("buyer id comes from the session, not the body", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc)

		bodyBytes, _ := json.Marshal(map[string]any{
			"seller_id":      "seller-1",
			"listing_id":     3,
			"amount":         "299.99",
			"payment_method": "wallet",
		})

		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.OrderCreateRequest) bool {
			return p.BuyerID == "buyer-1" &&
				p.SellerID == "seller-1" &&
				p.ListingID == 3 &&
				p.Amount.Equal(decimal.RequireFromString("299.99"))
		})).Return(&model.Order{
			ID:     5,
			Status: model.OrderStatusPending,
		}, nil)

		ctx := setupAuthedContext("POST", "/api/orders", bodyBytes, "buyer-1")
		handler.CreateOrder(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())

		var response model.Order
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusPending, response.Status)
		assert.False(t, response.EscrowReleased)

		svc.AssertExpectations(t)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc)

		ctx := setupAuthedContext("POST", "/api/orders", []byte("not json"), "buyer-1")
		handler.CreateOrder(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("unavailable listing maps to 409", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc)

		bodyBytes, _ := json.Marshal(map[string]any{
			"seller_id":  "seller-1",
			"listing_id": 3,
			"amount":     "10.00",
		})
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrListingUnavailable)

		ctx := setupAuthedContext("POST", "/api/orders", bodyBytes, "buyer-1")
		handler.CreateOrder(ctx)

		assert.Equal(t, 409, ctx.Response.StatusCode())
	})
}

func TestOrderHandler_UpdateOrderStatus(t *testing.T) {
	t.Run("completed order carries escrow release", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc)

		bodyBytes, _ := json.Marshal(map[string]string{"status": "completed"})

		svc.On("UpdateStatus", mock.Anything, "buyer-1", int64(5), model.OrderStatusCompleted).
			Return(&model.Order{
				ID:             5,
				Status:         model.OrderStatusCompleted,
				EscrowReleased: true,
			}, nil)

		ctx := setupAuthedContext("PATCH", "/api/orders/5/status", bodyBytes, "buyer-1")
		ctx.SetUserValue("id", "5")
		handler.UpdateOrderStatus(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response model.Order
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.True(t, response.EscrowReleased)

		svc.AssertExpectations(t)
	})

	t.Run("illegal transition maps to 409", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc)

		bodyBytes, _ := json.Marshal(map[string]string{"status": "pending"})
		svc.On("UpdateStatus", mock.Anything, "buyer-1", int64(5), model.OrderStatusPending).
			Return(nil, model.ErrIllegalTransition)

		ctx := setupAuthedContext("PATCH", "/api/orders/5/status", bodyBytes, "buyer-1")
		ctx.SetUserValue("id", "5")
		handler.UpdateOrderStatus(ctx)

		assert.Equal(t, 409, ctx.Response.StatusCode())
	})

	t.Run("unknown order maps to 404", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc)

		bodyBytes, _ := json.Marshal(map[string]string{"status": "completed"})
		svc.On("UpdateStatus", mock.Anything, "buyer-1", int64(999), model.OrderStatusCompleted).
			Return(nil, repository.ErrOrderNotFound)

		ctx := setupAuthedContext("PATCH", "/api/orders/999/status", bodyBytes, "buyer-1")
		ctx.SetUserValue("id", "999")
		handler.UpdateOrderStatus(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})

	t.Run("bad id in path", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc)

		ctx := setupAuthedContext("PATCH", "/api/orders/abc/status", nil, "buyer-1")
		ctx.SetUserValue("id", "abc")
		handler.UpdateOrderStatus(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	t.Run("participant sees the order", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc)

		svc.On("Get", mock.Anything, int64(5)).Return(&model.Order{
			ID:       5,
			BuyerID:  "buyer-1",
			SellerID: "seller-1",
		}, nil)

		ctx := setupAuthedContext("GET", "/api/orders/5", nil, "seller-1")
		ctx.SetUserValue("id", "5")
		handler.GetOrder(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
	})

	t.Run("outsider gets 403", func(t *testing.T) {
		svc := new(MockOrderService)
		handler := NewOrderHandler(svc)

		svc.On("Get", mock.Anything, int64(5)).Return(&model.Order{
			ID:       5,
			BuyerID:  "buyer-1",
			SellerID: "seller-1",
		}, nil)

		ctx := setupAuthedContext("GET", "/api/orders/5", nil, "stranger")
		ctx.SetUserValue("id", "5")
		handler.GetOrder(ctx)

		assert.Equal(t, 403, ctx.Response.StatusCode())
	})
}

func TestOrderHandler_ListOrders(t *testing.T) {
	svc := new(MockOrderService)
	handler := NewOrderHandler(svc)

	svc.On("ListByUser", mock.Anything, "buyer-1").Return([]*model.Order{
		{ID: 1, BuyerID: "buyer-1"},
		{ID: 2, SellerID: "buyer-1"},
	}, nil)

	ctx := setupAuthedContext("GET", "/api/orders", nil, "buyer-1")
	handler.ListOrders(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())

	var response []*model.Order
	err := json.Unmarshal(ctx.Response.Body(), &response)
	require.NoError(t, err)
	assert.Len(t, response, 2)

	svc.AssertExpectations(t)
}
