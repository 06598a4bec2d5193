package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) ListTransactions(ctx context.Context, userID string, limit int) ([]*model.WalletTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WalletTransaction), args.Error(1)
}

func (m *MockWalletService) CreateTransaction(ctx context.Context, p model.WalletTransactionCreateRequest) (*model.WalletTransaction, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WalletTransaction), args.Error(1)
}

func (m *MockWalletService) SetBalance(ctx context.Context, userID string, amount decimal.Decimal) (*model.User, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestWalletHandler_CreateTransaction(t *testing.T) {
	t.Run("user id comes from the session", func(t *testing.T) {
		svc := new(MockWalletService)
		handler := NewWalletHandler(svc)

		bodyBytes, _ := json.Marshal(map[string]any{
			"type":           "deposit",
			"amount":         "100.00",
			"payment_method": "card",
		})

		svc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(p model.WalletTransactionCreateRequest) bool {
			return p.UserID == "user-1" &&
				p.Type == model.TransactionTypeDeposit &&
				p.Amount.Equal(decimal.RequireFromString("100.00"))
		})).Return(&model.WalletTransaction{
			ID:     1,
			UserID: "user-1",
			Status: model.TransactionStatusCompleted,
		}, nil)

		ctx := setupAuthedContext("POST", "/api/wallet/transactions", bodyBytes, "user-1")
		handler.CreateTransaction(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("overdraft maps to 422", func(t *testing.T) {
		svc := new(MockWalletService)
		handler := NewWalletHandler(svc)

		bodyBytes, _ := json.Marshal(map[string]any{
			"type":   "withdrawal",
			"amount": "9999.00",
		})
		svc.On("CreateTransaction", mock.Anything, mock.Anything).
			Return(nil, repository.ErrInsufficientBalance)

		ctx := setupAuthedContext("POST", "/api/wallet/transactions", bodyBytes, "user-1")
		handler.CreateTransaction(ctx)

		assert.Equal(t, 422, ctx.Response.StatusCode())
	})
}

func TestWalletHandler_ListTransactions(t *testing.T) {
	svc := new(MockWalletService)
	handler := NewWalletHandler(svc)

	svc.On("ListTransactions", mock.Anything, "user-1", 5).Return([]*model.WalletTransaction{
		{ID: 1}, {ID: 2},
	}, nil)

	ctx := setupAuthedContext("GET", "/api/wallet/transactions?limit=5", nil, "user-1")
	handler.ListTransactions(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())

	var response []*model.WalletTransaction
	err := json.Unmarshal(ctx.Response.Body(), &response)
	require.NoError(t, err)
	assert.Len(t, response, 2)
}

func TestWalletHandler_SetBalance(t *testing.T) {
	amount := decimal.RequireFromString("250.00")

	// Both payload shapes set the same absolute balance.
	for _, field := range []string{"amount", "balance"} {
		t.Run(field+" field", func(t *testing.T) {
			svc := new(MockWalletService)
			handler := NewWalletHandler(svc)

			bodyBytes, _ := json.Marshal(map[string]any{field: "250.00"})

			svc.On("SetBalance", mock.Anything, "user-1", mock.MatchedBy(func(d decimal.Decimal) bool {
				return d.Equal(amount)
			})).Return(&model.User{ID: "user-1", WalletBalance: amount}, nil)

			ctx := setupAuthedContext("PATCH", "/api/wallet/balance", bodyBytes, "user-1")
			handler.SetBalance(ctx)

			assert.Equal(t, 200, ctx.Response.StatusCode())
			svc.AssertExpectations(t)
		})
	}

	t.Run("missing value is a 400", func(t *testing.T) {
		svc := new(MockWalletService)
		handler := NewWalletHandler(svc)

		ctx := setupAuthedContext("PATCH", "/api/wallet/balance", []byte(`{}`), "user-1")
		handler.SetBalance(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "SetBalance", mock.Anything, mock.Anything, mock.Anything)
	})
}
