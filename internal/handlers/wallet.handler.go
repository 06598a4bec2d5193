package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/marketplace/internal/model"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
	"github.com/shopspring/decimal"
)

type WalletService interface {
	ListTransactions(ctx context.Context, userID string, limit int) ([]*model.WalletTransaction, error)
	CreateTransaction(ctx context.Context, p model.WalletTransactionCreateRequest) (*model.WalletTransaction, error)
	SetBalance(ctx context.Context, userID string, amount decimal.Decimal) (*model.User, error)
}

type WalletHandler struct {
	svc WalletService
}

func RegisterWalletRoutes(e *router.Group, h *WalletHandler, m *AuthMiddleware) {
	e.GET("/wallet/transactions", m.Require(h.ListTransactions))
	e.POST("/wallet/transactions", m.Require(h.CreateTransaction))
	e.PATCH("/wallet/balance", m.Require(h.SetBalance))
}

func NewWalletHandler(walletService WalletService) *WalletHandler {
	return &WalletHandler{
		svc: walletService,
	}
}

type createTransactionRequest struct {
	Type          model.TransactionType `json:"type"`
	Amount        decimal.Decimal       `json:"amount"`
	Description   string                `json:"description"`
	PaymentMethod string                `json:"payment_method"`
	OrderID       *int64                `json:"order_id"`
}

// The original balance endpoint reads "amount"; "balance" is accepted as an
// alias so either payload shape works.
type setBalanceRequest struct {
	Amount  *decimal.Decimal `json:"amount"`
	Balance *decimal.Decimal `json:"balance"`
}

func (h *WalletHandler) ListTransactions(ctx *xhttp.RequestCtx) {
	txns, err := h.svc.ListTransactions(ctx, callerID(ctx), queryInt(ctx, "limit", 0))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, txns)
}

func (h *WalletHandler) CreateTransaction(ctx *xhttp.RequestCtx) {
	var req createTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	txn, err := h.svc.CreateTransaction(ctx, model.WalletTransactionCreateRequest{
		UserID:        callerID(ctx),
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		OrderID:       req.OrderID,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, txn)
}

func (h *WalletHandler) SetBalance(ctx *xhttp.RequestCtx) {
	var req setBalanceRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	value := req.Amount
	if value == nil {
		value = req.Balance
	}
	if value == nil {
		writeError(ctx, 400, "amount is required")
		return
	}
	user, err := h.svc.SetBalance(ctx, callerID(ctx), *value)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, user)
}
