package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger row. The stored amount is always
// positive; direction is implied by the type.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypePurchase   TransactionType = "purchase"
	TransactionTypeSale       TransactionType = "sale"
	TransactionTypeEscrow     TransactionType = "escrow"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypePurchase, TransactionTypeSale, TransactionTypeEscrow:
		return true
	}
	return false
}

// Credit reports whether the type moves funds toward the user. Escrow rows
// are neutral: they record a hold, not a balance change.
func (t TransactionType) Credit() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeSale
}

func (t TransactionType) Debit() bool {
	return t == TransactionTypeWithdrawal || t == TransactionTypePurchase
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	}
	return false
}

// WalletTransaction is an append-only ledger row. Rows are created, never
// mutated or deleted.
type WalletTransaction struct {
	ID            int64             `json:"id"`
	UserID        string            `json:"user_id"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	Description   string            `json:"description"`
	PaymentMethod string            `json:"payment_method"`
	Status        TransactionStatus `json:"status"`
	OrderID       *int64            `json:"order_id"`
	CreatedAt     time.Time         `json:"created_at"`
}

type WalletTransactionCreateRequest struct {
	UserID        string
	Type          TransactionType
	Amount        decimal.Decimal
	Description   string
	PaymentMethod string
	OrderID       *int64
}

func (p WalletTransactionCreateRequest) Validate() error {
	if p.UserID == "" {
		return errors.New("user_id is required")
	}
	if !p.Type.Valid() {
		return errors.New("unknown transaction type")
	}
	if !p.Amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	return nil
}
