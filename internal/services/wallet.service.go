package services

import (
	"context"
	"fmt"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/pkg/prom"
	"github.com/shopspring/decimal"
)

type WalletLedgerRepository interface {
	Create(ctx context.Context, p model.WalletTransactionCreateRequest) (*model.WalletTransaction, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.WalletTransaction, error)
}

type WalletUserRepository interface {
	CreditBalance(ctx context.Context, userID string, amount decimal.Decimal) error
	DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) error
	SetWalletBalance(ctx context.Context, userID string, amount decimal.Decimal) (*model.User, error)
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type WalletService struct {
	ledgerRepo WalletLedgerRepository
	userRepo   WalletUserRepository
}

func NewWalletService(ledgerRepo WalletLedgerRepository, userRepo WalletUserRepository) *WalletService {
	return &WalletService{
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
	}
}

func (s *WalletService) ListTransactions(ctx context.Context, userID string, limit int) ([]*model.WalletTransaction, error) {
	return s.ledgerRepo.ListByUser(ctx, userID, limit)
}

// CreateTransaction appends a ledger row and applies its balance effect in a
// single database transaction, so the ledger and the wallet can never drift
// apart. Debits that would overdraw the wallet fail with
// ErrInsufficientBalance and leave no ledger row behind.
func (s *WalletService) CreateTransaction(ctx context.Context, p model.WalletTransactionCreateRequest) (*model.WalletTransaction, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	var created *model.WalletTransaction
	err := s.userRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		switch {
		case p.Type.Debit():
			if err := s.userRepo.DebitBalance(ctx, p.UserID, p.Amount); err != nil {
				return err
			}
		case p.Type.Credit():
			if err := s.userRepo.CreditBalance(ctx, p.UserID, p.Amount); err != nil {
				return err
			}
		default:
			// Escrow rows record a hold; the balance is untouched.
		}

		row, err := s.ledgerRepo.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("append ledger row: %w", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.IncWalletMovement(string(p.Type))
	return created, nil
}

// SetBalance overwrites the wallet with an absolute value. Kept for the
// balance PATCH endpoint; everything internal goes through the ledger.
func (s *WalletService) SetBalance(ctx context.Context, userID string, amount decimal.Decimal) (*model.User, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: balance must not be negative", ErrInvalidInput)
	}
	return s.userRepo.SetWalletBalance(ctx, userID, amount)
}
