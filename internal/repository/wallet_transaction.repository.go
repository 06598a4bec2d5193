package repository

import (
	"context"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/pkg/pg"
)

const defaultTransactionLimit = 10

// WalletTransactionRepository is the append-only ledger. Rows are inserted
// and read, never updated or deleted.
type WalletTransactionRepository struct {
	*pg.DB
}

func NewWalletTransactionRepository(db *pg.DB) *WalletTransactionRepository {
	return &WalletTransactionRepository{
		db,
	}
}

func (r *WalletTransactionRepository) Create(ctx context.Context, p model.WalletTransactionCreateRequest) (*model.WalletTransaction, error) {
	entity := &WalletTransactionEntity{
		UserID:        p.UserID,
		Type:          string(p.Type),
		Amount:        p.Amount,
		Description:   p.Description,
		PaymentMethod: p.PaymentMethod,
		Status:        string(model.TransactionStatusCompleted),
		OrderID:       p.OrderID,
	}
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toWalletTransactionModel(entity), nil
}

func (r *WalletTransactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.WalletTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultTransactionLimit
	}
	var entities []*WalletTransactionEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toWalletTransactionModels(entities), nil
}
