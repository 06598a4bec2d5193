package repository

import (
	"time"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/shopspring/decimal"
)

type WalletTransactionEntity struct {
	ID            int64           `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	UserID        string          `db:"user_id"        gorm:"column:user_id;not null;index"`
	User          *UserEntity     `gorm:"foreignKey:UserID;references:ID"`
	Type          string          `db:"type"           gorm:"column:type;not null"`
	Amount        decimal.Decimal `db:"amount"         gorm:"column:amount;type:decimal(10,2);not null"`
	Description   string          `db:"description"    gorm:"column:description;not null"`
	PaymentMethod string          `db:"payment_method" gorm:"column:payment_method"`
	Status        string          `db:"status"         gorm:"column:status;not null;default:completed"`
	OrderID       *int64          `db:"order_id"       gorm:"column:order_id;index"`
	Order         *OrderEntity    `gorm:"foreignKey:OrderID;references:ID"`
	CreatedAt     time.Time       `db:"created_at"     gorm:"column:created_at;autoCreateTime"`
}

func (WalletTransactionEntity) TableName() string {
	return "wallet_transactions"
}

func toWalletTransactionModel(e *WalletTransactionEntity) *model.WalletTransaction {
	if e == nil {
		return nil
	}
	return &model.WalletTransaction{
		ID:            e.ID,
		UserID:        e.UserID,
		Type:          model.TransactionType(e.Type),
		Amount:        e.Amount,
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
		Status:        model.TransactionStatus(e.Status),
		OrderID:       e.OrderID,
		CreatedAt:     e.CreatedAt,
	}
}

func toWalletTransactionModels(entities []*WalletTransactionEntity) []*model.WalletTransaction {
	models := make([]*model.WalletTransaction, len(entities))
	for i, e := range entities {
		models[i] = toWalletTransactionModel(e)
	}
	return models
}
