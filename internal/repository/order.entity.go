package repository

import (
	"time"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/shopspring/decimal"
)

type OrderEntity struct {
	ID              int64            `db:"id"               gorm:"primaryKey;autoIncrement;column:id"`
	BuyerID         string           `db:"buyer_id"         gorm:"column:buyer_id;not null;index"`
	Buyer           *UserEntity      `gorm:"foreignKey:BuyerID;references:ID"`
	SellerID        string           `db:"seller_id"        gorm:"column:seller_id;not null;index"`
	Seller          *UserEntity      `gorm:"foreignKey:SellerID;references:ID"`
	ListingID       int64            `db:"listing_id"       gorm:"column:listing_id;not null;index"`
	Listing         *ListingEntity   `gorm:"foreignKey:ListingID;references:ID"`
	Amount          decimal.Decimal  `db:"amount"           gorm:"column:amount;type:decimal(10,2);not null"`
	Status          string           `db:"status"           gorm:"column:status;not null;default:pending;index"`
	EscrowReleased  bool             `db:"escrow_released"  gorm:"column:escrow_released;default:false"`
	PaymentMethod   string           `db:"payment_method"   gorm:"column:payment_method"`
	DeliveryDetails model.Attributes `db:"delivery_details" gorm:"column:delivery_details;type:jsonb"`
	CreatedAt       time.Time        `db:"created_at"       gorm:"column:created_at;autoCreateTime"`
	CompletedAt     *time.Time       `db:"completed_at"     gorm:"column:completed_at"`
}

func (OrderEntity) TableName() string {
	return "orders"
}

func toOrderModel(e *OrderEntity) *model.Order {
	if e == nil {
		return nil
	}
	return &model.Order{
		ID:              e.ID,
		BuyerID:         e.BuyerID,
		SellerID:        e.SellerID,
		ListingID:       e.ListingID,
		Amount:          e.Amount,
		Status:          model.OrderStatus(e.Status),
		EscrowReleased:  e.EscrowReleased,
		PaymentMethod:   e.PaymentMethod,
		DeliveryDetails: e.DeliveryDetails,
		CreatedAt:       e.CreatedAt,
		CompletedAt:     e.CompletedAt,
	}
}

func toOrderModels(entities []*OrderEntity) []*model.Order {
	models := make([]*model.Order, len(entities))
	for i, e := range entities {
		models[i] = toOrderModel(e)
	}
	return models
}
