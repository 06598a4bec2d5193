package repository

import (
	"time"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/shopspring/decimal"
)

type UserEntity struct {
	ID              string          `db:"id"                gorm:"primaryKey;column:id"`
	Email           string          `db:"email"             gorm:"column:email;uniqueIndex"`
	FirstName       string          `db:"first_name"        gorm:"column:first_name"`
	LastName        string          `db:"last_name"         gorm:"column:last_name"`
	ProfileImageURL string          `db:"profile_image_url" gorm:"column:profile_image_url"`
	IsVerified      bool            `db:"is_verified"       gorm:"column:is_verified;default:false"`
	WalletBalance   decimal.Decimal `db:"wallet_balance"    gorm:"column:wallet_balance;type:decimal(10,2);default:0"`
	TotalSales      decimal.Decimal `db:"total_sales"       gorm:"column:total_sales;type:decimal(10,2);default:0"`
	TotalPurchases  decimal.Decimal `db:"total_purchases"   gorm:"column:total_purchases;type:decimal(10,2);default:0"`
	SellerRating    decimal.Decimal `db:"seller_rating"     gorm:"column:seller_rating;type:decimal(3,2);default:0"`
	CompletedOrders int             `db:"completed_orders"  gorm:"column:completed_orders;default:0"`
	CreatedAt       time.Time       `db:"created_at"        gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `db:"updated_at"        gorm:"column:updated_at;autoUpdateTime"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:              e.ID,
		Email:           e.Email,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		ProfileImageURL: e.ProfileImageURL,
		IsVerified:      e.IsVerified,
		WalletBalance:   e.WalletBalance,
		TotalSales:      e.TotalSales,
		TotalPurchases:  e.TotalPurchases,
		SellerRating:    e.SellerRating,
		CompletedOrders: e.CompletedOrders,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
