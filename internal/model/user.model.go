package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	ProfileImageURL string          `json:"profile_image_url"`
	IsVerified      bool            `json:"is_verified"`
	WalletBalance   decimal.Decimal `json:"wallet_balance"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalPurchases  decimal.Decimal `json:"total_purchases"`
	SellerRating    decimal.Decimal `json:"seller_rating"`
	CompletedOrders int             `json:"completed_orders"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// UserUpsertRequest is the input for insert-or-update on the users table.
// The id comes from the external identity provider, not from us.
type UserUpsertRequest struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

func (p UserUpsertRequest) Validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	return nil
}
