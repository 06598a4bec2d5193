package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. "pending" is the only
// non-terminal state; completed, disputed and cancelled never transition
// again.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusDisputed  OrderStatus = "disputed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ErrIllegalTransition is returned when a status change violates the
// lifecycle of a listing or an order.
var ErrIllegalTransition = errors.New("illegal status transition")

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusCompleted, OrderStatusDisputed, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusDisputed:  {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

type Order struct {
	ID              int64           `json:"id"`
	BuyerID         string          `json:"buyer_id"`
	SellerID        string          `json:"seller_id"`
	ListingID       int64           `json:"listing_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          OrderStatus     `json:"status"`
	EscrowReleased  bool            `json:"escrow_released"`
	PaymentMethod   string          `json:"payment_method"`
	DeliveryDetails Attributes      `json:"delivery_details"`
	CreatedAt       time.Time       `json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at"`
}

type OrderCreateRequest struct {
	BuyerID         string
	SellerID        string
	ListingID       int64
	Amount          decimal.Decimal
	PaymentMethod   string
	DeliveryDetails Attributes
}

func (p OrderCreateRequest) Validate() error {
	if p.BuyerID == "" {
		return errors.New("buyer_id is required")
	}
	if p.SellerID == "" {
		return errors.New("seller_id is required")
	}
	if p.BuyerID == p.SellerID {
		return errors.New("buyer and seller must differ")
	}
	if p.ListingID == 0 {
		return errors.New("listing_id is required")
	}
	if !p.Amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	return nil
}
