package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/pkg/prom"
	"github.com/shopspring/decimal"
)

var (
	ErrListingUnavailable = errors.New("listing is not available for purchase")
	ErrSellerMismatch     = errors.New("seller does not own the listing")
)

type OrderRepository interface {
	Create(ctx context.Context, p model.OrderCreateRequest) (*model.Order, error)
	Get(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) (*model.Order, error)
}

type OrderListingRepository interface {
	Get(ctx context.Context, id int64) (*model.Listing, error)
	UpdateStatus(ctx context.Context, id int64, status model.ListingStatus) error
}

type OrderUserRepository interface {
	CreditBalance(ctx context.Context, userID string, amount decimal.Decimal) error
	RecordSale(ctx context.Context, sellerID string, amount decimal.Decimal) error
	RecordPurchase(ctx context.Context, buyerID string, amount decimal.Decimal) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type OrderLedgerRepository interface {
	Create(ctx context.Context, p model.WalletTransactionCreateRequest) (*model.WalletTransaction, error)
}

type OrderService struct {
	orderRepo   OrderRepository
	listingRepo OrderListingRepository
	userRepo    OrderUserRepository
	ledgerRepo  OrderLedgerRepository
}

func NewOrderService(orderRepo OrderRepository, listingRepo OrderListingRepository, userRepo OrderUserRepository, ledgerRepo OrderLedgerRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Create opens a pending order. The listing must still be active and owned
// by the named seller; funds do not move until settlement.
func (s *OrderService) Create(ctx context.Context, p model.OrderCreateRequest) (*model.Order, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	listing, err := s.listingRepo.Get(ctx, p.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != model.ListingStatusActive {
		return nil, ErrListingUnavailable
	}
	if listing.SellerID != p.SellerID {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, ErrSellerMismatch)
	}

	order, err := s.orderRepo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	prom.IncOrderCreated(order.PaymentMethod)
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	return s.orderRepo.Get(ctx, id)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// UpdateStatus moves an order through its lifecycle. Illegal transitions are
// rejected before anything is written. The completed transition settles the
// order: status write, listing marked sold, seller credited, lifetime
// counters bumped and the sale ledger row appended — all inside a single
// database transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, callerID string, id int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, status)
	}

	order, err := s.orderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != callerID && order.SellerID != callerID {
		return nil, ErrForbidden
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: order %s -> %s", model.ErrIllegalTransition, order.Status, status)
	}

	if status != model.OrderStatusCompleted {
		updated, err := s.orderRepo.UpdateStatus(ctx, id, order.Status, status)
		if err != nil {
			return nil, err
		}
		prom.IncOrderSettled(string(status))
		return updated, nil
	}

	started := time.Now()
	var settled *model.Order
	err = s.userRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		updated, err := s.orderRepo.UpdateStatus(ctx, id, order.Status, model.OrderStatusCompleted)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		settled = updated

		listing, err := s.listingRepo.Get(ctx, order.ListingID)
		if err != nil {
			return fmt.Errorf("load listing: %w", err)
		}
		// A listing already off the market (sold, suspended, deleted) is
		// left alone; only an active one flips to sold.
		if listing.Status == model.ListingStatusActive {
			if err := s.listingRepo.UpdateStatus(ctx, order.ListingID, model.ListingStatusSold); err != nil {
				return fmt.Errorf("mark listing sold: %w", err)
			}
		}

		if err := s.userRepo.CreditBalance(ctx, order.SellerID, order.Amount); err != nil {
			return fmt.Errorf("credit seller: %w", err)
		}
		if err := s.userRepo.RecordSale(ctx, order.SellerID, order.Amount); err != nil {
			return fmt.Errorf("record sale: %w", err)
		}
		if err := s.userRepo.RecordPurchase(ctx, order.BuyerID, order.Amount); err != nil {
			return fmt.Errorf("record purchase: %w", err)
		}

		_, err = s.ledgerRepo.Create(ctx, model.WalletTransactionCreateRequest{
			UserID:      order.SellerID,
			Type:        model.TransactionTypeSale,
			Amount:      order.Amount,
			Description: fmt.Sprintf("Sale proceeds for order #%d", order.ID),
			OrderID:     &order.ID,
		})
		if err != nil {
			return fmt.Errorf("append sale ledger row: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.IncOrderSettled(string(model.OrderStatusCompleted))
	prom.AddOrderSettlementDuration(time.Since(started).Seconds())
	return settled, nil
}
