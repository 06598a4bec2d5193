package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/pkg/pg"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository struct {
	*pg.DB
}

func NewOrderRepository(db *pg.DB) *OrderRepository {
	return &OrderRepository{
		db,
	}
}

// Create inserts a new order in the pending state. Escrow is held until the
// order settles; escrow_released starts false and completed_at null.
func (r *OrderRepository) Create(ctx context.Context, p model.OrderCreateRequest) (*model.Order, error) {
	entity := &OrderEntity{
		BuyerID:         p.BuyerID,
		SellerID:        p.SellerID,
		ListingID:       p.ListingID,
		Amount:          p.Amount,
		Status:          string(model.OrderStatusPending),
		PaymentMethod:   p.PaymentMethod,
		DeliveryDetails: p.DeliveryDetails,
	}
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toOrderModel(entity), nil
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*model.Order, error) {
	var entity OrderEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return toOrderModel(&entity), nil
}

// ListByUser returns every order the user participates in, on either side
// of the trade, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var entities []*OrderEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toOrderModels(entities), nil
}

// UpdateStatus writes the new status as a compare-and-swap against the
// status the caller observed: a concurrent writer that got there first makes
// the WHERE clause miss and the transition fails instead of settling twice.
// The completed transition carries its side effects in the same write:
// escrow_released flips true and completed_at is stamped exactly once. No
// other status touches either field.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) (*model.Order, error) {
	updates := map[string]any{
		"status": string(to),
	}
	if to == model.OrderStatusCompleted {
		updates["escrow_released"] = true
		updates["completed_at"] = time.Now()
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&OrderEntity{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing order from a stale status.
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, model.ErrIllegalTransition
	}
	return r.Get(ctx, id)
}
