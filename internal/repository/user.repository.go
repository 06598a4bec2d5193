package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/pkg/pg"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrConcurrentUpdate    = errors.New("concurrent update detected")
	ErrMaxRetriesExceeded  = errors.New("max retries exceeded")
)

type UserRepository struct {
	*pg.DB
}

func NewUserRepository(db *pg.DB) *UserRepository {
	return &UserRepository{
		db,
	}
}

func (r *UserRepository) Get(ctx context.Context, id string) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserModel(&entity), nil
}

// Upsert inserts the user or, on a primary-key conflict, refreshes the
// identity fields and updated_at. Marketplace counters are never touched here.
func (r *UserRepository) Upsert(ctx context.Context, p model.UserUpsertRequest) (*model.User, error) {
	entity := &UserEntity{
		ID:              p.ID,
		Email:           p.Email,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		ProfileImageURL: p.ProfileImageURL,
	}

	err := r.Write(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
		}).
		Create(entity).
		Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, p.ID)
}

// CreateIfAbsent inserts a fully-populated user row, skipping on an id
// conflict so that re-seeding stays idempotent.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, u model.User) error {
	entity := &UserEntity{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		IsVerified:      u.IsVerified,
		WalletBalance:   u.WalletBalance,
		TotalSales:      u.TotalSales,
		TotalPurchases:  u.TotalPurchases,
		SellerRating:    u.SellerRating,
		CompletedOrders: u.CompletedOrders,
	}
	return r.Write(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(entity).
		Error
}

// SetWalletBalance overwrites the balance with an absolute value supplied by
// the caller and refreshes updated_at.
func (r *UserRepository) SetWalletBalance(ctx context.Context, userID string, amount decimal.Decimal) (*model.User, error) {
	result := r.Write(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"wallet_balance": amount,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return r.Get(ctx, userID)
}

// CreditBalance performs an atomic balance addition with automatic retry
// using SELECT FOR UPDATE. Used for deposits and sale proceeds.
func (r *UserRepository) CreditBalance(ctx context.Context, userID string, amount decimal.Decimal) error {
	return r.withBalanceRetry(ctx, func() error {
		return r.creditBalanceAttempt(ctx, userID, amount)
	})
}

// DebitBalance performs an atomic balance deduction. Fails with
// ErrInsufficientBalance when the wallet cannot cover the amount, so a
// balance can never go negative.
func (r *UserRepository) DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) error {
	return r.withBalanceRetry(ctx, func() error {
		return r.debitBalanceAttempt(ctx, userID, amount)
	})
}

func (r *UserRepository) withBalanceRetry(ctx context.Context, attempt func() error) error {
	const maxRetries = 3
	const baseDelay = 2 * time.Millisecond

	for i := 0; i <= maxRetries; i++ {
		err := attempt()
		if err == nil {
			return nil
		}

		// Permanent errors are not retried.
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInsufficientBalance) {
			return err
		}

		if i < maxRetries {
			delay := baseDelay * time.Duration(1<<i)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
	}

	return fmt.Errorf("%w: failed after %d attempts", ErrMaxRetriesExceeded, maxRetries+1)
}

func (r *UserRepository) creditBalanceAttempt(ctx context.Context, userID string, amount decimal.Decimal) error {
	var entity UserEntity

	err := r.Write(ctx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Where("id = ?", userID).
		Update("wallet_balance", entity.WalletBalance.Add(amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) debitBalanceAttempt(ctx context.Context, userID string, amount decimal.Decimal) error {
	var entity UserEntity

	err := r.Write(ctx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if entity.WalletBalance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Where("id = ?", userID).
		Update("wallet_balance", entity.WalletBalance.Sub(amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

// RecordSale bumps the seller's lifetime counters after a settled order.
func (r *UserRepository) RecordSale(ctx context.Context, sellerID string, amount decimal.Decimal) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Where("id = ?", sellerID).
		Updates(map[string]any{
			"total_sales":      gorm.Expr("total_sales + ?", amount),
			"completed_orders": gorm.Expr("completed_orders + 1"),
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RecordPurchase bumps the buyer's lifetime purchase volume.
func (r *UserRepository) RecordPurchase(ctx context.Context, buyerID string, amount decimal.Decimal) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Where("id = ?", buyerID).
		Updates(map[string]any{
			"total_purchases": gorm.Expr("total_purchases + ?", amount),
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetSellerRating overwrites the cached seller rating aggregate.
func (r *UserRepository) SetSellerRating(ctx context.Context, sellerID string, rating decimal.Decimal) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Where("id = ?", sellerID).
		Update("seller_rating", rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
