package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/pkg/pg"
	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("listing not found")

const defaultListingLimit = 20

type ListingRepository struct {
	*pg.DB
}

func NewListingRepository(db *pg.DB) *ListingRepository {
	return &ListingRepository{
		db,
	}
}

func (r *ListingRepository) Create(ctx context.Context, p model.ListingCreateRequest) (*model.Listing, error) {
	entity := &ListingEntity{
		SellerID:          p.SellerID,
		CategoryID:        p.CategoryID,
		Title:             p.Title,
		Description:       p.Description,
		Price:             p.Price,
		ImageURL:          p.ImageURL,
		Platform:          p.Platform,
		AccountDetails:    p.AccountDetails,
		IsInstantDelivery: p.IsInstantDelivery,
		Status:            string(model.ListingStatusActive),
	}
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toListingModel(entity), nil
}

// Count reports the total number of listing rows in any status. The seeder
// uses it to decide whether sample listings are already in place.
func (r *ListingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&ListingEntity{}).
		Count(&count).
		Error
	return count, err
}

func (r *ListingRepository) Get(ctx context.Context, id int64) (*model.Listing, error) {
	var entity ListingEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return toListingModel(&entity), nil
}

// ListActive returns active listings, newest first. Anything not "active"
// never appears in a public query.
func (r *ListingRepository) ListActive(ctx context.Context, limit int) ([]*model.Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultListingLimit
	}
	var entities []*ListingEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("status = ?", model.ListingStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toListingModels(entities), nil
}

func (r *ListingRepository) ListBySeller(ctx context.Context, sellerID string) ([]*model.Listing, error) {
	var entities []*ListingEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("seller_id = ? AND status = ?", sellerID, model.ListingStatusActive).
		Order("created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toListingModels(entities), nil
}

func (r *ListingRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*model.Listing, error) {
	var entities []*ListingEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("category_id = ? AND status = ?", categoryID, model.ListingStatusActive).
		Order("created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toListingModels(entities), nil
}

func (r *ListingRepository) Update(ctx context.Context, id int64, p model.ListingUpdateRequest) (*model.Listing, error) {
	updates := map[string]any{
		"updated_at": time.Now(),
	}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.ImageURL != nil {
		updates["image_url"] = *p.ImageURL
	}
	if p.Platform != nil {
		updates["platform"] = *p.Platform
	}
	if p.AccountDetails != nil {
		updates["account_details"] = p.AccountDetails
	}
	if p.IsInstantDelivery != nil {
		updates["is_instant_delivery"] = *p.IsInstantDelivery
	}
	if p.Status != nil {
		updates["status"] = string(*p.Status)
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&ListingEntity{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrListingNotFound
	}
	return r.Get(ctx, id)
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id int64, status model.ListingStatus) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&ListingEntity{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

// SoftDelete moves a listing to the terminal "deleted" status. Rows are
// never physically removed.
func (r *ListingRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.UpdateStatus(ctx, id, model.ListingStatusDeleted)
}

func (r *ListingRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.Write(ctx).WithContext(ctx).
		Model(&ListingEntity{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).
		Error
}
