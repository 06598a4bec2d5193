package repository

import (
	"time"

	"github.com/nimasrn/marketplace/internal/model"
	"github.com/shopspring/decimal"
)

type ListingEntity struct {
	ID                int64            `db:"id"                  gorm:"primaryKey;autoIncrement;column:id"`
	SellerID          string           `db:"seller_id"           gorm:"column:seller_id;not null;index"`
	Seller            *UserEntity      `gorm:"foreignKey:SellerID;references:ID"`
	CategoryID        int64            `db:"category_id"         gorm:"column:category_id;not null;index"`
	Category          *CategoryEntity  `gorm:"foreignKey:CategoryID;references:ID"`
	Title             string           `db:"title"               gorm:"column:title;not null"`
	Description       string           `db:"description"         gorm:"column:description;not null"`
	Price             decimal.Decimal  `db:"price"               gorm:"column:price;type:decimal(10,2);not null"`
	ImageURL          string           `db:"image_url"           gorm:"column:image_url"`
	Platform          string           `db:"platform"            gorm:"column:platform"`
	AccountDetails    model.Attributes `db:"account_details"     gorm:"column:account_details;type:jsonb"`
	IsInstantDelivery bool             `db:"is_instant_delivery" gorm:"column:is_instant_delivery;default:false"`
	Status            string           `db:"status"              gorm:"column:status;not null;default:active;index"`
	Views             int              `db:"views"               gorm:"column:views;default:0"`
	CreatedAt         time.Time        `db:"created_at"          gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `db:"updated_at"          gorm:"column:updated_at;autoUpdateTime"`
}

func (ListingEntity) TableName() string {
	return "listings"
}

func toListingEntity(m *model.Listing) *ListingEntity {
	if m == nil {
		return nil
	}
	return &ListingEntity{
		ID:                m.ID,
		SellerID:          m.SellerID,
		CategoryID:        m.CategoryID,
		Title:             m.Title,
		Description:       m.Description,
		Price:             m.Price,
		ImageURL:          m.ImageURL,
		Platform:          m.Platform,
		AccountDetails:    m.AccountDetails,
		IsInstantDelivery: m.IsInstantDelivery,
		Status:            string(m.Status),
		Views:             m.Views,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toListingModel(e *ListingEntity) *model.Listing {
	if e == nil {
		return nil
	}
	return &model.Listing{
		ID:                e.ID,
		SellerID:          e.SellerID,
		CategoryID:        e.CategoryID,
		Title:             e.Title,
		Description:       e.Description,
		Price:             e.Price,
		ImageURL:          e.ImageURL,
		Platform:          e.Platform,
		AccountDetails:    e.AccountDetails,
		IsInstantDelivery: e.IsInstantDelivery,
		Status:            model.ListingStatus(e.Status),
		Views:             e.Views,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func toListingModels(entities []*ListingEntity) []*model.Listing {
	models := make([]*model.Listing, len(entities))
	for i, e := range entities {
		models[i] = toListingModel(e)
	}
	return models
}
