package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ListingStatus is the lifecycle state of a listing.
type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusSuspended ListingStatus = "suspended"
	ListingStatusDeleted   ListingStatus = "deleted"
)

var listingTransitions = map[ListingStatus][]ListingStatus{
	ListingStatusActive:    {ListingStatusSold, ListingStatusSuspended, ListingStatusDeleted},
	ListingStatusSuspended: {ListingStatusActive, ListingStatusDeleted},
	ListingStatusSold:      {ListingStatusDeleted},
	ListingStatusDeleted:   {},
}

func (s ListingStatus) Valid() bool {
	_, ok := listingTransitions[s]
	return ok
}

// CanTransitionTo reports whether the listing may move from s to next.
// "deleted" is terminal.
func (s ListingStatus) CanTransitionTo(next ListingStatus) bool {
	for _, t := range listingTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Attributes is a free-form blob persisted as JSON text. Works on both
// postgres (jsonb) and the sqlite used in tests.
type Attributes map[string]any

func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Attributes) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return fmt.Errorf("attributes: cannot scan %T", src)
}

type Listing struct {
	ID                int64           `json:"id"`
	SellerID          string          `json:"seller_id"`
	CategoryID        int64           `json:"category_id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	ImageURL          string          `json:"image_url"`
	Platform          string          `json:"platform"`
	AccountDetails    Attributes      `json:"account_details"`
	IsInstantDelivery bool            `json:"is_instant_delivery"`
	Status            ListingStatus   `json:"status"`
	Views             int             `json:"views"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type ListingCreateRequest struct {
	SellerID          string
	CategoryID        int64
	Title             string
	Description       string
	Price             decimal.Decimal
	ImageURL          string
	Platform          string
	AccountDetails    Attributes
	IsInstantDelivery bool
}

func (p ListingCreateRequest) Validate() error {
	if p.SellerID == "" {
		return errors.New("seller_id is required")
	}
	if p.CategoryID == 0 {
		return errors.New("category_id is required")
	}
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.Description == "" {
		return errors.New("description is required")
	}
	if !p.Price.IsPositive() {
		return errors.New("price must be greater than zero")
	}
	return nil
}

// ListingUpdateRequest carries the mutable listing fields. Nil pointers are
// left untouched.
type ListingUpdateRequest struct {
	Title             *string
	Description       *string
	Price             *decimal.Decimal
	ImageURL          *string
	Platform          *string
	AccountDetails    Attributes
	IsInstantDelivery *bool
	Status            *ListingStatus
}

func (p ListingUpdateRequest) Validate() error {
	if p.Price != nil && !p.Price.IsPositive() {
		return errors.New("price must be greater than zero")
	}
	if p.Status != nil && !p.Status.Valid() {
		return errors.New("unknown listing status")
	}
	return nil
}
