package model

import (
	"errors"
	"time"
)

type Review struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"order_id"`
	ReviewerID string    `json:"reviewer_id"`
	RevieweeID string    `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewCreateRequest struct {
	OrderID    int64
	ReviewerID string
	RevieweeID string
	Rating     int
	Comment    string
}

func (p ReviewCreateRequest) Validate() error {
	if p.OrderID == 0 {
		return errors.New("order_id is required")
	}
	if p.ReviewerID == "" {
		return errors.New("reviewer_id is required")
	}
	if p.RevieweeID == "" {
		return errors.New("reviewee_id is required")
	}
	if p.Rating < 1 || p.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}
