package repository

import (
	"time"

	"github.com/nimasrn/marketplace/internal/model"
)

type ReviewEntity struct {
	ID         int64        `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	OrderID    int64        `db:"order_id"    gorm:"column:order_id;not null;index"`
	Order      *OrderEntity `gorm:"foreignKey:OrderID;references:ID"`
	ReviewerID string       `db:"reviewer_id" gorm:"column:reviewer_id;not null"`
	Reviewer   *UserEntity  `gorm:"foreignKey:ReviewerID;references:ID"`
	RevieweeID string       `db:"reviewee_id" gorm:"column:reviewee_id;not null;index"`
	Reviewee   *UserEntity  `gorm:"foreignKey:RevieweeID;references:ID"`
	Rating     int          `db:"rating"      gorm:"column:rating;not null"`
	Comment    string       `db:"comment"     gorm:"column:comment"`
	CreatedAt  time.Time    `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (ReviewEntity) TableName() string {
	return "reviews"
}

func toReviewModel(e *ReviewEntity) *model.Review {
	if e == nil {
		return nil
	}
	return &model.Review{
		ID:         e.ID,
		OrderID:    e.OrderID,
		ReviewerID: e.ReviewerID,
		RevieweeID: e.RevieweeID,
		Rating:     e.Rating,
		Comment:    e.Comment,
		CreatedAt:  e.CreatedAt,
	}
}

func toReviewModels(entities []*ReviewEntity) []*model.Review {
	models := make([]*model.Review, len(entities))
	for i, e := range entities {
		models[i] = toReviewModel(e)
	}
	return models
}
