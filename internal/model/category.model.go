package model

import (
	"errors"
	"time"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryCreateRequest struct {
	Name        string
	Slug        string
	Description string
	Icon        string
	IsActive    bool
}

func (p CategoryCreateRequest) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Slug == "" {
		return errors.New("slug is required")
	}
	return nil
}
