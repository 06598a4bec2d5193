package services

import (
	"context"
	"fmt"

	"github.com/nimasrn/marketplace/internal/model"
)

type UserRepository interface {
	Get(ctx context.Context, id string) (*model.User, error)
	Upsert(ctx context.Context, p model.UserUpsertRequest) (*model.User, error)
}

type UserService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.Get(ctx, id)
}

func (s *UserService) Upsert(ctx context.Context, p model.UserUpsertRequest) (*model.User, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return s.userRepo.Upsert(ctx, p)
}
