package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/marketplace/internal/model"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
)

type UserService interface {
	Get(ctx context.Context, id string) (*model.User, error)
	Upsert(ctx context.Context, p model.UserUpsertRequest) (*model.User, error)
}

type UserHandler struct {
	svc UserService
}

func RegisterUserRoutes(e *router.Group, h *UserHandler, m *AuthMiddleware) {
	e.GET("/auth/user", m.Require(h.GetCurrentUser))
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		svc: userService,
	}
}

func (h *UserHandler) GetCurrentUser(ctx *xhttp.RequestCtx) {
	user, err := h.svc.Get(ctx, callerID(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, user)
}
