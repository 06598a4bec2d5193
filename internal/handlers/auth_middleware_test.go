package handlers

import (
	"testing"

	"github.com/nimasrn/marketplace/internal/auth"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
	"github.com/stretchr/testify/assert"
)

type staticResolver struct {
	sessions map[string]string
}

func (r *staticResolver) Resolve(token string) (string, error) {
	if userID, ok := r.sessions[token]; ok {
		return userID, nil
	}
	return "", auth.ErrUnauthenticated
}

func TestAuthMiddleware_Require(t *testing.T) {
	m := NewAuthMiddleware(&staticResolver{
		sessions: map[string]string{"good-token": "user-1"},
	})

	var seenCaller string
	protected := m.Require(func(ctx *xhttp.RequestCtx) {
		seenCaller = callerID(ctx)
		writeJSON(ctx, 200, map[string]string{"ok": "true"})
	})

	t.Run("bearer token passes", func(t *testing.T) {
		seenCaller = ""
		ctx := setupTestContext("GET", "/api/orders", nil)
		ctx.Request.Header.Set("Authorization", "Bearer good-token")

		protected(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Equal(t, "user-1", seenCaller)
	})

	t.Run("session cookie passes", func(t *testing.T) {
		seenCaller = ""
		ctx := setupTestContext("GET", "/api/orders", nil)
		ctx.Request.Header.SetCookie("session_token", "good-token")

		protected(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Equal(t, "user-1", seenCaller)
	})

	t.Run("missing token is 401 before the handler", func(t *testing.T) {
		seenCaller = ""
		ctx := setupTestContext("GET", "/api/orders", nil)

		protected(ctx)

		assert.Equal(t, 401, ctx.Response.StatusCode())
		assert.Empty(t, seenCaller)
	})

	t.Run("unknown token is 401", func(t *testing.T) {
		ctx := setupTestContext("GET", "/api/orders", nil)
		ctx.Request.Header.Set("Authorization", "Bearer bad-token")

		protected(ctx)

		assert.Equal(t, 401, ctx.Response.StatusCode())
	})
}
