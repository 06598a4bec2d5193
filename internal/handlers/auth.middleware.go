package handlers

import (
	"strings"

	"github.com/nimasrn/marketplace/internal/auth"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
)

const callerKey = "caller_id"

type AuthMiddleware struct {
	resolver auth.CallerResolver
}

func NewAuthMiddleware(resolver auth.CallerResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Require rejects the request with 401 before the handler runs unless a
// valid session token is presented. The resolved caller id is stashed on
// the request ctx for callerID.
func (m *AuthMiddleware) Require(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		userID, err := m.resolver.Resolve(sessionToken(ctx))
		if err != nil {
			writeError(ctx, 401, "unauthenticated")
			return
		}
		ctx.SetUserValue(callerKey, userID)
		next(ctx)
	}
}

// sessionToken pulls the token from the Authorization header, falling back
// to the session_token cookie set by the identity provider.
func sessionToken(ctx *xhttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return string(ctx.Request.Header.Cookie("session_token"))
}

func callerID(ctx *xhttp.RequestCtx) string {
	if v, ok := ctx.UserValue(callerKey).(string); ok {
		return v
	}
	return ""
}
