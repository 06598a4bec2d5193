package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/nimasrn/marketplace/internal/auth"
	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/internal/repository"
	"github.com/nimasrn/marketplace/internal/services"
	xhttp "github.com/nimasrn/marketplace/pkg/http"
	"github.com/nimasrn/marketplace/pkg/logger"
)

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError maps the service and repository sentinels onto HTTP
// status codes. Anything unrecognized is a 500 with the detail kept
// server-side.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeError(ctx, 400, err.Error())
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrListingNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		writeError(ctx, 404, err.Error())
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(ctx, 401, "unauthenticated")
	case errors.Is(err, services.ErrForbidden):
		writeError(ctx, 403, "forbidden")
	case errors.Is(err, model.ErrIllegalTransition),
		errors.Is(err, services.ErrListingUnavailable),
		errors.Is(err, services.ErrOrderNotCompleted):
		writeError(ctx, 409, err.Error())
	case errors.Is(err, repository.ErrInsufficientBalance):
		writeError(ctx, 422, "insufficient balance")
	default:
		logger.Error("request failed", "path", string(ctx.Path()), "error", err)
		writeError(ctx, 500, "internal server error")
	}
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func queryInt(ctx *xhttp.RequestCtx, key string, def int) int {
	if v := query(ctx, key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func param(ctx *xhttp.RequestCtx, name string) string {
	if v, ok := ctx.UserValue(name).(string); ok {
		return v
	}
	return ""
}

func paramInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	return strconv.ParseInt(param(ctx, name), 10, 64)
}
