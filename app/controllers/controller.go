// Package controllers adapts HTTP requests to service calls.
package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/middleware"
)

// Identity resolves the subject of a verified access token.
type Identity interface {
	Resolve(ctx context.Context, subject string) (*models.User, error)
}

// currentUser loads the caller set by middleware.Authenticate. On failure
// the response has been written.
func currentUser(c *ctx.Context, ids Identity) (*models.User, bool) {
	subject, ok := middleware.SubjectFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return nil, false
	}
	user, err := ids.Resolve(c.Context(), subject)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return user, true
}

// staffUser is currentUser plus the role gate of op. It runs before the
// path or body is read, so callers without the role always get 403.
func staffUser(c *ctx.Context, ids Identity, op services.Operation) (*models.User, bool) {
	user, ok := currentUser(c, ids)
	if !ok {
		return nil, false
	}
	if err := services.Authorize(user, op); err != nil {
		fail(c, err)
		return nil, false
	}
	return user, true
}

// idParam reads the {id} path parameter.
func idParam(c *ctx.Context) (uint, bool) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.ValidationError(map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// fail writes err as an envelope. Untyped errors are logged and hidden.
func fail(c *ctx.Context, err error) {
	var se *services.Error
	if !errors.As(err, &se) {
		logger.WithCtx(c.Context()).Error().Err(err).
			Str("method", c.R.Method).
			Str("path", c.R.URL.Path).
			Msg("request failed")
		c.Error(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if se.Kind == services.KindValidation && len(se.Fields) > 0 {
		c.ValidationError(se.Fields)
		return
	}
	c.Error(services.Status(err), se.Error())
}
