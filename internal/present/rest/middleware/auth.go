package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/present/rest/presenter"
	"github.com/epalau/patrimonio/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// RequireSession rejects requests without a live session and puts the
// session into the request context for handlers.
func (s *AuthMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.RequireSession")
		defer span.End()

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return presenter.Unauthorized(c, "missing authorization header")
		}

		split := strings.Split(authHeader, " ")
		if len(split) != 2 || split[0] != "Bearer" {
			return presenter.Unauthorized(c, "only Bearer is acceptable")
		}

		session, err := s.auth.Resolve(ctx, split[1])
		if err != nil {
			span.RecordError(errors.Wrap(err, "AuthMiddleware.RequireSession: resolve failed"))
			if errors.Is(err, domain.ErrUnauthorized) {
				return presenter.Unauthorized(c, err.Error())
			}
			return presenter.InternalError(c, err)
		}

		ctx = context.WithValue(ctx, domain.SessionCtxKey, session)
		ctx = context.WithValue(ctx, domain.RequesterCtxKey, session.Username)
		span.SetAttributes(attribute.String("Requester", session.Username))

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
