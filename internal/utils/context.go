package utils

import (
	"context"
	"errors"

	"github.com/civicgrid/civicwatch/models"
)

type ctxKey string

const (
	// UserEmailCtxKey carries the authenticated user's email through the
	// request context.
	UserEmailCtxKey ctxKey = "userEmail"
	// RoleCtxKey carries the authenticated user's role through the request
	// context.
	RoleCtxKey ctxKey = "role"
)

var ErrNoUserInContext = errors.New("no authenticated user in context")

// UserEmailFromContext returns the authenticated user's email stored by the
// auth middleware, or ErrNoUserInContext if the request was not
// authenticated.
func UserEmailFromContext(ctx context.Context) (string, error) {
	email, ok := ctx.Value(UserEmailCtxKey).(string)
	if !ok || email == "" {
		return "", ErrNoUserInContext
	}
	return email, nil
}

// RoleFromContext returns the authenticated user's role stored by the auth
// middleware, or ErrNoUserInContext if the request was not authenticated.
func RoleFromContext(ctx context.Context) (models.Role, error) {
	role, ok := ctx.Value(RoleCtxKey).(models.Role)
	if !ok || role == "" {
		return "", ErrNoUserInContext
	}
	return role, nil
}
