package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ctxBillerID contextKey = "biller_id"
	ctxRole     contextKey = "biller_role"
)

// BillerIDFromContext returns the authenticated biller id, or uuid.Nil when
// the request is unauthenticated.
func BillerIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxBillerID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// RoleFromContext returns the authenticated biller role string.
func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WithBiller seeds the context with the biller identity, used by the auth
// middleware and by handler tests.
func WithBiller(ctx context.Context, billerID uuid.UUID, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxBillerID, billerID)
	return context.WithValue(ctx, ctxRole, role)
}
