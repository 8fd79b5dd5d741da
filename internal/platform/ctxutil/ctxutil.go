// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
Package ctxutil carries Cosona's per-request values through the context:
the request ID stamped by the tracing middleware, the request-scoped
logger derived from it, and the claims of the authenticated member.

Every accessor tolerates an absent value so handlers behave sensibly
outside an HTTP request (tests, startup code): missing IDs read as empty,
a missing logger falls back to [slog.Default], and missing claims read as
an anonymous visitor (nil).
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/harukimai/cosona/internal/platform/ctxkey"
	"github.com/harukimai/cosona/internal/platform/sec"
)

// value is the shared typed lookup under all accessors. The key type stays
// opaque here; ctxkey owns it.
func value[T any](ctx context.Context, key any) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}

// # Request Tracing

// WithRequestID attaches the request ID assigned by the tracing middleware.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the request ID, or "" outside a traced request.
func GetRequestID(ctx context.Context) string {
	id, _ := value[string](ctx, ctxkey.KeyRequestID)
	return id
}

// # Structured Logging

// WithLogger attaches a request-scoped logger, typically pre-tagged with
// the request ID and method/path.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request-scoped logger, falling back to the global
// default so log calls never need a nil check.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := value[*slog.Logger](ctx, ctxkey.KeyLogger); ok {
		return logger
	}
	return slog.Default()
}

// # Identity & Access

// WithAuthUser attaches the verified claims of the authenticated member.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns the authenticated member's claims, or nil for an
// anonymous visitor.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := value[*sec.AuthClaims](ctx, ctxkey.KeyUser)
	return claims
}
