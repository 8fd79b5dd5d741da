// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimai/cosona/internal/platform/ctxutil"
	"github.com/harukimai/cosona/internal/platform/sec"
)

/*
TestRequestID verifies round-tripping of the correlation ID and the empty
fallback outside a traced request.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-7f3a")
	assert.Equal(t, "req-7f3a", ctxutil.GetRequestID(ctx))
}

/*
TestLogger verifies that a bare context yields the process default logger
while a request context yields its scoped logger.
*/
func TestLogger(t *testing.T) {
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(context.Background()))

	scoped := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := ctxutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, ctxutil.GetLogger(ctx))
}

/*
TestAuthUser verifies that claims round-trip and that an anonymous visitor
reads as nil rather than a zero value.
*/
func TestAuthUser(t *testing.T) {
	assert.Nil(t, ctxutil.GetAuthUser(context.Background()))

	claims := &sec.AuthClaims{UserID: "member-42", Role: "admin"}
	ctx := ctxutil.WithAuthUser(context.Background(), claims)

	got := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "member-42", got.UserID)
	assert.Equal(t, "admin", got.Role)
}
