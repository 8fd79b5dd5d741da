// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository abstracts persistent storage of user accounts.
type UserRepository interface {
	FindByID(context context.Context, id string) (*User, error)
	FindByEmail(context context.Context, email string) (*User, error)
	FindByUsername(context context.Context, username string) (*User, error)
	Create(context context.Context, user *User) error
	UpdatePassword(context context.Context, id, passwordHash string) error
}

// SessionRepository abstracts refresh-session storage.
//
// Sessions are addressed by the hash of their refresh token; the plain
// token never reaches storage.
type SessionRepository interface {
	Create(context context.Context, session *Session, ttl time.Duration) error
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)
	Revoke(context context.Context, tokenHash string) error
	RevokeAll(context context.Context, userID string) error
}
