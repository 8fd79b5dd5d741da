// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
Package account handles user profile management.

It provides functionalities for users to view and update their identity data,
and exposes a public, filtered view of member profiles.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Security: Private profile endpoints require authentication; public
    profiles strip contact data before transport.
*/
package account

import (
	"context"
	"time"

	"github.com/harukimai/cosona/internal/users/auth"
)

// # Domain Entities

// PublicProfile is the safety-mapped public view of a member account.
// It omits the email address and other private fields for transport.
type PublicProfile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Website     string    `json:"website,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// untouched.
type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	Website     *string
}

// # Repository Contracts

// AccountRepository defines the persistence contract for profile management.
type AccountRepository interface {
	FindByID(context context.Context, id string) (*auth.User, error)
	FindByUsername(context context.Context, username string) (*auth.User, error)
	UpdateProfile(context context.Context, id string, input UpdateProfileInput) error
}

// # Field Identifiers

const (
	FieldDisplayName = "display_name"
	FieldBio         = "bio"
	FieldAvatarURL   = "avatar_url"
	FieldWebsite     = "website"
)
