// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/harukimai/cosona/internal/platform/constants"
	"github.com/harukimai/cosona/internal/platform/storage"
	"github.com/harukimai/cosona/internal/users/auth"
)

// Service orchestrates profile management business logic.
type Service struct {
	repo     AccountRepository
	resolver *storage.Resolver
	logger   *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repo AccountRepository, resolver *storage.Resolver, logger *slog.Logger) *Service {
	return &Service{repo: repo, resolver: resolver, logger: logger}
}

// GetProfile returns the full private profile of a user.
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.AvatarURL = service.resolveAvatar(user.AvatarURL)
	return user, nil
}

// GetPublicProfile resolves a member by UUID or username and returns the
// filtered public view.
func (service *Service) GetPublicProfile(context context.Context, identifier string) (*PublicProfile, error) {
	var user *auth.User
	var err error

	if isUUID(identifier) {
		user, err = service.repo.FindByID(context, identifier)
	} else {
		user, err = service.repo.FindByUsername(context, identifier)
	}
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		AvatarURL:   service.resolveAvatar(user.AvatarURL),
		Website:     user.Website,
		JoinedAt:    user.CreatedAt,
	}, nil
}

// UpdateProfile applies a partial profile update and returns the refreshed
// profile.
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	if err := service.repo.UpdateProfile(context, userID, input); err != nil {
		return nil, err
	}

	service.logger.Info("profile_updated", slog.String("user_id", userID))
	return service.GetProfile(context, userID)
}

// resolveAvatar maps a stored avatar path to a servable URL. Empty values
// stay empty since the profile surface renders its own fallback.
func (service *Service) resolveAvatar(path string) string {
	if path == "" {
		return ""
	}
	return service.resolver.Resolve(constants.BucketProfiles, path)
}

// isUUID distinguishes canonical UUID identifiers from usernames. Length
// alone is not enough: a 36-character username must still route to the
// username lookup.
func isUUID(s string) bool {
	return uuid.Validate(s) == nil
}
