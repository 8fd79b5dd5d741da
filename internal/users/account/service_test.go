// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/storage"
	"github.com/harukimai/cosona/internal/users/account"
	"github.com/harukimai/cosona/internal/users/auth"
)

// fakeRepository is an in-memory stand-in for the Postgres account store.
type fakeRepository struct {
	byID       map[string]*auth.User
	byUsername map[string]*auth.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:       map[string]*auth.User{},
		byUsername: map[string]*auth.User{},
	}
}

func (r *fakeRepository) add(user *auth.User) {
	r.byID[user.ID] = user
	r.byUsername[user.Username] = user
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (r *fakeRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, ok := r.byUsername[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (r *fakeRepository) UpdateProfile(_ context.Context, id string, input account.UpdateProfileInput) error {
	user, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.Website != nil {
		user.Website = *input.Website
	}
	return nil
}

func newTestService(t *testing.T) (*account.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return account.NewService(repo, storage.NewResolver(nil), slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestGetPublicProfile_Identifier verifies lookup dispatch: canonical UUIDs
go to the ID lookup, everything else to the username lookup. A username
that happens to be exactly as long as a UUID must still route to the
username lookup.
*/
func TestGetPublicProfile_Identifier(t *testing.T) {
	service, repo := newTestService(t)

	const id = "0192b1c2-0000-7000-8000-abcdefabcdef"
	const longName = "cosplay-photography-enthusiast-tokyo" // same length as a UUID

	repo.add(&auth.User{ID: id, Username: "sakura", DisplayName: "Sakura"})
	repo.add(&auth.User{ID: "u2", Username: longName, DisplayName: "Photo Fan"})

	byID, err := service.GetPublicProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Sakura", byID.DisplayName)

	byName, err := service.GetPublicProfile(context.Background(), "sakura")
	require.NoError(t, err)
	assert.Equal(t, "Sakura", byName.DisplayName)

	byLongName, err := service.GetPublicProfile(context.Background(), longName)
	require.NoError(t, err)
	assert.Equal(t, "Photo Fan", byLongName.DisplayName)
}

/*
TestGetPublicProfile_StripsPrivateFields verifies the safety mapping: the
public view never carries the email address.
*/
func TestGetPublicProfile_StripsPrivateFields(t *testing.T) {
	service, repo := newTestService(t)
	repo.add(&auth.User{
		ID:       "u1",
		Username: "sakura",
		Email:    "sakura@example.jp",
		Bio:      "Armor builder.",
	})

	profile, err := service.GetPublicProfile(context.Background(), "sakura")
	require.NoError(t, err)
	assert.Equal(t, "sakura", profile.Username)
	assert.Equal(t, "Armor builder.", profile.Bio)
	assert.Empty(t, profile.AvatarURL)
}

/*
TestUpdateProfile verifies partial updates and the refreshed profile in
the response.
*/
func TestUpdateProfile(t *testing.T) {
	service, repo := newTestService(t)
	repo.add(&auth.User{ID: "u1", Username: "sakura", DisplayName: "Sakura"})

	bio := "Wig styling and EVA foam."
	updated, err := service.UpdateProfile(context.Background(), "u1", account.UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "Sakura", updated.DisplayName)

	_, err = service.UpdateProfile(context.Background(), "missing", account.UpdateProfileInput{Bio: &bio})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
