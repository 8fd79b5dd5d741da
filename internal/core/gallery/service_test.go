// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package gallery_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimai/cosona/internal/core/gallery"
	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/reqcache"
	"github.com/harukimai/cosona/internal/platform/storage"
)

// fakeRepository is an in-memory stand-in for the Postgres gallery store.
type fakeRepository struct {
	byID    map[string]*gallery.Item
	listErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[string]*gallery.Item{}}
}

func (r *fakeRepository) List(_ context.Context, _ gallery.Filter, _, _ int) ([]*gallery.Item, int, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var items []*gallery.Item
	for _, item := range r.byID {
		items = append(items, item)
	}
	return items, len(items), nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*gallery.Item, error) {
	item, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("Gallery item")
	}
	copied := *item
	return &copied, nil
}

func (r *fakeRepository) Create(_ context.Context, item *gallery.Item) error {
	copied := *item
	r.byID[item.ID] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, id string, patch gallery.Patch) error {
	item, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("Gallery item")
	}
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.NotFound("Gallery item")
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRepository) IncrementLikes(_ context.Context, id string, delta int) (int, error) {
	item, ok := r.byID[id]
	if !ok {
		return 0, apperr.NotFound("Gallery item")
	}
	item.Likes += delta
	return item.Likes, nil
}

func newTestService(t *testing.T) (*gallery.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return gallery.NewService(repo, storage.NewResolver(nil), slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestCreateItem verifies identity assignment, tag defaulting, and the
attribution UUID check.
*/
func TestCreateItem(t *testing.T) {
	service, repo := newTestService(t)

	item := &gallery.Item{Title: "Nezuko at Comiket"}
	require.NoError(t, service.CreateItem(context.Background(), item))
	assert.NotEmpty(t, item.ID)
	assert.NotNil(t, item.Tags)
	_, ok := repo.byID[item.ID]
	assert.True(t, ok)

	badRef := "not-a-uuid"
	err := service.CreateItem(context.Background(), &gallery.Item{
		Title:       "Broken attribution",
		CosplayerID: &badRef,
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

/*
TestLikeItem verifies the atomic counter bump and the 404 for unknown items.
*/
func TestLikeItem(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["g1"] = &gallery.Item{ID: "g1", Title: "Photo", Likes: 9}

	likes, err := service.LikeItem(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, 10, likes)

	_, err = service.LikeItem(context.Background(), "missing")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

/*
TestListItems_Degrades verifies that the public gallery read swallows
storage failures into an empty page.
*/
func TestListItems_Degrades(t *testing.T) {
	service, repo := newTestService(t)
	repo.listErr = errors.New("connection refused")

	items, total, err := service.ListItems(context.Background(), gallery.Filter{}, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

/*
TestGetItem_ResolvesImage verifies that stored object paths come back as
public URLs, with the placeholder fallback for empty paths.
*/
func TestGetItem_ResolvesImage(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["g1"] = &gallery.Item{ID: "g1", Title: "Photo", ImageURL: ""}

	item, err := service.GetItem(context.Background(), "g1")
	require.NoError(t, err)
	assert.NotEmpty(t, item.ImageURL)
}

/*
TestGetItem_CachedReadIsStable verifies that repeated reads of one item
within a single request return the same servable URL: resolution happens
once, before the entity enters the request cache, so the second read must
not run the placeholder fallback again over an already-resolved URL.
*/
func TestGetItem_CachedReadIsStable(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["g1"] = &gallery.Item{ID: "g1", Title: "Photo", ImageURL: "shoots/nezuko.jpg"}

	ctx := reqcache.With(context.Background(), reqcache.New())

	first, err := service.GetItem(ctx, "g1")
	require.NoError(t, err)
	firstURL := first.ImageURL
	assert.Contains(t, firstURL, "shoots%2Fnezuko.jpg")

	second, err := service.GetItem(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, firstURL, second.ImageURL)
}
