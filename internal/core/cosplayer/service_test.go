// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package cosplayer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimai/cosona/internal/core/cosplayer"
	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/reqcache"
	"github.com/harukimai/cosona/internal/platform/storage"
	"github.com/harukimai/cosona/pkg/listview"
)

// fakeRepository is an in-memory stand-in for the Postgres directory.
type fakeRepository struct {
	byID    map[string]*cosplayer.Cosplayer
	listErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[string]*cosplayer.Cosplayer{}}
}

func (r *fakeRepository) List(_ context.Context, filter cosplayer.Filter, _, _ int) ([]*cosplayer.Cosplayer, int, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var items []*cosplayer.Cosplayer
	for _, c := range r.byID {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		items = append(items, c)
	}
	return items, len(items), nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*cosplayer.Cosplayer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("Cosplayer")
	}
	copied := *c
	return &copied, nil
}

func (r *fakeRepository) Create(_ context.Context, c *cosplayer.Cosplayer) error {
	copied := *c
	r.byID[c.ID] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, id string, patch cosplayer.Patch) error {
	c, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("Cosplayer")
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.NotFound("Cosplayer")
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRepository) IncrementPopularity(_ context.Context, id string, delta int) (int, error) {
	c, ok := r.byID[id]
	if !ok {
		return 0, apperr.NotFound("Cosplayer")
	}
	c.Popularity += delta
	return c.Popularity, nil
}

func newTestService(t *testing.T) (*cosplayer.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return cosplayer.NewService(repo, storage.NewResolver(nil), slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestCreateCosplayer_Defaults verifies identity assignment and the pending
moderation default.
*/
func TestCreateCosplayer_Defaults(t *testing.T) {
	service, repo := newTestService(t)

	c := &cosplayer.Cosplayer{Name: "Sakura Ayane", Character: "Nezuko Kamado"}
	require.NoError(t, service.CreateCosplayer(context.Background(), c))

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, cosplayer.StatusPending, c.Status)
	assert.NotNil(t, c.Tags)

	_, ok := repo.byID[c.ID]
	assert.True(t, ok)
}

/*
TestCreateCosplayer_Validation verifies name presence and status vocabulary.
*/
func TestCreateCosplayer_Validation(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		name      string
		cosplayer cosplayer.Cosplayer
	}{
		{"no_name", cosplayer.Cosplayer{Character: "Nezuko"}},
		{"blank_name", cosplayer.Cosplayer{Name: "   "}},
		{"unknown_status", cosplayer.Cosplayer{Name: "Sakura", Status: "banned"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreateCosplayer(context.Background(), &tt.cosplayer)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

/*
TestListCosplayers_Degrades verifies that public list reads swallow storage
failures into an empty directory page.
*/
func TestListCosplayers_Degrades(t *testing.T) {
	service, repo := newTestService(t)
	repo.listErr = errors.New("connection refused")

	items, total, err := service.ListCosplayers(context.Background(), cosplayer.Filter{}, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

/*
TestGetCosplayer_NotFound verifies that single lookups surface the 404
instead of degrading.
*/
func TestGetCosplayer_NotFound(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.GetCosplayer(context.Background(), "missing")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

/*
TestLikeCosplayer verifies the popularity bump returns the incremented
counter.
*/
func TestLikeCosplayer(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["c1"] = &cosplayer.Cosplayer{ID: "c1", Name: "Sakura", Popularity: 41}

	popularity, err := service.LikeCosplayer(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 42, popularity)
	assert.Equal(t, 42, repo.byID["c1"].Popularity)
}

/*
TestBrowseCosplayers verifies that the browse surface only sees active
profiles and honours the search pipeline.
*/
func TestBrowseCosplayers(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["c1"] = &cosplayer.Cosplayer{ID: "c1", Name: "Sakura", Character: "Nezuko Kamado", Status: cosplayer.StatusActive}
	repo.byID["c2"] = &cosplayer.Cosplayer{ID: "c2", Name: "Hana", Character: "Rem", Status: cosplayer.StatusPending}

	result := service.BrowseCosplayers(context.Background(), listview.State{
		Search: "nezuko",
		SortBy: listview.SortNewest,
		Page:   1,
	})

	require.Len(t, result.PageItems, 1)
	assert.Equal(t, "Sakura", result.PageItems[0].Name)
}

/*
TestGetCosplayer_CachedReadIsStable verifies that repeated reads of one
profile within a single request return the same servable image URL: the
stored path resolves once, before the profile enters the request cache.
*/
func TestGetCosplayer_CachedReadIsStable(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["c1"] = &cosplayer.Cosplayer{
		ID:           "c1",
		Name:         "Sakura",
		Character:    "Nezuko Kamado",
		ProfileImage: "portraits/sakura.jpg",
	}

	ctx := reqcache.With(context.Background(), reqcache.New())

	first, err := service.GetCosplayer(ctx, "c1")
	require.NoError(t, err)
	firstURL := first.ProfileImage
	assert.Contains(t, firstURL, "portraits%2Fsakura.jpg")

	second, err := service.GetCosplayer(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, firstURL, second.ProfileImage)
}
