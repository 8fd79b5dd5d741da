// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package post_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimai/cosona/internal/core/post"
	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/reqcache"
	"github.com/harukimai/cosona/internal/platform/storage"
	"github.com/harukimai/cosona/pkg/listview"
)

// fakeRepository is an in-memory stand-in for the Postgres blog store.
type fakeRepository struct {
	byID   map[string]*post.Post
	bySlug map[string]*post.Post
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:   map[string]*post.Post{},
		bySlug: map[string]*post.Post{},
	}
}

func (r *fakeRepository) List(_ context.Context, filter post.Filter, _, _ int) ([]*post.Post, int, error) {
	var items []*post.Post
	for _, p := range r.byID {
		if filter.PublishedOnly && !p.Published {
			continue
		}
		items = append(items, p)
	}
	return items, len(items), nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*post.Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepository) FindBySlug(_ context.Context, slug string) (*post.Post, error) {
	p, ok := r.bySlug[slug]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepository) Create(_ context.Context, p *post.Post) error {
	if _, exists := r.bySlug[p.Slug]; exists {
		return apperr.Conflict("Resource already exists")
	}
	copied := *p
	r.byID[p.ID] = &copied
	r.bySlug[p.Slug] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, id string, patch post.Patch) error {
	p, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("Post")
	}
	if patch.Published != nil {
		p.Published = *patch.Published
	}
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	p, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("Post")
	}
	delete(r.bySlug, p.Slug)
	delete(r.byID, id)
	return nil
}

func newTestService(t *testing.T) (*post.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return post.NewService(repo, storage.NewResolver(nil), slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestCreatePost_DerivesSlug verifies that an omitted slug is derived from the
title.
*/
func TestCreatePost_DerivesSlug(t *testing.T) {
	service, repo := newTestService(t)

	p := &post.Post{
		Title:   "Spring Contest: Behind the Scenes!",
		Content: "Full writeup.",
	}
	require.NoError(t, service.CreatePost(context.Background(), p))

	assert.Equal(t, "spring-contest-behind-the-scenes", p.Slug)
	assert.NotEmpty(t, p.ID)
	_, ok := repo.bySlug[p.Slug]
	assert.True(t, ok)
}

/*
TestCreatePost_ClientSlugWins verifies that an explicit slug is kept as-is
instead of being rederived from the title.
*/
func TestCreatePost_ClientSlugWins(t *testing.T) {
	service, _ := newTestService(t)

	p := &post.Post{
		Title:   "Spring Contest: Behind the Scenes!",
		Slug:    "contest-recap",
		Content: "Full writeup.",
	}
	require.NoError(t, service.CreatePost(context.Background(), p))
	assert.Equal(t, "contest-recap", p.Slug)
}

/*
TestCreatePost_Validation verifies title/content presence and slug format
rules.
*/
func TestCreatePost_Validation(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		name string
		post post.Post
	}{
		{"no_title", post.Post{Content: "body"}},
		{"no_content", post.Post{Title: "Recap"}},
		{"bad_slug", post.Post{Title: "Recap", Content: "body", Slug: "Not A Slug"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreatePost(context.Background(), &tt.post)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

/*
TestCreatePost_DuplicateSlug verifies the conflict surfaced by the storage
uniqueness constraint.
*/
func TestCreatePost_DuplicateSlug(t *testing.T) {
	service, _ := newTestService(t)

	first := &post.Post{Title: "Recap", Content: "body"}
	require.NoError(t, service.CreatePost(context.Background(), first))

	second := &post.Post{Title: "Recap", Content: "other body"}
	err := service.CreatePost(context.Background(), second)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

/*
TestGetPost_Identifier verifies the UUID-or-slug dispatch. A slug that
happens to be exactly as long as a UUID must still route to the slug
lookup.
*/
func TestGetPost_Identifier(t *testing.T) {
	service, repo := newTestService(t)

	stored := &post.Post{ID: "0192b1c2-0000-7000-8000-abcdefabcdef", Slug: "contest-recap", Title: "Recap"}
	repo.byID[stored.ID] = stored
	repo.bySlug[stored.Slug] = stored

	const longSlug = "my-guide-to-armor-building-for-cons1" // same length as a UUID
	repo.bySlug[longSlug] = &post.Post{ID: "p2", Slug: longSlug, Title: "Armor Guide"}

	byID, err := service.GetPost(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Recap", byID.Title)

	bySlug, err := service.GetPost(context.Background(), "contest-recap")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, bySlug.ID)

	byLongSlug, err := service.GetPost(context.Background(), longSlug)
	require.NoError(t, err)
	assert.Equal(t, "Armor Guide", byLongSlug.Title)

	_, err = service.GetPost(context.Background(), "missing-slug")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

/*
TestBrowsePosts_PublishedOnly verifies that the browse surface never leaks
drafts.
*/
func TestBrowsePosts_PublishedOnly(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["p1"] = &post.Post{ID: "p1", Slug: "live", Title: "Live", Published: true}
	repo.byID["p2"] = &post.Post{ID: "p2", Slug: "draft", Title: "Draft", Published: false}

	result := service.BrowsePosts(context.Background(), listview.State{
		SortBy: listview.SortNewest,
		Page:   1,
	})
	require.Len(t, result.PageItems, 1)
	assert.Equal(t, "Live", result.PageItems[0].Title)
}

/*
TestGetPost_CachedReadIsStable verifies that repeated reads of one post
within a single request return the same featured image URL: the stored
path resolves once, before the post enters the request cache.
*/
func TestGetPost_CachedReadIsStable(t *testing.T) {
	service, repo := newTestService(t)
	repo.bySlug["contest-recap"] = &post.Post{
		ID:            "p1",
		Slug:          "contest-recap",
		Title:         "Recap",
		FeaturedImage: "covers/recap.jpg",
	}

	ctx := reqcache.With(context.Background(), reqcache.New())

	first, err := service.GetPost(ctx, "contest-recap")
	require.NoError(t, err)
	firstURL := first.FeaturedImage
	assert.Contains(t, firstURL, "covers%2Frecap.jpg")

	second, err := service.GetPost(ctx, "contest-recap")
	require.NoError(t, err)
	assert.Equal(t, firstURL, second.FeaturedImage)
}
