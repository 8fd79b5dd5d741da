// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package page_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimai/cosona/internal/core/page"
	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/validate"
)

// fakeRepository is an in-memory stand-in for the Postgres page store.
type fakeRepository struct {
	byID   map[string]*page.Page
	bySlug map[string]*page.Page
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:   map[string]*page.Page{},
		bySlug: map[string]*page.Page{},
	}
}

func (r *fakeRepository) List(_ context.Context) ([]*page.Page, error) {
	var pages []*page.Page
	for _, p := range r.byID {
		pages = append(pages, p)
	}
	return pages, nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*page.Page, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("Page")
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepository) FindBySlug(_ context.Context, slug string) (*page.Page, error) {
	p, ok := r.bySlug[slug]
	if !ok {
		return nil, apperr.NotFound("Page")
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepository) Create(_ context.Context, p *page.Page) error {
	if _, exists := r.bySlug[p.Slug]; exists {
		return apperr.Conflict("A page with this slug already exists")
	}
	copied := *p
	r.byID[p.ID] = &copied
	r.bySlug[p.Slug] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, id string, patch page.Patch) error {
	p, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("Page")
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	p, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("Page")
	}
	delete(r.bySlug, p.Slug)
	delete(r.byID, id)
	return nil
}

func newTestService(t *testing.T) (*page.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return page.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestCreatePage_DerivesSlug verifies slug derivation from the title and
identity assignment.
*/
func TestCreatePage_DerivesSlug(t *testing.T) {
	service, repo := newTestService(t)

	p := &page.Page{Title: "About the Cosona Community", Content: "Who we are."}
	require.NoError(t, service.CreatePage(context.Background(), p))
	assert.Equal(t, "about-the-cosona-community", p.Slug)
	assert.NotEmpty(t, p.ID)
	_, ok := repo.bySlug[p.Slug]
	assert.True(t, ok)
}

/*
TestCreatePage_Validation verifies that title and content are required.
*/
func TestCreatePage_Validation(t *testing.T) {
	service, _ := newTestService(t)

	err := service.CreatePage(context.Background(), &page.Page{Content: "body"})
	assert.ErrorIs(t, err, validate.ErrMissingFields)

	err = service.CreatePage(context.Background(), &page.Page{Title: "FAQ"})
	assert.ErrorIs(t, err, validate.ErrMissingFields)
}

/*
TestGetPage_Identifier verifies lookup dispatch: canonical UUIDs go to the
ID lookup, everything else to the slug lookup. A slug that happens to be
exactly as long as a UUID must still route to the slug lookup.
*/
func TestGetPage_Identifier(t *testing.T) {
	service, repo := newTestService(t)

	const id = "0192b1c2-0000-7000-8000-abcdefabcdef"
	const longSlug = "privacy-policy-for-cosona-photo-site" // same length as a UUID

	repo.byID[id] = &page.Page{ID: id, Title: "About", Slug: "about"}
	repo.bySlug["about"] = repo.byID[id]
	repo.bySlug[longSlug] = &page.Page{ID: "p2", Title: "Privacy Policy", Slug: longSlug}

	byID, err := service.GetPage(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "About", byID.Title)

	bySlug, err := service.GetPage(context.Background(), "about")
	require.NoError(t, err)
	assert.Equal(t, "About", bySlug.Title)

	byLongSlug, err := service.GetPage(context.Background(), longSlug)
	require.NoError(t, err)
	assert.Equal(t, "Privacy Policy", byLongSlug.Title)
}
