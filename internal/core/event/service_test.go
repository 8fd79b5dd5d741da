// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package event_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimai/cosona/internal/core/event"
	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/reqcache"
	"github.com/harukimai/cosona/internal/platform/storage"
)

// fakeRepository is an in-memory stand-in for the Postgres calendar.
type fakeRepository struct {
	byID    map[string]*event.Event
	listErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[string]*event.Event{}}
}

func (r *fakeRepository) List(_ context.Context, _ event.Filter, _, _ int) ([]*event.Event, int, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var items []*event.Event
	for _, e := range r.byID {
		items = append(items, e)
	}
	return items, len(items), nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*event.Event, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("Event")
	}
	copied := *e
	return &copied, nil
}

func (r *fakeRepository) Create(_ context.Context, e *event.Event) error {
	copied := *e
	r.byID[e.ID] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, id string, patch event.Patch) error {
	e, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("Event")
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.EndDate != nil {
		e.EndDate = patch.EndDate
	}
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.NotFound("Event")
	}
	delete(r.byID, id)
	return nil
}

func newTestService(t *testing.T) (*event.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return event.NewService(repo, storage.NewResolver(nil), slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestCreateEvent_Validation verifies the required fields and the date
ordering invariant at creation time.
*/
func TestCreateEvent_Validation(t *testing.T) {
	service, _ := newTestService(t)
	date := time.Date(2026, 10, 10, 10, 0, 0, 0, time.UTC)
	before := date.Add(-24 * time.Hour)

	tests := []struct {
		name  string
		event event.Event
	}{
		{"no_title", event.Event{Location: "Tokyo Big Sight", Date: date}},
		{"no_location", event.Event{Title: "Comiket", Date: date}},
		{"zero_date", event.Event{Title: "Comiket", Location: "Tokyo Big Sight"}},
		{"end_before_start", event.Event{Title: "Comiket", Location: "Tokyo Big Sight", Date: date, EndDate: &before}},
		{"unknown_type", event.Event{Title: "Comiket", Location: "Tokyo Big Sight", Date: date, Type: "party"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreateEvent(context.Background(), &tt.event)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

/*
TestCreateEvent_Defaults verifies identity assignment and the convention
default for an omitted type.
*/
func TestCreateEvent_Defaults(t *testing.T) {
	service, repo := newTestService(t)

	e := &event.Event{
		Title:    "Spring Cosplay Contest",
		Location: "Osaka",
		Date:     time.Date(2026, 4, 18, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, service.CreateEvent(context.Background(), e))

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, event.TypeConvention, e.Type)
	assert.NotNil(t, e.Tags)

	_, ok := repo.byID[e.ID]
	assert.True(t, ok)
}

/*
TestUpdateEvent_DateInvariant verifies that moving a single date bound is
checked against the stored value of the other bound.
*/
func TestUpdateEvent_DateInvariant(t *testing.T) {
	service, repo := newTestService(t)

	start := time.Date(2026, 10, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	repo.byID["e1"] = &event.Event{ID: "e1", Title: "Comiket", Location: "Tokyo", Date: start, EndDate: &end}

	// Pushing the start past the stored end must fail.
	late := end.Add(time.Hour)
	err := service.UpdateEvent(context.Background(), "e1", event.Patch{Date: &late})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	// Pulling the end before the stored start must fail.
	early := start.Add(-time.Hour)
	err = service.UpdateEvent(context.Background(), "e1", event.Patch{EndDate: &early})
	require.NotNil(t, apperr.As(err))

	// A consistent single-bound move passes.
	newEnd := end.Add(24 * time.Hour)
	require.NoError(t, service.UpdateEvent(context.Background(), "e1", event.Patch{EndDate: &newEnd}))
	assert.True(t, repo.byID["e1"].EndDate.Equal(newEnd))
}

/*
TestUpdateEvent_BothBounds verifies the invariant check when both bounds
move in one patch.
*/
func TestUpdateEvent_BothBounds(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["e1"] = &event.Event{ID: "e1", Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	err := service.UpdateEvent(context.Background(), "e1", event.Patch{Date: &start, EndDate: &end})
	require.NotNil(t, apperr.As(err))

	end = start.Add(time.Hour)
	require.NoError(t, service.UpdateEvent(context.Background(), "e1", event.Patch{Date: &start, EndDate: &end}))
}

/*
TestListEvents_Degrades verifies that a storage failure on the public read
path turns into an empty calendar, not an error.
*/
func TestListEvents_Degrades(t *testing.T) {
	service, repo := newTestService(t)
	repo.listErr = errors.New("connection refused")

	items, total, err := service.ListEvents(context.Background(), event.Filter{}, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

/*
TestGetEvent_CachedReadIsStable verifies that repeated reads of one event
within a single request return the same servable banner URL: the stored
path resolves once, before the event enters the request cache.
*/
func TestGetEvent_CachedReadIsStable(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["e1"] = &event.Event{
		ID:       "e1",
		Title:    "Summer Cosplay Festival",
		ImageURL: "banners/summer.jpg",
	}

	ctx := reqcache.With(context.Background(), reqcache.New())

	first, err := service.GetEvent(ctx, "e1")
	require.NoError(t, err)
	firstURL := first.ImageURL
	assert.Contains(t, firstURL, "banners%2Fsummer.jpg")

	second, err := service.GetEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, firstURL, second.ImageURL)
}
