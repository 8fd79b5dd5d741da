// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package message_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimai/cosona/internal/core/message"
	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/validate"
)

// fakeRepository is an in-memory stand-in for the Postgres inbox.
type fakeRepository struct {
	byID map[string]*message.Message
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[string]*message.Message{}}
}

func (r *fakeRepository) List(_ context.Context, status message.Status, _, _ int) ([]*message.Message, int, error) {
	var items []*message.Message
	for _, m := range r.byID {
		if status == "" || m.Status == status {
			items = append(items, m)
		}
	}
	return items, len(items), nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*message.Message, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("Message")
	}
	copied := *m
	return &copied, nil
}

func (r *fakeRepository) Create(_ context.Context, m *message.Message) error {
	copied := *m
	r.byID[m.ID] = &copied
	return nil
}

func (r *fakeRepository) UpdateStatus(_ context.Context, id string, status message.Status) error {
	m, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("Message")
	}
	m.Status = status
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.NotFound("Message")
	}
	delete(r.byID, id)
	return nil
}

func newTestService(t *testing.T) (*message.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return message.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestSubmit_MissingFields verifies that any absent required field rejects the
whole submission with the canonical catch-all error.
*/
func TestSubmit_MissingFields(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		name    string
		message message.Message
	}{
		{"all_empty", message.Message{}},
		{"no_name", message.Message{Email: "a@b.jp", Subject: "Hi", Body: "Hello"}},
		{"no_email", message.Message{Name: "Yuki", Subject: "Hi", Body: "Hello"}},
		{"no_subject", message.Message{Name: "Yuki", Email: "a@b.jp", Body: "Hello"}},
		{"no_body", message.Message{Name: "Yuki", Email: "a@b.jp", Subject: "Hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Submit(context.Background(), &tt.message)
			assert.ErrorIs(t, err, validate.ErrMissingFields)
		})
	}
}

/*
TestSubmit_InvalidEmail verifies field-level validation past the presence
check.
*/
func TestSubmit_InvalidEmail(t *testing.T) {
	service, repo := newTestService(t)

	err := service.Submit(context.Background(), &message.Message{
		Name:    "Yuki",
		Email:   "not-an-address",
		Subject: "Hi",
		Body:    "Hello",
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Empty(t, repo.byID)
}

/*
TestSubmit_Valid verifies that a valid submission gets an identity, starts
unread, and reaches storage.
*/
func TestSubmit_Valid(t *testing.T) {
	service, repo := newTestService(t)

	m := &message.Message{
		Name:    "Yuki Tanaka",
		Email:   "yuki@example.jp",
		Subject: "Collaboration",
		Body:    "I would love to join the next shoot.",
	}
	require.NoError(t, service.Submit(context.Background(), m))

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, message.StatusUnread, m.Status)

	stored, ok := repo.byID[m.ID]
	require.True(t, ok)
	assert.Equal(t, "Collaboration", stored.Subject)
}

/*
TestGetMessage_MarksRead verifies the unread → read transition on first view
and that later views leave the status alone.
*/
func TestGetMessage_MarksRead(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["m1"] = &message.Message{ID: "m1", Status: message.StatusUnread}

	first, err := service.GetMessage(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, message.StatusRead, first.Status)
	assert.Equal(t, message.StatusRead, repo.byID["m1"].Status)

	repo.byID["m1"].Status = message.StatusReplied
	second, err := service.GetMessage(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, message.StatusReplied, second.Status)
}

/*
TestSetStatus verifies explicit lifecycle transitions and rejection of
unknown status values.
*/
func TestSetStatus(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["m1"] = &message.Message{ID: "m1", Status: message.StatusRead}

	require.NoError(t, service.SetStatus(context.Background(), "m1", message.StatusArchived))
	assert.Equal(t, message.StatusArchived, repo.byID["m1"].Status)

	err := service.SetStatus(context.Background(), "m1", "junk")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, message.StatusArchived, repo.byID["m1"].Status)
}

/*
TestListMessages_UnknownStatus verifies that the admin list rejects an
unrecognised status filter instead of silently returning everything.
*/
func TestListMessages_UnknownStatus(t *testing.T) {
	service, _ := newTestService(t)

	_, _, err := service.ListMessages(context.Background(), "bogus", 20, 0)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

/*
TestDeleteMessage verifies removal from any lifecycle state.
*/
func TestDeleteMessage(t *testing.T) {
	service, repo := newTestService(t)
	repo.byID["m1"] = &message.Message{ID: "m1", Status: message.StatusArchived}

	require.NoError(t, service.DeleteMessage(context.Background(), "m1"))
	assert.Empty(t, repo.byID)
}
