// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package message

import (
	"context"
	"log/slog"

	"github.com/harukimai/cosona/internal/platform/validate"
	"github.com/harukimai/cosona/pkg/uuidv7"
)

// Service orchestrates the contact inbox business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Submit accepts a public contact form submission.
// Any missing required field rejects the whole submission with the
// catch-all "Missing required fields" validation error.
func (service *Service) Submit(ctx context.Context, message *Message) error {
	if message.Name == "" || message.Email == "" || message.Subject == "" || message.Body == "" {
		return validate.ErrMissingFields
	}

	validator := &validate.Validator{}
	validator.Email(FieldEmail, message.Email)
	validator.MaxLen(FieldName, message.Name, 200)
	validator.MaxLen(FieldSubject, message.Subject, 300)
	validator.MaxLen(FieldMessage, message.Body, 10000)

	if err := validator.Err(); err != nil {
		return err
	}

	message.ID = uuidv7.New()
	message.Status = StatusUnread

	if err := service.repo.Create(ctx, message); err != nil {
		return err
	}

	service.logger.Info("contact_message_received", slog.String("message_id", message.ID))
	return nil
}

// ListMessages returns the admin inbox. Being an admin surface, storage
// failures surface instead of degrading to empty.
func (service *Service) ListMessages(ctx context.Context, status Status, limit, offset int) ([]*Message, int, error) {
	if status != "" && !status.IsValid() {
		validator := &validate.Validator{}
		validator.Custom(FieldStatus, true, "unknown status value")
		return nil, 0, validator.Err()
	}
	return service.repo.List(ctx, status, limit, offset)
}

// GetMessage fetches a single message, flipping unread → read on first
// view.
func (service *Service) GetMessage(ctx context.Context, id string) (*Message, error) {
	m, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if m.Status == StatusUnread {
		if err := service.repo.UpdateStatus(ctx, id, StatusRead); err != nil {
			return nil, err
		}
		m.Status = StatusRead
	}

	return m, nil
}

// SetStatus applies an explicit admin lifecycle transition.
func (service *Service) SetStatus(ctx context.Context, id string, status Status) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, string(status),
		string(StatusUnread),
		string(StatusRead),
		string(StatusReplied),
		string(StatusArchived),
	)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	service.logger.Info("message_status_changed",
		slog.String("message_id", id),
		slog.String("status", string(status)),
	)
	return nil
}

// DeleteMessage removes a message; allowed from any lifecycle state.
func (service *Service) DeleteMessage(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("message_deleted", slog.String("message_id", id))
	return nil
}
