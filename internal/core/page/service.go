// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package page

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/harukimai/cosona/internal/platform/reqcache"
	"github.com/harukimai/cosona/internal/platform/validate"
	"github.com/harukimai/cosona/pkg/slug"
	"github.com/harukimai/cosona/pkg/uuidv7"
)

// Service orchestrates the business logic for CMS pages.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListPages returns all pages. Public read path: degrades to empty on
// storage failure after logging a warning.
func (service *Service) ListPages(ctx context.Context) ([]*Page, error) {
	pages, err := reqcache.Memoize(reqcache.FromContext(ctx), "page:list", func() ([]*Page, error) {
		return service.repo.List(ctx)
	})
	if err != nil {
		service.logger.Warn("page_list_degraded", slog.String("error", err.Error()))
		return []*Page{}, nil
	}
	return pages, nil
}

// GetPage fetches a single page by UUID or slug; NotFound surfaces so the
// handler can render a 404.
func (service *Service) GetPage(ctx context.Context, identifier string) (*Page, error) {
	return reqcache.Memoize(reqcache.FromContext(ctx), "page:"+identifier, func() (*Page, error) {
		if isUUID(identifier) {
			return service.repo.FindByID(ctx, identifier)
		}
		return service.repo.FindBySlug(ctx, identifier)
	})
}

// CreatePage validates and persists a new page. The slug derives from the
// title unless explicitly overridden; a client-provided slug always wins.
func (service *Service) CreatePage(ctx context.Context, page *Page) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, page.Title).MaxLen(FieldTitle, page.Title, 300)
	validator.Required(FieldContent, page.Content)

	if page.Slug == "" {
		page.Slug = slug.From(page.Title)
	}
	validator.Slug(FieldSlug, page.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	if page.ID == "" {
		page.ID = uuidv7.New()
	}

	if err := service.repo.Create(ctx, page); err != nil {
		return err
	}

	service.logger.Info("page_created",
		slog.String("page_id", page.ID),
		slog.String("slug", page.Slug),
	)
	return nil
}

// UpdatePage applies a partial update.
func (service *Service) UpdatePage(ctx context.Context, id string, patch Patch) error {
	validator := &validate.Validator{}

	if patch.Title != nil {
		validator.Required(FieldTitle, *patch.Title).MaxLen(FieldTitle, *patch.Title, 300)
	}
	if patch.Slug != nil {
		validator.Slug(FieldSlug, *patch.Slug)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(ctx, id, patch); err != nil {
		return err
	}

	service.logger.Info("page_updated", slog.String("page_id", id))
	return nil
}

// DeletePage removes a page permanently.
func (service *Service) DeletePage(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("page_deleted", slog.String("page_id", id))
	return nil
}

// isUUID distinguishes canonical UUID identifiers from slugs. Length alone
// is not enough: a 36-character slug must still route to the slug lookup.
func isUUID(s string) bool {
	return uuid.Validate(s) == nil
}
