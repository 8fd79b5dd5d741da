// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package gallery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harukimai/cosona/internal/platform/constants"
	"github.com/harukimai/cosona/internal/platform/reqcache"
	"github.com/harukimai/cosona/internal/platform/storage"
	"github.com/harukimai/cosona/internal/platform/validate"
	"github.com/harukimai/cosona/pkg/listview"
	"github.com/harukimai/cosona/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for the photo gallery.
type Service struct {
	repo     Repository
	resolver *storage.Resolver
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, resolver *storage.Resolver, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

// # Gallery Lookups

// ListItems retrieves a paginated, filtered slice of gallery items.
// Public read path: memoized per request, degrades to empty on storage
// failure after logging a warning.
func (service *Service) ListItems(ctx context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {
	type listResult struct {
		items []*Item
		total int
	}

	key := fmt.Sprintf("gallery:list:%s:%s:%v:%s:%d:%d",
		filter.Tag, filter.CosplayerID, filter.Featured, filter.Sort, limit, offset)

	result, err := reqcache.Memoize(reqcache.FromContext(ctx), key, func() (listResult, error) {
		items, total, err := service.repo.List(ctx, filter, limit, offset)
		if err != nil {
			return listResult{}, err
		}
		// Resolve before the result enters the cache: cached items must
		// already carry servable URLs so repeat reads never re-resolve.
		for _, item := range items {
			service.resolveImage(item)
		}
		return listResult{items: items, total: total}, nil
	})
	if err != nil {
		service.logger.Warn("gallery_list_degraded", slog.String("error", err.Error()))
		return []*Item{}, 0, nil
	}

	return result.items, result.total, nil
}

// GetItem fetches a single gallery item; NotFound surfaces to the handler.
func (service *Service) GetItem(ctx context.Context, id string) (*Item, error) {
	return reqcache.Memoize(reqcache.FromContext(ctx), "gallery:id:"+id, func() (*Item, error) {
		item, err := service.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		service.resolveImage(item)
		return item, nil
	})
}

// browseFetchLimit bounds the raw slice pulled for the in-memory pipeline.
const browseFetchLimit = 1000

// BrowseItems runs the shared search/filter/sort/paginate pipeline over the
// gallery. It never errors; zero results is a valid displayed state.
func (service *Service) BrowseItems(ctx context.Context, state listview.State) listview.Result[*Item] {
	items, _, _ := service.ListItems(ctx, Filter{}, browseFetchLimit, 0)

	state.PageSize = constants.GalleryPageSize
	return listview.Derive(items, Accessors(), state)
}

// # Engagement

/*
LikeItem applies an idempotent one-way like.

Description: The increment is atomic server-side; re-click semantics are
deliberately one-way (a like is never reverted through this path). Returns
the new counter value for optimistic UI reconciliation.
*/
func (service *Service) LikeItem(ctx context.Context, id string) (int, error) {
	likes, err := service.repo.IncrementLikes(ctx, id, 1)
	if err != nil {
		return 0, err
	}

	service.logger.Info("gallery_item_liked",
		slog.String("item_id", id),
		slog.Int("likes", likes),
	)
	return likes, nil
}

// # Gallery Management

// CreateItem validates and persists a new gallery item.
func (service *Service) CreateItem(ctx context.Context, item *Item) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, item.Title).MaxLen(FieldTitle, item.Title, 300)
	validator.MaxLen(FieldDescription, item.Description, 5000)
	if item.CosplayerID != nil {
		validator.UUID(FieldCosplayerID, *item.CosplayerID)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if item.ID == "" {
		item.ID = uuidv7.New()
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	if err := service.repo.Create(ctx, item); err != nil {
		return err
	}

	service.logger.Info("gallery_item_created",
		slog.String("item_id", item.ID),
		slog.String("title", item.Title),
	)
	return nil
}

// UpdateItem applies a partial update.
func (service *Service) UpdateItem(ctx context.Context, id string, patch Patch) error {
	validator := &validate.Validator{}

	if patch.Title != nil {
		validator.Required(FieldTitle, *patch.Title).MaxLen(FieldTitle, *patch.Title, 300)
	}
	if patch.CosplayerID != nil && *patch.CosplayerID != "" {
		validator.UUID(FieldCosplayerID, *patch.CosplayerID)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(ctx, id, patch); err != nil {
		return err
	}

	service.logger.Info("gallery_item_updated", slog.String("item_id", id))
	return nil
}

// DeleteItem removes a gallery item permanently.
func (service *Service) DeleteItem(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("gallery_item_deleted", slog.String("item_id", id))
	return nil
}

// # Internal Helpers

func (service *Service) resolveImage(item *Item) {
	item.ImageURL = service.resolver.Resolve(constants.BucketGallery, item.ImageURL)
}
