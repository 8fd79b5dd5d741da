// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package cosplayer

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

// Service orchestrates the business logic for the cosplayer directory.
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

// # Directory Lookups

/*
ListCosplayers retrieves a paginated, filtered slice of profiles.

Description: Public read path. Results within one request are memoized in
the request-scoped cache so that composite pages (home page sections, the
browse surface) fetching the same slice do not issue duplicate queries.
A storage failure degrades to an empty list after logging a warning; the
caller never sees the raw error.

Parameters:
  - ctx: context.Context carrying the request cache and logger
  - filter: Filter (status, tag, featured, sort)
  - limit: int
  - offset: int

Returns:
  - []*Cosplayer: Matching profiles with resolved image URLs
  - int: Total count matching the filter
  - error: Always nil on the public read path
*/
func (service *Service) ListCosplayers(ctx context.Context, filter Filter, limit, offset int) ([]*Cosplayer, int, error) {
	type listResult struct {
		items []*Cosplayer
		total int
	}

	key := fmt.Sprintf("cosplayer:list:%s:%s:%v:%s:%d:%d",
		filter.Status, filter.Tag, filter.Featured, filter.Sort, limit, offset)

	result, err := reqcache.Memoize(reqcache.FromContext(ctx), key, func() (listResult, error) {
		items, total, err := service.repo.List(ctx, filter, limit, offset)
		if err != nil {
			return listResult{}, err
		}
		// Resolve before the result enters the cache: cached profiles must
		// already carry servable URLs so repeat reads never re-resolve.
		for _, c := range items {
			service.resolveImage(c)
		}
		return listResult{items: items, total: total}, nil
	})
	if err != nil {
		service.logger.Warn("cosplayer_list_degraded", slog.String("error", err.Error()))
		return []*Cosplayer{}, 0, nil
	}

	return result.items, result.total, nil
}

// GetCosplayer fetches a single profile by id.
// Unlike list reads this surfaces NotFound so the handler can render a 404.
func (service *Service) GetCosplayer(ctx context.Context, id string) (*Cosplayer, error) {
	return reqcache.Memoize(reqcache.FromContext(ctx), "cosplayer:id:"+id, func() (*Cosplayer, error) {
		c, err := service.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		service.resolveImage(c)
		return c, nil
	})
}

// browseFetchLimit bounds how many rows the browse surface pulls for the
// in-memory pipeline. The directory is curated content, not user-generated
// at scale.
const browseFetchLimit = 500

// BrowseCosplayers runs the shared search/filter/sort/paginate pipeline over
// the active directory. It never errors; an empty result is a valid state.
func (service *Service) BrowseCosplayers(ctx context.Context, state listview.State) listview.Result[*Cosplayer] {
	items, _, _ := service.ListCosplayers(ctx, Filter{Status: StatusActive}, browseFetchLimit, 0)

	state.PageSize = constants.CosplayerPageSize
	return listview.Derive(items, Accessors(), state)
}

// # Engagement

// LikeCosplayer applies an idempotent one-way popularity bump.
// The server-side increment is the source of truth; duplicate suppression
// is a client concern.
func (service *Service) LikeCosplayer(ctx context.Context, id string) (int, error) {
	popularity, err := service.repo.IncrementPopularity(ctx, id, 1)
	if err != nil {
		return 0, err
	}

	service.logger.Info("cosplayer_liked",
		slog.String("cosplayer_id", id),
		slog.Int("popularity", popularity),
	)
	return popularity, nil
}

// # Directory Management

/*
CreateCosplayer initialises a new profile record.

Description: Validates the business attributes, assigns a UUID v7 identity,
defaults the status to pending moderation, and persists via the repository.
*/
func (service *Service) CreateCosplayer(ctx context.Context, cosplayer *Cosplayer) error {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldName, cosplayer.Name).MaxLen(FieldName, cosplayer.Name, 200)
	validator.MaxLen(FieldCharacter, cosplayer.Character, 300)
	validator.MaxLen(FieldBio, cosplayer.Bio, 5000)

	// Lifecycle state validation
	if cosplayer.Status == "" {
		cosplayer.Status = StatusPending
	}
	validator.OneOf(FieldStatus, string(cosplayer.Status),
		string(StatusActive),
		string(StatusInactive),
		string(StatusPending),
	)

	if err := validator.Err(); err != nil {
		return err
	}

	// Identity assignment
	if cosplayer.ID == "" {
		cosplayer.ID = uuidv7.New()
	}
	if cosplayer.Tags == nil {
		cosplayer.Tags = []string{}
	}

	if err := service.repo.Create(ctx, cosplayer); err != nil {
		return err
	}

	service.logger.Info("cosplayer_created",
		slog.String("cosplayer_id", cosplayer.ID),
		slog.String("name", cosplayer.Name),
	)
	return nil
}

// UpdateCosplayer applies a partial update. Only non-nil patch fields reach
// storage.
func (service *Service) UpdateCosplayer(ctx context.Context, id string, patch Patch) error {
	validator := &validate.Validator{}

	if patch.Name != nil {
		validator.Required(FieldName, *patch.Name).MaxLen(FieldName, *patch.Name, 200)
	}
	if patch.Status != nil {
		validator.OneOf(FieldStatus, string(*patch.Status),
			string(StatusActive),
			string(StatusInactive),
			string(StatusPending),
		)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(ctx, id, patch); err != nil {
		return err
	}

	service.logger.Info("cosplayer_updated", slog.String("cosplayer_id", id))
	return nil
}

// DeleteCosplayer removes a profile permanently.
func (service *Service) DeleteCosplayer(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("cosplayer_deleted", slog.String("cosplayer_id", id))
	return nil
}

// # Internal Helpers

// resolveImage rewrites the stored object path into a public URL.
// It runs exactly once per entity, inside the memoized fetch, so cached
// entities are never re-resolved.
func (service *Service) resolveImage(c *Cosplayer) {
	c.ProfileImage = service.resolver.Resolve(constants.BucketProfiles, c.ProfileImage)
}
