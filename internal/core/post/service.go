// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package post

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/harukimai/cosona/internal/platform/constants"
	"github.com/harukimai/cosona/internal/platform/reqcache"
	"github.com/harukimai/cosona/internal/platform/storage"
	"github.com/harukimai/cosona/internal/platform/validate"
	"github.com/harukimai/cosona/pkg/listview"
	"github.com/harukimai/cosona/pkg/slug"
	"github.com/harukimai/cosona/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for the blog.
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

// # Blog Lookups

// ListPosts retrieves a paginated, filtered slice of posts. Public read
// path: memoized per request, degrades to empty on storage failure.
func (service *Service) ListPosts(ctx context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	type listResult struct {
		items []*Post
		total int
	}

	key := fmt.Sprintf("post:list:%s:%s:%v:%s:%d:%d",
		filter.Category, filter.Tag, filter.PublishedOnly, filter.Sort, limit, offset)

	result, err := reqcache.Memoize(reqcache.FromContext(ctx), key, func() (listResult, error) {
		items, total, err := service.repo.List(ctx, filter, limit, offset)
		if err != nil {
			return listResult{}, err
		}
		// Resolve before the result enters the cache: cached posts must
		// already carry servable URLs so repeat reads never re-resolve.
		for _, p := range items {
			service.resolveImage(p)
		}
		return listResult{items: items, total: total}, nil
	})
	if err != nil {
		service.logger.Warn("post_list_degraded", slog.String("error", err.Error()))
		return []*Post{}, 0, nil
	}

	return result.items, result.total, nil
}

// GetPost fetches a single post by UUID or SEO slug. NotFound surfaces to
// the handler so it can render a 404.
func (service *Service) GetPost(ctx context.Context, identifier string) (*Post, error) {
	return reqcache.Memoize(reqcache.FromContext(ctx), "post:"+identifier, func() (*Post, error) {
		var p *Post
		var err error
		if isUUID(identifier) {
			p, err = service.repo.FindByID(ctx, identifier)
		} else {
			p, err = service.repo.FindBySlug(ctx, identifier)
		}
		if err != nil {
			return nil, err
		}
		service.resolveImage(p)
		return p, nil
	})
}

const browseFetchLimit = 500

// BrowsePosts runs the shared pipeline over published posts with the
// blog's fixed page size.
func (service *Service) BrowsePosts(ctx context.Context, state listview.State) listview.Result[*Post] {
	items, _, _ := service.ListPosts(ctx, Filter{PublishedOnly: true}, browseFetchLimit, 0)

	state.PageSize = constants.BlogPageSize
	return listview.Derive(items, Accessors(), state)
}

// # Blog Management

// CreatePost validates and persists a new post. The slug is derived from
// the title unless the author supplies one explicitly; a client-provided
// slug always wins.
func (service *Service) CreatePost(ctx context.Context, post *Post) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, post.Title).MaxLen(FieldTitle, post.Title, 300)
	validator.Required(FieldContent, post.Content)
	validator.MaxLen(FieldExcerpt, post.Excerpt, 1000)

	if post.Slug == "" {
		post.Slug = slug.From(post.Title)
	}
	validator.Slug(FieldSlug, post.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	if post.ID == "" {
		post.ID = uuidv7.New()
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	// Slug uniqueness is enforced by the database constraint and surfaces
	// as a conflict error.
	if err := service.repo.Create(ctx, post); err != nil {
		return err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug),
		slog.Bool("published", post.Published),
	)
	return nil
}

// UpdatePost applies a partial update. The publish transition timestamp is
// handled by the repository.
func (service *Service) UpdatePost(ctx context.Context, id string, patch Patch) error {
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

	service.logger.Info("post_updated", slog.String("post_id", id))
	return nil
}

// DeletePost removes a post permanently.
func (service *Service) DeletePost(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("post_deleted", slog.String("post_id", id))
	return nil
}

// # Internal Helpers

func (service *Service) resolveImage(p *Post) {
	if p.FeaturedImage == "" {
		return
	}
	p.FeaturedImage = service.resolver.Resolve(constants.BucketPosts, p.FeaturedImage)
}

// isUUID distinguishes canonical UUID identifiers from SEO slugs. Length
// alone is not enough: a 36-character slug must still route to the slug
// lookup.
func isUUID(s string) bool {
	return uuid.Validate(s) == nil
}
