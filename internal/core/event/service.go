// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/constants"
	"github.com/harukimai/cosona/internal/platform/reqcache"
	"github.com/harukimai/cosona/internal/platform/storage"
	"github.com/harukimai/cosona/internal/platform/validate"
	"github.com/harukimai/cosona/pkg/listview"
	"github.com/harukimai/cosona/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for the events calendar.
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

// # Calendar Lookups

// ListEvents retrieves a paginated, filtered slice of events.
// Public read path: memoized per request, degrades to empty on failure.
func (service *Service) ListEvents(ctx context.Context, filter Filter, limit, offset int) ([]*Event, int, error) {
	type listResult struct {
		items []*Event
		total int
	}

	key := fmt.Sprintf("event:list:%s:%s:%v:%v:%s:%d:%d",
		filter.Type, filter.Tag, filter.Featured, filter.Upcoming, filter.Sort, limit, offset)

	result, err := reqcache.Memoize(reqcache.FromContext(ctx), key, func() (listResult, error) {
		items, total, err := service.repo.List(ctx, filter, limit, offset)
		if err != nil {
			return listResult{}, err
		}
		// Resolve before the result enters the cache: cached events must
		// already carry servable URLs so repeat reads never re-resolve.
		for _, e := range items {
			service.resolveImage(e)
		}
		return listResult{items: items, total: total}, nil
	})
	if err != nil {
		service.logger.Warn("event_list_degraded", slog.String("error", err.Error()))
		return []*Event{}, 0, nil
	}

	return result.items, result.total, nil
}

// GetEvent fetches a single event; NotFound surfaces to the handler.
func (service *Service) GetEvent(ctx context.Context, id string) (*Event, error) {
	return reqcache.Memoize(reqcache.FromContext(ctx), "event:id:"+id, func() (*Event, error) {
		e, err := service.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		service.resolveImage(e)
		return e, nil
	})
}

const browseFetchLimit = 500

// BrowseEvents runs the shared pipeline over upcoming events with the
// calendar's fixed page size.
func (service *Service) BrowseEvents(ctx context.Context, state listview.State) listview.Result[*Event] {
	items, _, _ := service.ListEvents(ctx, Filter{Upcoming: true}, browseFetchLimit, 0)

	state.PageSize = constants.EventPageSize
	return listview.Derive(items, Accessors(), state)
}

// # Calendar Management

// CreateEvent validates and persists a new event.
// An end date earlier than the start date is rejected.
func (service *Service) CreateEvent(ctx context.Context, event *Event) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, event.Title).MaxLen(FieldTitle, event.Title, 300)
	validator.Required(FieldLocation, event.Location).MaxLen(FieldLocation, event.Location, 300)
	validator.Custom(FieldDate, event.Date.IsZero(), "date is required")

	if event.Type == "" {
		event.Type = TypeConvention
	}
	validator.OneOf(FieldType, string(event.Type),
		string(TypeConvention),
		string(TypeCompetition),
		string(TypeWorkshop),
		string(TypeFestival),
	)

	if event.EndDate != nil && event.EndDate.Before(event.Date) {
		validator.Custom(FieldEndDate, true, "end_date must not be before date")
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if event.ID == "" {
		event.ID = uuidv7.New()
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}

	if err := service.repo.Create(ctx, event); err != nil {
		return err
	}

	service.logger.Info("event_created",
		slog.String("event_id", event.ID),
		slog.String("title", event.Title),
	)
	return nil
}

// UpdateEvent applies a partial update, re-checking the date ordering
// invariant when both bounds are touched together.
func (service *Service) UpdateEvent(ctx context.Context, id string, patch Patch) error {
	validator := &validate.Validator{}

	if patch.Title != nil {
		validator.Required(FieldTitle, *patch.Title).MaxLen(FieldTitle, *patch.Title, 300)
	}
	if patch.Type != nil {
		validator.OneOf(FieldType, string(*patch.Type),
			string(TypeConvention),
			string(TypeCompetition),
			string(TypeWorkshop),
			string(TypeFestival),
		)
	}
	if patch.Date != nil && patch.EndDate != nil && patch.EndDate.Before(*patch.Date) {
		validator.Custom(FieldEndDate, true, "end_date must not be before date")
	}

	if err := validator.Err(); err != nil {
		return err
	}

	// When only one bound moves, the invariant is checked against the
	// stored value of the other bound.
	if (patch.Date != nil) != (patch.EndDate != nil) {
		stored, err := service.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		date := stored.Date
		endDate := stored.EndDate
		if patch.Date != nil {
			date = *patch.Date
		}
		if patch.EndDate != nil {
			endDate = patch.EndDate
		}
		if endDate != nil && endDate.Before(date) {
			return apperr.ValidationError("end_date must not be before date")
		}
	}

	if err := service.repo.Update(ctx, id, patch); err != nil {
		return err
	}

	service.logger.Info("event_updated", slog.String("event_id", id))
	return nil
}

// DeleteEvent removes an event permanently.
func (service *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("event_deleted", slog.String("event_id", id))
	return nil
}

// # Internal Helpers

func (service *Service) resolveImage(e *Event) {
	e.ImageURL = service.resolver.Resolve(constants.BucketEvents, e.ImageURL)
}
