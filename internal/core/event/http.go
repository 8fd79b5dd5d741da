// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package event

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/harukimai/cosona/internal/platform/constants"
	"github.com/harukimai/cosona/internal/platform/middleware"
	requestutil "github.com/harukimai/cosona/internal/platform/request"
	"github.com/harukimai/cosona/internal/platform/respond"
	"github.com/harukimai/cosona/internal/platform/sec"
	"github.com/harukimai/cosona/pkg/convert"
	"github.com/harukimai/cosona/pkg/listview"
	"github.com/harukimai/cosona/pkg/pagination"
	"github.com/harukimai/cosona/pkg/pointer"
)

// Handler implements the HTTP layer for the events calendar.
type Handler struct {
	service *Service
}

// NewHandler constructs a new event [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the calendar endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listEvents)
	router.Get("/browse", handler.browseEvents)
	router.Get("/{id}", handler.getEvent)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createEvent)
		admin.Patch("/{id}", handler.updateEvent)
		admin.Delete("/{id}", handler.deleteEvent)
	})

	return router
}

// listEvents handles GET /api/v1/events.
// Supports event_type, tag, featured, upcoming, and sort query parameters.
func (handler *Handler) listEvents(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Type:     Type(queryParams.Get("event_type")),
		Tag:      queryParams.Get("tag"),
		Upcoming: convert.ToBool(queryParams.Get("upcoming")),
		Sort:     queryParams.Get("sort"),
	}
	if queryParams.Has("featured") {
		filter.Featured = pointer.To(convert.ToBool(queryParams.Get("featured")))
	}

	events, total, err := handler.service.ListEvents(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, events, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// browseEvents handles GET /api/v1/events/browse, the pipeline-backed
// calendar surface over upcoming events.
func (handler *Handler) browseEvents(writer http.ResponseWriter, request *http.Request) {
	state := listview.ParseState(request.URL.Query(), FieldType)
	result := handler.service.BrowseEvents(request.Context(), state)

	respond.Paginated(writer, result.PageItems, pagination.NewMeta(result.Page, constants.EventPageSize, result.TotalCount))
}

// getEvent handles GET /api/v1/events/{id}.
func (handler *Handler) getEvent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	e, err := handler.service.GetEvent(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, e)
}

// createEvent handles POST /api/v1/events (admin).
func (handler *Handler) createEvent(writer http.ResponseWriter, request *http.Request) {
	e := &Event{}
	if err := requestutil.DecodeJSON(request, e); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateEvent(request.Context(), e); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, e)
}

// updateEvent handles PATCH /api/v1/events/{id} (admin).
func (handler *Handler) updateEvent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	patch := Patch{}
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateEvent(request.Context(), id, patch); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{FieldID: id})
}

// deleteEvent handles DELETE /api/v1/events/{id} (admin).
func (handler *Handler) deleteEvent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteEvent(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
