// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
HTTP interface for the photo gallery.

# Routing Strategy

  - Public (v1): Browsing, item detail, and the one-way like action.
  - Restricted (v1): Mutative endpoints requiring the Admin role.
*/
package gallery

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

// # Handler Implementation

// Handler implements the HTTP layer for the gallery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new gallery [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the gallery endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Endpoints
	router.Get("/", handler.listItems)
	router.Get("/browse", handler.browseItems)
	router.Get("/{id}", handler.getItem)
	router.Post("/{id}/like", handler.likeItem)

	// ## Gallery Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createItem)
		admin.Patch("/{id}", handler.updateItem)
		admin.Delete("/{id}", handler.deleteItem)
	})

	return router
}

// # Gallery Endpoints

/*
GET /api/v1/gallery.

Request:
  - tag: string (containment match)
  - cosplayer_id: string (attribution filter)
  - featured: bool
  - sort: string (newest, oldest, az, za, popular)
  - limit, page: int

Response:
  - 200: []Item with pagination metadata
*/
func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Tag:         queryParams.Get("tag"),
		CosplayerID: queryParams.Get("cosplayer_id"),
		Sort:        queryParams.Get("sort"),
	}
	if queryParams.Has("featured") {
		filter.Featured = pointer.To(convert.ToBool(queryParams.Get("featured")))
	}

	items, total, err := handler.service.ListItems(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// browseItems handles GET /api/v1/gallery/browse, the pipeline-backed
// public gallery surface.
func (handler *Handler) browseItems(writer http.ResponseWriter, request *http.Request) {
	state := listview.ParseState(request.URL.Query(), FieldCosplayer)
	result := handler.service.BrowseItems(request.Context(), state)

	respond.Paginated(writer, result.PageItems, pagination.NewMeta(result.Page, constants.GalleryPageSize, result.TotalCount))
}

// getItem handles GET /api/v1/gallery/{id}.
func (handler *Handler) getItem(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	item, err := handler.service.GetItem(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

// likeItem handles POST /api/v1/gallery/{id}/like.
func (handler *Handler) likeItem(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	likes, err := handler.service.LikeItem(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{FieldID: id, FieldLikes: likes})
}

// # Management Endpoints

// createItem handles POST /api/v1/gallery (admin).
func (handler *Handler) createItem(writer http.ResponseWriter, request *http.Request) {
	item := &Item{}
	if err := requestutil.DecodeJSON(request, item); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateItem(request.Context(), item); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

// updateItem handles PATCH /api/v1/gallery/{id} (admin).
func (handler *Handler) updateItem(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	patch := Patch{}
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateItem(request.Context(), id, patch); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{FieldID: id})
}

// deleteItem handles DELETE /api/v1/gallery/{id} (admin).
func (handler *Handler) deleteItem(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteItem(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
