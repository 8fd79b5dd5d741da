// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
HTTP interface for the cosplayer directory.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors, including
    the browse surface backed by the shared list pipeline.
  - Restricted (v1): Mutative endpoints requiring the Admin role.

The handler translates between the web/JSON layer and the domain [Service].
*/
package cosplayer

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

// Handler implements the HTTP layer for directory discovery and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new cosplayer [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the directory endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listCosplayers)
	router.Get("/browse", handler.browseCosplayers)
	router.Get("/{id}", handler.getCosplayer)
	router.Post("/{id}/like", handler.likeCosplayer)

	// ## Directory Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createCosplayer)
		admin.Patch("/{id}", handler.updateCosplayer)
		admin.Delete("/{id}", handler.deleteCosplayer)
	})

	return router
}

// # Directory Endpoints

/*
GET /api/v1/cosplayers.

Description: Retrieves a paginated list of profiles with storage-level
filtering. Used by composite pages that need raw slices (home sections).

Request:
  - status: string (active, inactive, pending)
  - tag: string (containment match)
  - featured: bool
  - sort: string (newest, oldest, az, za, popular)
  - limit, page: int

Response:
  - 200: []Cosplayer with pagination metadata
*/
func (handler *Handler) listCosplayers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Status: Status(queryParams.Get("status")),
		Tag:    queryParams.Get("tag"),
		Sort:   queryParams.Get("sort"),
	}
	if queryParams.Has("featured") {
		filter.Featured = pointer.To(convert.ToBool(queryParams.Get("featured")))
	}

	cosplayers, total, err := handler.service.ListCosplayers(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cosplayers, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/cosplayers/browse.

Description: The directory browse surface. Runs the shared in-memory
search/filter/sort/paginate pipeline with the directory's fixed page size.

Request:
  - q: string (substring search over name/character/bio plus tags)
  - status: string (categorical filter; "all" and "featured" pseudo-values)
  - sort: string (newest, oldest, az, za, popular)
  - page: int

Response:
  - 200: Page of cosplayers with pagination metadata
*/
func (handler *Handler) browseCosplayers(writer http.ResponseWriter, request *http.Request) {
	state := listviewState(request)
	result := handler.service.BrowseCosplayers(request.Context(), state)

	respond.Paginated(writer, result.PageItems, pagination.NewMeta(result.Page, constants.CosplayerPageSize, result.TotalCount))
}

// getCosplayer handles GET /api/v1/cosplayers/{id}.
func (handler *Handler) getCosplayer(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	cosplayer, err := handler.service.GetCosplayer(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cosplayer)
}

// likeCosplayer handles POST /api/v1/cosplayers/{id}/like.
// One-way idempotent like; re-clicks from the same visitor are a client
// concern, the server always applies the atomic increment.
func (handler *Handler) likeCosplayer(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	popularity, err := handler.service.LikeCosplayer(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{FieldID: id, FieldPopularity: popularity})
}

// # Management Endpoints

// createCosplayer handles POST /api/v1/cosplayers (admin).
func (handler *Handler) createCosplayer(writer http.ResponseWriter, request *http.Request) {
	cosplayer := &Cosplayer{}
	if err := requestutil.DecodeJSON(request, cosplayer); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCosplayer(request.Context(), cosplayer); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, cosplayer)
}

// updateCosplayer handles PATCH /api/v1/cosplayers/{id} (admin).
func (handler *Handler) updateCosplayer(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	patch := Patch{}
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCosplayer(request.Context(), id, patch); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{FieldID: id})
}

// deleteCosplayer handles DELETE /api/v1/cosplayers/{id} (admin).
func (handler *Handler) deleteCosplayer(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteCosplayer(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// listviewState maps the browse query parameters onto the pipeline state.
func listviewState(request *http.Request) listview.State {
	return listview.ParseState(request.URL.Query(), FieldStatus)
}
