// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package post

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
)

// Handler implements the HTTP layer for the blog.
type Handler struct {
	service *Service
}

// NewHandler constructs a new post [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the blog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPosts)
	router.Get("/browse", handler.browsePosts)
	router.Get("/{identifier}", handler.getPost)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createPost)
		admin.Patch("/{id}", handler.updatePost)
		admin.Delete("/{id}", handler.deletePost)
	})

	return router
}

// listPosts handles GET /api/v1/posts.
// Admins see drafts by passing published=false; everyone else gets
// published posts only.
func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	publishedOnly := true
	if queryParams.Has("published") && !convert.ToBool(queryParams.Get("published")) {
		claims := requestutil.Claims(request)
		if claims != nil && claims.Role == string(sec.RoleAdmin) {
			publishedOnly = false
		}
	}

	filter := Filter{
		Category:      queryParams.Get("category"),
		Tag:           queryParams.Get("tag"),
		PublishedOnly: publishedOnly,
		Sort:          queryParams.Get("sort"),
	}

	posts, total, err := handler.service.ListPosts(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// browsePosts handles GET /api/v1/posts/browse, the pipeline-backed public
// blog surface over published posts.
func (handler *Handler) browsePosts(writer http.ResponseWriter, request *http.Request) {
	state := listview.ParseState(request.URL.Query(), FieldCategory)
	result := handler.service.BrowsePosts(request.Context(), state)

	respond.Paginated(writer, result.PageItems, pagination.NewMeta(result.Page, constants.BlogPageSize, result.TotalCount))
}

// getPost handles GET /api/v1/posts/{identifier} (UUID or slug).
func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	p, err := handler.service.GetPost(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

// createPost handles POST /api/v1/posts (admin).
func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	p := &Post{}
	if err := requestutil.DecodeJSON(request, p); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePost(request.Context(), p); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, p)
}

// updatePost handles PATCH /api/v1/posts/{id} (admin).
func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	patch := Patch{}
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdatePost(request.Context(), id, patch); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{FieldID: id})
}

// deletePost handles DELETE /api/v1/posts/{id} (admin).
func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeletePost(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
