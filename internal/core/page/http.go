// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package page

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/harukimai/cosona/internal/platform/middleware"
	requestutil "github.com/harukimai/cosona/internal/platform/request"
	"github.com/harukimai/cosona/internal/platform/respond"
	"github.com/harukimai/cosona/internal/platform/sec"
)

// Handler implements the HTTP layer for CMS pages.
type Handler struct {
	service *Service
}

// NewHandler constructs a new page [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the page endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPages)
	router.Get("/{identifier}", handler.getPage)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createPage)
		admin.Patch("/{id}", handler.updatePage)
		admin.Delete("/{id}", handler.deletePage)
	})

	return router
}

func (handler *Handler) listPages(writer http.ResponseWriter, request *http.Request) {
	pages, err := handler.service.ListPages(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pages)
}

// getPage handles GET /api/v1/pages/{identifier} (UUID or slug).
func (handler *Handler) getPage(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	p, err := handler.service.GetPage(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) createPage(writer http.ResponseWriter, request *http.Request) {
	p := &Page{}
	if err := requestutil.DecodeJSON(request, p); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if claims := requestutil.Claims(request); claims != nil {
		p.UpdatedBy = claims.Username
	}

	if err := handler.service.CreatePage(request.Context(), p); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, p)
}

func (handler *Handler) updatePage(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	patch := Patch{}
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The editor stamp comes from the session, never the body.
	if claims := requestutil.Claims(request); claims != nil {
		patch.UpdatedBy = claims.Username
	}

	if err := handler.service.UpdatePage(request.Context(), id, patch); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{FieldID: id})
}

func (handler *Handler) deletePage(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeletePage(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
