// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package message

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/harukimai/cosona/internal/platform/middleware"
	requestutil "github.com/harukimai/cosona/internal/platform/request"
	"github.com/harukimai/cosona/internal/platform/respond"
	"github.com/harukimai/cosona/internal/platform/sec"
	"github.com/harukimai/cosona/pkg/pagination"
)

// Handler implements the HTTP layer for the contact inbox.
type Handler struct {
	service *Service
}

// NewHandler constructs a new message [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the admin inbox router. The public submission endpoint is
// mounted separately as POST /api/v1/contact by the API server.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listMessages)
	router.Get("/{id}", handler.getMessage)
	router.Patch("/{id}/status", handler.setStatus)
	router.Delete("/{id}", handler.deleteMessage)

	return router
}

/*
POST /api/v1/contact.

Description: Public contact form submission. All four fields are required;
a missing field yields 400 with the "Missing required fields" error body.

Request:
  - name, email, subject, message: string

Response:
  - 201: {id} of the stored message
  - 400: Missing required fields / invalid email
*/
func (handler *Handler) SubmitContact(writer http.ResponseWriter, request *http.Request) {
	m := &Message{}
	if err := requestutil.DecodeJSON(request, m); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Submit(request.Context(), m); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, map[string]string{FieldID: m.ID})
}

// listMessages handles GET /api/v1/messages (admin).
func (handler *Handler) listMessages(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	status := Status(requestutil.Query(request, "status"))

	messages, total, err := handler.service.ListMessages(request.Context(), status, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, messages, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// getMessage handles GET /api/v1/messages/{id} (admin).
// Viewing an unread message marks it read.
func (handler *Handler) getMessage(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	m, err := handler.service.GetMessage(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, m)
}

// setStatus handles PATCH /api/v1/messages/{id}/status (admin).
func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	payload := struct {
		Status Status `json:"status"`
	}{}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetStatus(request.Context(), id, payload.Status); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{FieldID: id, FieldStatus: string(payload.Status)})
}

// deleteMessage handles DELETE /api/v1/messages/{id} (admin).
func (handler *Handler) deleteMessage(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteMessage(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
