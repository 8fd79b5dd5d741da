// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package api

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/harukimai/cosona/internal/core/gallery"
	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/constants"
	requestutil "github.com/harukimai/cosona/internal/platform/request"
	"github.com/harukimai/cosona/internal/platform/respond"
	"github.com/harukimai/cosona/internal/platform/validate"
)

// Placeholder rendering bounds. Anything outside is clamped, never rejected.
const (
	placeholderMinDimension = 16
	placeholderMaxDimension = 2000
)

// revalidateRecordTTL is how long the last-revalidation marker is kept.
const revalidateRecordTTL = 1 * time.Hour

// SiteHandler implements cross-domain endpoints that do not belong to a
// single entity: the public like counter, the placeholder image generator,
// and the cache revalidation hook for the frontend.
type SiteHandler struct {
	galleryService   *gallery.Service
	redisClient      *goredis.Client
	revalidateSecret string
	logger           *slog.Logger
}

// NewSiteHandler constructs a new [SiteHandler].
func NewSiteHandler(galleryService *gallery.Service, redisClient *goredis.Client, revalidateSecret string, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{
		galleryService:   galleryService,
		redisClient:      redisClient,
		revalidateSecret: revalidateSecret,
		logger:           logger,
	}
}

/*
POST /api/v1/likes.

Description: Public one-way like counter for gallery items. Missing IDs are
rejected with the "Missing required fields" error body.

Request:
  - gallery_item_id: string (UUID)

Response:
  - 200: {likes} updated counter value
  - 400: Missing required fields
  - 404: Gallery item not found
*/
func (handler *SiteHandler) likeGalleryItem(writer http.ResponseWriter, request *http.Request) {
	payload := struct {
		GalleryItemID string `json:"gallery_item_id"`
	}{}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if payload.GalleryItemID == "" {
		respond.Error(writer, request, validate.ErrMissingFields)
		return
	}

	likes, err := handler.galleryService.LikeItem(request.Context(), payload.GalleryItemID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int{"likes": likes})
}

/*
GET /api/v1/placeholder.

Description: Generates an SVG placeholder image on the fly. Used by the
image resolver whenever a stored path cannot be served.

Request:
  - width, height: int (optional, default 400x300, clamped to sane bounds)
  - text: string (optional label, default "Cosona")

Response:
  - 200: image/svg+xml, always. Bad parameters fall back to defaults.
*/
func (handler *SiteHandler) placeholder(writer http.ResponseWriter, request *http.Request) {
	width := parseDimension(requestutil.Query(request, "width"), constants.PlaceholderWidth)
	height := parseDimension(requestutil.Query(request, "height"), constants.PlaceholderHeight)

	label := requestutil.Query(request, "text")
	if label == "" {
		label = "Cosona"
	}

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect width="100%%" height="100%%" fill="#e2e8f0"/>`+
			`<text x="50%%" y="50%%" dominant-baseline="middle" text-anchor="middle" `+
			`font-family="sans-serif" font-size="%d" fill="#64748b">%s</text>`+
			`</svg>`,
		width, height, width, height, height/10, html.EscapeString(label),
	)

	writer.Header().Set("Content-Type", "image/svg+xml")
	writer.Header().Set("Cache-Control", "public, max-age=86400")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write([]byte(svg))
}

/*
POST /api/v1/revalidate.

Description: Cache revalidation hook called by the admin SPA after content
writes. The event is fanned out over Redis pub/sub so every frontend
instance can invalidate its rendered pages.

Request:
  - path: string (page path to revalidate) OR tag: string (cache tag)
  - secret: string (shared revalidation secret)

Response:
  - 200: {revalidated: true, target}
  - 400: Neither path nor tag provided
  - 401: Invalid secret
*/
func (handler *SiteHandler) revalidate(writer http.ResponseWriter, request *http.Request) {
	payload := struct {
		Path   string `json:"path"`
		Tag    string `json:"tag"`
		Secret string `json:"secret"`
	}{}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if subtle.ConstantTimeCompare([]byte(payload.Secret), []byte(handler.revalidateSecret)) != 1 {
		respond.Error(writer, request, apperr.Unauthorized("Invalid secret"))
		return
	}

	if payload.Path == "" && payload.Tag == "" {
		respond.Error(writer, request, apperr.ValidationError("Either path or tag is required"))
		return
	}

	event := map[string]string{}
	target := payload.Path
	if payload.Path != "" {
		event["path"] = payload.Path
	}
	if payload.Tag != "" {
		event["tag"] = payload.Tag
		if target == "" {
			target = payload.Tag
		}
	}

	encoded, err := json.Marshal(event)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	ctx := request.Context()
	if err := handler.redisClient.Publish(ctx, constants.RedisChannelRevalidate, encoded).Err(); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	// Keep a short-lived marker of the last revalidation per target so
	// operators can inspect what was recently flushed.
	marker := constants.RedisPrefixRevalidate + target
	if err := handler.redisClient.Set(ctx, marker, time.Now().Format(time.RFC3339), revalidateRecordTTL).Err(); err != nil {
		handler.logger.Warn("revalidate_marker_write_failed", slog.Any("error", err))
	}

	handler.logger.Info("revalidation_published", slog.String("target", target))

	respond.OK(writer, map[string]any{
		"revalidated": true,
		"target":      target,
	})
}

// parseDimension parses a pixel dimension, clamping to the allowed range.
func parseDimension(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	if value < placeholderMinDimension {
		return placeholderMinDimension
	}
	if value > placeholderMaxDimension {
		return placeholderMaxDimension
	}
	return value
}
