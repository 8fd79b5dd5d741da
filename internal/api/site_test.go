// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSiteHandler(t *testing.T) *SiteHandler {
	t.Helper()
	return NewSiteHandler(nil, nil, "topsecret", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestPlaceholder verifies SVG generation with defaults, explicit dimensions,
and clamping of out-of-range values.
*/
func TestPlaceholder(t *testing.T) {
	handler := newTestSiteHandler(t)

	tests := []struct {
		name       string
		query      string
		wantWidth  string
		wantHeight string
	}{
		{"defaults", "", `width="400"`, `height="300"`},
		{"explicit", "?width=200&height=100", `width="200"`, `height="100"`},
		{"too_small", "?width=1&height=1", `width="16"`, `height="16"`},
		{"too_large", "?width=99999", `width="2000"`, `height="300"`},
		{"garbage", "?width=abc", `width="400"`, `height="300"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.placeholder(recorder, httptest.NewRequest("GET", "/api/v1/placeholder"+tt.query, nil))

			require.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, "image/svg+xml", recorder.Header().Get("Content-Type"))
			assert.Contains(t, recorder.Body.String(), tt.wantWidth)
			assert.Contains(t, recorder.Body.String(), tt.wantHeight)
		})
	}
}

/*
TestPlaceholder_LabelEscaping verifies that the label is HTML-escaped before
it reaches the SVG body.
*/
func TestPlaceholder_LabelEscaping(t *testing.T) {
	handler := newTestSiteHandler(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/placeholder?text=%3Cscript%3E", nil)
	handler.placeholder(recorder, request)

	body := recorder.Body.String()
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

/*
TestRevalidate_InvalidSecret verifies the constant-time secret gate.
*/
func TestRevalidate_InvalidSecret(t *testing.T) {
	handler := newTestSiteHandler(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/revalidate",
		strings.NewReader(`{"path": "/gallery", "secret": "wrong"}`))
	handler.revalidate(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid secret")
}

/*
TestRevalidate_MissingTarget verifies that a valid secret without a path or
tag is rejected before anything is published.
*/
func TestRevalidate_MissingTarget(t *testing.T) {
	handler := newTestSiteHandler(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/revalidate",
		strings.NewReader(`{"secret": "topsecret"}`))
	handler.revalidate(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Either path or tag is required")
}

/*
TestLikeGalleryItem_MissingID verifies the catch-all validation error for an
absent gallery item id.
*/
func TestLikeGalleryItem_MissingID(t *testing.T) {
	handler := newTestSiteHandler(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/likes", strings.NewReader(`{}`))
	handler.likeGalleryItem(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Missing required fields")
}
