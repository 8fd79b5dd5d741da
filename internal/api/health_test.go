// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package api_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harukimai/cosona/internal/api"
)

func probeReadiness(t *testing.T, deps api.HealthDependencies) *httptest.ResponseRecorder {
	t.Helper()
	_, readiness := api.NewHealthHandlers(deps, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	return recorder
}

/*
TestLiveness verifies that the liveness probe answers without consulting
any dependency.
*/
func TestLiveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

/*
TestReadiness verifies the dependency model of the readiness probe: the
database and session store are required, the image store is not. A storage
outage is reported in the checks but the instance stays in rotation since
the resolver degrades to placeholders.
*/
func TestReadiness(t *testing.T) {
	healthy := func() error { return nil }
	down := func() error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantBody   string
	}{
		{
			name: "all healthy",
			deps: api.HealthDependencies{
				CheckDatabase: healthy,
				CheckCache:    healthy,
				CheckStorage:  healthy,
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ready"`,
		},
		{
			name: "database down",
			deps: api.HealthDependencies{
				CheckDatabase: down,
				CheckCache:    healthy,
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `"status":"degraded"`,
		},
		{
			name: "session store down",
			deps: api.HealthDependencies{
				CheckDatabase: healthy,
				CheckCache:    down,
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `"status":"degraded"`,
		},
		{
			name: "only image store down",
			deps: api.HealthDependencies{
				CheckDatabase: healthy,
				CheckCache:    healthy,
				CheckStorage:  down,
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ready"`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := probeReadiness(t, testCase.deps)
			assert.Equal(t, testCase.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), testCase.wantBody)
		})
	}
}
