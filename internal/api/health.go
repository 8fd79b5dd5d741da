// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

// Package api hosts the HTTP surface that is not owned by a single domain
// package: health probes, the router, and the site utility endpoints
// (placeholder images, cache revalidation, public likes).
package api

import (
	"log/slog"
	"net/http"

	"github.com/harukimai/cosona/internal/platform/respond"
)

// HealthDependencies holds the probe functions for Cosona's backing
// services. Nil members are skipped, so a deployment without object
// storage simply reports fewer checks.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool holding all CMS content.
	CheckDatabase func() error

	// CheckCache pings Redis, which holds the auth sessions.
	CheckCache func() error

	// CheckStorage pings the MinIO image store. Storage failures are
	// reported but never flip readiness: the image resolver degrades to
	// placeholder URLs, so the site keeps rendering without it.
	CheckStorage func() error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health. It answers as long as the process serves
// requests; backing services are the readiness probe's concern.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

// checkResult is one dependency's entry in the readiness report.
type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// readiness handles GET /ready. It probes each wired dependency and
// answers 503 when a required one is down, which takes the instance out
// of the load balancer rotation until the dependency recovers.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	probes := []struct {
		name     string
		check    func() error
		optional bool
	}{
		{name: "postgres", check: handler.dependencies.CheckDatabase},
		{name: "redis", check: handler.dependencies.CheckCache},
		{name: "object_storage", check: handler.dependencies.CheckStorage, optional: true},
	}

	results := make([]checkResult, 0, len(probes))
	isSystemReady := true

	for _, probe := range probes {
		if probe.check == nil {
			continue
		}

		result := checkResult{Name: probe.name, IsOK: true}
		if err := probe.check(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			if !probe.optional {
				isSystemReady = false
			}
			handler.logger.Error("readiness_check_failed",
				slog.String("dependency", probe.name),
				slog.Bool("optional", probe.optional),
				slog.Any("error", err),
			)
		}
		results = append(results, result)
	}

	responseStatus := "ready"
	if !isSystemReady {
		responseStatus = "degraded"
		// respond.OK always sends 200, so the 503 header goes out first.
		writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		writer.WriteHeader(http.StatusServiceUnavailable)
	}

	respond.OK(writer, map[string]any{
		"status": responseStatus,
		"checks": results,
	})
}
