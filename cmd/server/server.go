// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/velvetlane/storefront/internal/api"
	"github.com/velvetlane/storefront/internal/api/themes"
	"github.com/velvetlane/storefront/internal/config"
	"github.com/velvetlane/storefront/internal/ratelimit"
)

func newServer(cfg *config.Config, limiter *ratelimit.Limiter) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithRateLimit(limiter),
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	// Register routes
	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func newRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	limiterCfg := ratelimit.DefaultConfig()
	if cfg.API.WriteRatePerMinute > 0 {
		limiterCfg.WriteMaxPerMinute = cfg.API.WriteRatePerMinute
	}
	limiterCfg.TrustProxy = cfg.API.TrustProxy
	return ratelimit.New(limiterCfg)
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Theme routes
	mux.HandleFunc("GET /api/v1/themes", themes.HandleThemesList)
	mux.HandleFunc("POST /api/v1/themes", themes.HandleThemeCreate)
	mux.HandleFunc("GET /api/v1/themes/active", themes.HandleActiveTheme)
	mux.HandleFunc("GET /api/v1/themes/active/css", themes.HandleActiveThemeCSS)
	mux.HandleFunc("GET /api/v1/themes/{id}", themes.HandleThemeDetail)
	mux.HandleFunc("PUT /api/v1/themes/{id}", themes.HandleThemeUpdate)
	mux.HandleFunc("DELETE /api/v1/themes/{id}", themes.HandleThemeDelete)
	mux.HandleFunc("POST /api/v1/themes/{id}/activate", themes.HandleThemeActivate)
	mux.HandleFunc("POST /api/v1/themes/{id}/clone", themes.HandleThemeClone)

	// Preset catalog
	mux.HandleFunc("GET /api/v1/presets", themes.HandlePresetsList)
	mux.HandleFunc("POST /api/v1/presets/{id}/instantiate", themes.HandlePresetInstantiate)

	// Font library
	mux.HandleFunc("GET /api/v1/fonts", themes.HandleFontsList)
}
