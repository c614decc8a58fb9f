package api

import (
	"net/http"

	"golang.org/x/time/rate"

	"venue-route-service/internal/api/handlers"
	"venue-route-service/internal/platform/obs"
	"venue-route-service/internal/ports"
)

// Deps are the collaborators and limits the HTTP layer needs.
type Deps struct {
	Repo             ports.VenueRepository
	Checks           map[string]handlers.Check
	BatchConcurrency int
	// PlanRateLimit is the sustained planning requests per second; <= 0 disables limiting.
	PlanRateLimit float64
	PlanRateBurst int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Checks: d.Checks}
	venueHandler := &handlers.VenueHandler{Repo: d.Repo}
	routeHandler := &handlers.RouteHandler{
		Repo:             d.Repo,
		BatchConcurrency: d.BatchConcurrency,
	}
	limiter := newPlanLimiter(d.PlanRateLimit, d.PlanRateBurst)

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/venues", venueHandler.List)
	mux.HandleFunc("/venues/{id}", venueHandler.Get)
	mux.HandleFunc("/venues/{id}/routes", rateLimit(limiter, routeHandler.Plan))
	mux.HandleFunc("/venues/{id}/routes/batch", rateLimit(limiter, routeHandler.PlanBatch))
	mux.Handle("/metrics", obs.Handler())

	return requestIDMiddleware(loggingMiddleware(metricsMiddleware(mux)))
}

func newPlanLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
