package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"gatherplan/internal/delivery/http/controllers"
	"gatherplan/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
// Write routes go through limiter when it is non-nil.
func NewRouter(eventController *controllers.EventController, healthController *controllers.HealthController, limiter *middleware.RateLimiter) *http.ServeMux {
	mux := http.NewServeMux()

	write := func(h http.HandlerFunc) http.Handler {
		if limiter == nil {
			return h
		}
		return limiter.Middleware(h)
	}

	// API Routes
	mux.Handle("POST /api/events", write(eventController.CreateEvent))
	mux.HandleFunc("GET /api/events/{eventID}", eventController.GetEvent)
	mux.Handle("POST /api/events/{eventID}/participants", write(eventController.AddParticipant))

	// Operations
	mux.HandleFunc("GET /healthz", healthController.Healthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
