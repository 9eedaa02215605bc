package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/dayplan-api/internal/api"
	apiMiddleware "github.com/phrazzld/dayplan-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	scheduleHandler := api.NewScheduleHandler(app.scheduleService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api/users/{"+api.UserIDParam+"}", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/assign-specific", scheduleHandler.AssignSpecific)
		r.Post("/assign-first-free", scheduleHandler.AssignFirstFree)
		r.Post("/promote", scheduleHandler.Promote)
		r.Post("/skeleton", scheduleHandler.GenerateSkeleton)
		r.Get("/days", scheduleHandler.ListDays)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
