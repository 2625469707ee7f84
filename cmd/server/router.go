package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lexis-api/internal/api"
	apiMiddleware "github.com/phrazzld/lexis-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	learnerHandler := api.NewLearnerHandler(app.learnerService, app.logger)
	itemHandler := api.NewItemHandler(app.itemService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Identity is asserted by the gateway in front of the service
		r.Use(apiMiddleware.RequireUserID)

		r.Post("/learner", learnerHandler.CreateLearner)
		r.Put("/learner/settings", learnerHandler.UpdateSettings)
		r.Post("/learner/streak-freezes", learnerHandler.BuyStreakFreeze)
		r.Get("/dashboard", learnerHandler.GetDashboard)

		r.Get("/session", sessionHandler.GetSession)

		r.Post("/items", itemHandler.CaptureItem)
		r.Get("/inbox", itemHandler.ListInbox)
		r.Post("/items/{id}/promote", itemHandler.PromoteItem)
		r.Delete("/items/{id}", itemHandler.DeleteItem)
		r.Post("/items/{id}/review", reviewHandler.SubmitReview)
		r.Post("/items/{id}/grammar-review", reviewHandler.SubmitGrammarReview)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
