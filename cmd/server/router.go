package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/reino/financas-api/internal/api"
	apiMiddleware "github.com/reino/financas-api/internal/api/middleware"
	"github.com/reino/financas-api/internal/api/shared"
)

// setupRouter registers the middleware chain and every route.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.accountService, app.jwtService)
	accountHandler := api.NewAccountHandler(app.accountService, app.entryService)
	entryHandler := api.NewEntryHandler(app.entryService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/accounts/{id}", accountHandler.GetAccount)
			r.Get("/accounts/{id}/balance", accountHandler.GetBalance)

			r.Post("/entries", entryHandler.CreateEntry)
			r.Get("/entries", entryHandler.ListEntries)
			r.Get("/entries/{id}", entryHandler.GetEntry)
			r.Put("/entries/{id}", entryHandler.UpdateEntry)
			r.Delete("/entries/{id}", entryHandler.DeleteEntry)
			r.Patch("/entries/{id}/status", entryHandler.UpdateEntryStatus)
		})
	})

	r.Get("/health", app.handleHealth)

	return r
}

func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if app.db != nil {
		if err := app.db.PingContext(ctx); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "database unavailable", err)
			return
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
