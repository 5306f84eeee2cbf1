package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Growth-Tracker/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/config"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/service"
)

// Services bundles the services the HTTP layer depends on.
type Services struct {
	System      *service.SystemService
	Account     *service.AccountService
	Holdings    *service.HoldingsService
	Transaction *service.TransactionService
	Growth      *service.GrowthService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/account", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(services.Account, services.Holdings)
			transactionHandler := handlers.NewTransactionHandler(services.Transaction)
			growthHandler := handlers.NewGrowthHandler(services.Growth)

			r.Get("/", accountHandler.Accounts)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", accountHandler.GetAccount)
				r.Get("/holdings", accountHandler.Holdings)
				r.Get("/transactions", transactionHandler.Transactions)
				r.Post("/transactions", transactionHandler.CreateTransaction)
				r.Get("/growth", growthHandler.Growth)
				r.Get("/changes", growthHandler.Changes)
			})
		})
	})

	return r
}
