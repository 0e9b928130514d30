package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mvermaat/stock-trade-tracker/internal/api/handlers"
	custommiddleware "github.com/mvermaat/stock-trade-tracker/internal/api/middleware"
	"github.com/mvermaat/stock-trade-tracker/internal/config"
	"github.com/mvermaat/stock-trade-tracker/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	accountService *service.AccountService,
	tradeService *service.TradeService,
	analyticsService *service.AnalyticsService,
	cfg *config.Config,
) http.Handler {
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
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/account", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(accountService)
			r.Get("/", accountHandler.Accounts)
			r.Post("/", accountHandler.CreateAccount)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", accountHandler.GetAccount)
				r.Put("/", accountHandler.UpdateAccount)
				r.Delete("/", accountHandler.DeleteAccount)
			})
		})

		r.Route("/trade", func(r chi.Router) {
			tradeHandler := handlers.NewTradeHandler(tradeService)
			r.Get("/", tradeHandler.AllTrades)
			r.Post("/", tradeHandler.CreateTrade)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateTradeIDMiddleware)
				r.Get("/", tradeHandler.GetTrade)
				r.Put("/", tradeHandler.UpdateTrade)
				r.Delete("/", tradeHandler.DeleteTrade)
			})
		})

		r.Route("/analytics", func(r chi.Router) {
			analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
			r.Get("/positions", analyticsHandler.Positions)
			r.Get("/pnl", analyticsHandler.PnL)
			r.Get("/monthly", analyticsHandler.Monthly)
			r.Get("/outcomes", analyticsHandler.Outcomes)
			r.Get("/overview", analyticsHandler.Overview)
			r.Get("/history", analyticsHandler.History)

			// Internal surface, guarded by the API key + fernet token.
			r.With(custommiddleware.APIKeyMiddleware).
				Post("/snapshot", analyticsHandler.RebuildSnapshot)
		})
	})

	return r
}
