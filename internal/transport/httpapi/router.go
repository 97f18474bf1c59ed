package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tallybook/tallybook/internal/transport/httpapi/handler"
	"github.com/tallybook/tallybook/internal/transport/httpapi/middleware"
	"github.com/tallybook/tallybook/pkg/logger"
)

// Config holds router configuration.
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	AuthHandler        *handler.AuthHandler
	JournalHandler     *handler.JournalHandler
	TransactionHandler *handler.TransactionHandler
	BalanceHandler     *handler.BalanceHandler
	ReportHandler      *handler.ReportHandler
	JWTMiddleware      func(http.Handler) http.Handler
}

// NewRouter creates the HTTP router.
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit())

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)

	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public)
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes
		if cfg.JWTMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.JWTMiddleware)

				if cfg.JournalHandler != nil {
					r.Post("/journals", cfg.JournalHandler.CreateJournal)
					r.Get("/journals", cfg.JournalHandler.ListJournals)
					r.Get("/journals/{id}", cfg.JournalHandler.GetJournal)
				}

				if cfg.TransactionHandler != nil {
					r.Post("/journals/{id}/transactions", cfg.TransactionHandler.CreateTransaction)
					r.Post("/journals/{id}/adjustments", cfg.TransactionHandler.CreateAdjustment)
					r.Get("/journals/{id}/entries", cfg.TransactionHandler.ListEntries)
				}

				if cfg.BalanceHandler != nil {
					r.Get("/journals/{id}/balances", cfg.BalanceHandler.GetAccountBalances)
					r.Get("/journals/{id}/balances/categories", cfg.BalanceHandler.GetCategoryBalances)
					r.Get("/journals/{id}/balances/accounts/{name}", cfg.BalanceHandler.GetAccountBalance)
					r.Get("/journals/{id}/trial-balance", cfg.BalanceHandler.GetTrialBalance)
				}

				if cfg.ReportHandler != nil {
					r.Get("/journals/{id}/report", cfg.ReportHandler.GetTrialBalanceReport)
					r.Get("/journals/{id}/entries/export", cfg.ReportHandler.ExportEntries)
					r.Post("/journals/{id}/import", cfg.ReportHandler.ImportTransactions)
				}
			})
		}
	})

	return r
}
