package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/moneymap/moneymap-backend/internal/api/handlers"
	custommiddleware "github.com/moneymap/moneymap-backend/internal/api/middleware"
	"github.com/moneymap/moneymap-backend/internal/config"
	"github.com/moneymap/moneymap-backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System      *service.SystemService
	Client      *service.ClientService
	Portfolio   *service.PortfolioService
	Asset       *service.AssetService
	Trading     *service.TradingService
	Transaction *service.TransactionService
	Payment     *service.PaymentService
	Rule        *service.RuleService
	Alert       *service.AlertService
	Market      *service.MarketService
	Report      *service.ReportService
	Refresher   handlers.PriceRefresher
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
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
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/clients", func(r chi.Router) {
			clientHandler := handlers.NewClientHandler(svcs.Client)
			portfolioHandler := handlers.NewPortfolioHandler(svcs.Portfolio)
			reportHandler := handlers.NewReportHandler(svcs.Report)
			r.Get("/", clientHandler.Clients)
			r.Post("/", clientHandler.CreateClient)
			r.Get("/top", clientHandler.TopClients)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", clientHandler.Client)
				r.Put("/", clientHandler.UpdateClient)
				r.Delete("/", clientHandler.DeleteClient)
				r.Post("/deposit", clientHandler.Deposit)
				r.Post("/withdraw", clientHandler.Withdraw)
				r.Get("/distribution", portfolioHandler.Distribution)
				r.Get("/report", reportHandler.ClientReport)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			reportHandler := handlers.NewReportHandler(svcs.Report)
			r.Get("/", reportHandler.Reports)
		})

		r.Route("/portfolios", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svcs.Portfolio)
			assetHandler := handlers.NewAssetHandler(svcs.Asset)
			transactionHandler := handlers.NewTransactionHandler(svcs.Transaction)
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.Portfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/summary", portfolioHandler.Summary)
				r.Get("/top-assets", portfolioHandler.TopAssets)
				r.Get("/assets", assetHandler.Assets)
				r.Get("/transactions", transactionHandler.PortfolioTransactions)
			})
		})

		r.Route("/assets", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svcs.Asset)
			transactionHandler := handlers.NewTransactionHandler(svcs.Transaction)
			r.Post("/", assetHandler.CreateAsset)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.Asset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
				r.Post("/refresh-price", assetHandler.RefreshPrice)
				r.Get("/price-history", assetHandler.PriceHistory)
				r.Get("/transactions", transactionHandler.AssetTransactions)
			})
		})

		r.Route("/trading", func(r chi.Router) {
			tradingHandler := handlers.NewTradingHandler(svcs.Trading, svcs.Transaction)
			r.Post("/buy", tradingHandler.Buy)
			r.Post("/sell", tradingHandler.Sell)
			r.Post("/transactions", tradingHandler.RecordTransaction)
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svcs.Transaction)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.Transaction)
			})
		})

		r.Route("/payments", func(r chi.Router) {
			paymentHandler := handlers.NewPaymentHandler(svcs.Payment)
			r.Get("/", paymentHandler.Payments)
			r.Post("/", paymentHandler.CreatePayment)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", paymentHandler.Payment)
				r.Put("/status", paymentHandler.UpdateStatus)
				r.Get("/history", paymentHandler.StatusHistory)
			})
		})

		r.Route("/rules", func(r chi.Router) {
			ruleHandler := handlers.NewRuleHandler(svcs.Rule)
			r.Get("/", ruleHandler.Rules)
			r.Post("/", ruleHandler.CreateRule)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", ruleHandler.Rule)
				r.Put("/", ruleHandler.UpdateRule)
				r.Delete("/", ruleHandler.DeleteRule)
			})
		})

		r.Route("/alerts", func(r chi.Router) {
			alertHandler := handlers.NewAlertHandler(svcs.Alert)
			r.Get("/", alertHandler.Alerts)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", alertHandler.Alert)
				r.Put("/status", alertHandler.UpdateStatus)
			})
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(svcs.Market)
			r.Get("/catalog", marketHandler.Catalog)
			r.Get("/quote/{symbol}", marketHandler.Quote)
			r.Get("/history/{symbol}", marketHandler.History)
		})

		// Internal namespace, shared-key guarded
		r.Route("/internal", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)
			maintenanceHandler := handlers.NewMaintenanceHandler(svcs.Refresher)
			r.Post("/refresh-prices", maintenanceHandler.RefreshPrices)
		})
	})

	return r
}
