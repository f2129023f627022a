package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moneymap/moneymap-backend/internal/api"
	"github.com/moneymap/moneymap-backend/internal/config"
	"github.com/moneymap/moneymap-backend/internal/database"
	"github.com/moneymap/moneymap-backend/internal/finnhub"
	"github.com/moneymap/moneymap-backend/internal/pricing"
	"github.com/moneymap/moneymap-backend/internal/repository"
	"github.com/moneymap/moneymap-backend/internal/scheduler"
	"github.com/moneymap/moneymap-backend/internal/secrets"
	"github.com/moneymap/moneymap-backend/internal/service"
)

// resolveAPIKey prefers the encrypted setting over the environment so key
// rotation does not need a redeploy.
func resolveAPIKey(store *secrets.Store, envKey string) string {
	if store == nil {
		return envKey
	}
	stored, err := store.Get("finnhub_api_key")
	if err != nil {
		if envKey != "" {
			// First boot: seed the encrypted setting from the environment.
			if err := store.Set("finnhub_api_key", envKey); err != nil {
				log.Printf("Failed to store API key: %v", err)
			}
		}
		return envKey
	}
	return stored
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	clientRepo := repository.NewClientRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Encrypted settings store, optional
	var secretStore *secrets.Store
	if cfg.Secrets.Key != "" {
		secretStore, err = secrets.NewStore(settingRepo, cfg.Secrets.Key)
		if err != nil {
			log.Fatalf("Failed to initialize secrets store: %v", err)
		}
	}

	// Market data feed and quote resolver
	feed := finnhub.NewClient(cfg.Finnhub.BaseURL, resolveAPIKey(secretStore, cfg.Finnhub.APIKey))
	resolver := pricing.NewResolver(feed, cfg.Finnhub.MaxInFlight)

	// Create services
	systemService := service.NewSystemService(db)
	clientService := service.NewClientService(clientRepo, assetRepo, resolver)
	portfolioService := service.NewPortfolioService(portfolioRepo, clientRepo, assetRepo, resolver)
	assetService := service.NewAssetService(assetRepo, portfolioRepo, resolver)
	transactionService := service.NewTransactionService(transactionRepo, assetRepo)
	tradingService := service.NewTradingService(clientRepo, portfolioRepo, assetRepo, transactionRepo, resolver)
	ruleEngine := service.NewRuleEngine(ruleRepo, paymentRepo, alertRepo)
	paymentService := service.NewPaymentService(paymentRepo, ruleEngine)
	ruleService := service.NewRuleService(ruleRepo)
	alertService := service.NewAlertService(alertRepo, assetRepo)
	marketService := service.NewMarketService(feed, resolver)
	reportService := service.NewReportService(clientRepo, portfolioRepo, assetRepo, transactionRepo, resolver)

	// Background jobs
	sched := scheduler.New(assetRepo, portfolioRepo, alertService, resolver, scheduler.Config{
		PriceRefreshSpec:  cfg.Scheduler.PriceRefreshSpec,
		DropThresholdPct:  cfg.Scheduler.DropThresholdPct,
		AlertCooldown:     cfg.Scheduler.AlertCooldown,
		LowValueSpec:      cfg.Scheduler.LowValueSpec,
		LowValueThreshold: cfg.Scheduler.LowValueThreshold,
	})
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Client:      clientService,
		Portfolio:   portfolioService,
		Asset:       assetService,
		Trading:     tradingService,
		Transaction: transactionService,
		Payment:     paymentService,
		Rule:        ruleService,
		Alert:       alertService,
		Market:      marketService,
		Report:      reportService,
		Refresher:   sched,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
