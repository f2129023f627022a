// Package scheduler runs the background price jobs on cron schedules.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/pricing"
	"github.com/moneymap/moneymap-backend/internal/repository"
	"github.com/moneymap/moneymap-backend/internal/service"
	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// Config controls when the jobs run and when they raise alerts.
type Config struct {
	PriceRefreshSpec  string  // cron spec for the refresh job
	DropThresholdPct  float64 // price drop (percent) that raises an alert
	AlertCooldown     time.Duration
	LowValueSpec      string  // cron spec for the low-value sweep, empty disables it
	LowValueThreshold float64 // portfolio value below which an alert is raised
}

// Scheduler owns the cron runner and the background jobs.
type Scheduler struct {
	cron          *cron.Cron
	assetRepo     *repository.AssetRepository
	portfolioRepo *repository.PortfolioRepository
	alertService  *service.AlertService
	resolver      *pricing.Resolver
	cfg           Config
}

// New creates a Scheduler with the provided dependencies.
func New(
	assetRepo *repository.AssetRepository,
	portfolioRepo *repository.PortfolioRepository,
	alertService *service.AlertService,
	resolver *pricing.Resolver,
	cfg Config,
) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		assetRepo:     assetRepo,
		portfolioRepo: portfolioRepo,
		alertService:  alertService,
		resolver:      resolver,
		cfg:           cfg,
	}
}

// Start registers the jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.PriceRefreshSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		s.RefreshPrices(ctx)
	}); err != nil {
		return err
	}
	if s.cfg.LowValueSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.LowValueSpec, s.CheckLowValuePortfolios); err != nil {
			return err
		}
	}
	s.cron.Start()
	log.Printf("scheduler started, price refresh on %q", s.cfg.PriceRefreshSpec)
	return nil
}

// Stop stops the cron runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RefreshPrices fetches fresh quotes for every asset, persists the snapshots
// and history points, and raises a price-drop alert when a holding falls past
// the configured threshold. Alerts respect the per-asset cooldown. Failures
// on one asset never stop the sweep.
func (s *Scheduler) RefreshPrices(ctx context.Context) {
	assets, err := s.assetRepo.GetAllAssets()
	if err != nil {
		log.Printf("price refresh: failed to load assets: %v", err)
		return
	}
	if len(assets) == 0 {
		return
	}

	quotes := s.resolver.Resolve(ctx, assets)
	now := time.Now().UTC()

	for _, a := range assets {
		q := quotes[a.Symbol]
		if q.Source != valuation.SourceLive {
			continue
		}

		oldPrice := a.CurrentPrice
		if err := s.assetRepo.UpdateCurrentPrice(a.ID, q.Price); err != nil {
			log.Printf("price refresh: failed to update %s: %v", a.Symbol, err)
			continue
		}
		point := model.AssetPrice{
			ID:      uuid.New().String(),
			AssetID: a.ID,
			Date:    now,
			Price:   q.Price,
		}
		if err := s.assetRepo.AddPricePoint(point); err != nil {
			log.Printf("price refresh: failed to record history for %s: %v", a.Symbol, err)
		}

		s.checkDrop(a, oldPrice, q.Price, now)
	}
}

// checkDrop raises a price-drop alert when the move past the threshold and
// the asset is outside its cooldown window.
func (s *Scheduler) checkDrop(a model.Asset, oldPrice, newPrice float64, now time.Time) {
	if oldPrice <= 0 || newPrice >= oldPrice {
		return
	}
	dropPct := (oldPrice - newPrice) / oldPrice * 100
	if dropPct < s.cfg.DropThresholdPct {
		return
	}
	if !a.CanAlert(s.cfg.AlertCooldown, now) {
		return
	}
	if _, err := s.alertService.RaisePriceDropAlert(a, oldPrice, newPrice, dropPct); err != nil {
		log.Printf("price refresh: failed to raise alert for %s: %v", a.Symbol, err)
	}
}

// CheckLowValuePortfolios sweeps every portfolio and raises a LOW alert for
// those whose total value sits below the configured threshold. Values come
// from the stored price snapshots, which the refresh job keeps current. A
// portfolio with an open alert is skipped until that alert is resolved.
func (s *Scheduler) CheckLowValuePortfolios() {
	portfolios, err := s.portfolioRepo.GetPortfolios()
	if err != nil {
		log.Printf("low-value sweep: failed to load portfolios: %v", err)
		return
	}

	for _, p := range portfolios {
		assets, err := s.assetRepo.GetAssetsOnPortfolioID(p.ID)
		if err != nil {
			log.Printf("low-value sweep: failed to load assets for %s: %v", p.Name, err)
			continue
		}

		var total float64
		for _, a := range assets {
			total += a.Quantity * a.CurrentPrice
		}
		if total >= s.cfg.LowValueThreshold {
			continue
		}

		_, raised, err := s.alertService.RaiseLowValueAlert(p, total, s.cfg.LowValueThreshold)
		if err != nil {
			log.Printf("low-value sweep: failed to raise alert for %s: %v", p.Name, err)
			continue
		}
		if raised {
			log.Printf("low-value sweep: alert raised for %s (%.2f below %.2f)", p.Name, total, s.cfg.LowValueThreshold)
		}
	}
}
