package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/repository"
)

// AlertService handles alert triage and the alerts raised by the scheduled
// jobs: price drops on assets and low-value portfolios.
type AlertService struct {
	alertRepo *repository.AlertRepository
	assetRepo *repository.AssetRepository
}

// NewAlertService creates a new AlertService with the provided repository dependencies.
func NewAlertService(
	alertRepo *repository.AlertRepository,
	assetRepo *repository.AssetRepository,
) *AlertService {
	return &AlertService{
		alertRepo: alertRepo,
		assetRepo: assetRepo,
	}
}

// GetAlerts retrieves alerts matching the filter, newest first.
func (s *AlertService) GetAlerts(filter model.AlertFilter) ([]model.Alert, error) {
	return s.alertRepo.GetAlerts(filter)
}

// GetAlert retrieves a single alert by ID.
func (s *AlertService) GetAlert(alertID string) (model.Alert, error) {
	return s.alertRepo.GetAlertOnID(alertID)
}

// TransitionStatus advances an alert through triage. Only the transitions
// OPEN to ACKNOWLEDGED to INVESTIGATING to CLOSED are allowed, plus
// DISMISSED from any non-terminal state.
func (s *AlertService) TransitionStatus(alertID string, target model.AlertStatus) (model.Alert, error) {
	if !target.Valid() {
		return model.Alert{}, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidStatusTransition, target)
	}
	a, err := s.alertRepo.GetAlertOnID(alertID)
	if err != nil {
		return model.Alert{}, err
	}
	if !a.Status.CanTransitionTo(target) {
		return model.Alert{}, fmt.Errorf("%w: %s to %s", apperrors.ErrInvalidStatusTransition, a.Status, target)
	}
	if err := s.alertRepo.UpdateAlertStatus(alertID, target); err != nil {
		return model.Alert{}, err
	}
	return s.alertRepo.GetAlertOnID(alertID)
}

// RaisePriceDropAlert records a price-drop alert for an asset and stamps the
// asset's cooldown. Callers check Asset.CanAlert before invoking.
func (s *AlertService) RaisePriceDropAlert(asset model.Asset, oldPrice, newPrice, dropPercent float64) (model.Alert, error) {
	alert := model.Alert{
		ID:       uuid.New().String(),
		AssetID:  asset.ID,
		Severity: model.SeverityHigh,
		Status:   model.AlertOpen,
		Message: fmt.Sprintf("%s dropped %.2f%%: %.2f to %.2f",
			asset.Symbol, dropPercent, oldPrice, newPrice),
	}
	if err := s.alertRepo.CreateAlert(alert); err != nil {
		return model.Alert{}, fmt.Errorf("failed to create price-drop alert: %w", err)
	}
	if err := s.assetRepo.UpdateLastAlertAt(asset.ID, time.Now().UTC()); err != nil {
		return model.Alert{}, err
	}
	return alert, nil
}

// RaiseLowValueAlert records a low-value alert for a portfolio. The second
// return value is false when the portfolio already has an open alert, in which
// case no new alert is created.
func (s *AlertService) RaiseLowValueAlert(p model.Portfolio, totalValue, threshold float64) (model.Alert, bool, error) {
	open, err := s.alertRepo.HasOpenAlertForPortfolio(p.ID)
	if err != nil {
		return model.Alert{}, false, err
	}
	if open {
		return model.Alert{}, false, nil
	}
	alert := model.Alert{
		ID:          uuid.New().String(),
		PortfolioID: p.ID,
		Severity:    model.SeverityLow,
		Status:      model.AlertOpen,
		Message: fmt.Sprintf("Portfolio %s value %.2f is below %.2f",
			p.Name, totalValue, threshold),
	}
	if err := s.alertRepo.CreateAlert(alert); err != nil {
		return model.Alert{}, false, fmt.Errorf("failed to create low-value alert: %w", err)
	}
	return alert, true, nil
}
