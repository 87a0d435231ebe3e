// services/dashboard_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ltp-analytics/dashboard/logger"
	"github.com/ltp-analytics/dashboard/metrics"
	"github.com/ltp-analytics/dashboard/models"
	"github.com/ltp-analytics/dashboard/reconcile"
	"github.com/ltp-analytics/dashboard/scraper"
)

// DashboardService loads register snapshots and runs the reconciliation
// engine over them. Stored and uploaded data go through the same engine.
type DashboardService struct {
	Source RegisterSource
	Loader *scraper.Loader
}

func NewDashboardService(source RegisterSource, loader *scraper.Loader) *DashboardService {
	return &DashboardService{Source: source, Loader: loader}
}

// Projects returns the stored LTP Hub register.
func (s *DashboardService) Projects(ctx context.Context) ([]models.ProjectRecord, error) {
	projects, err := s.Source.LoadProjects(ctx)
	if err != nil {
		metrics.IngestionFailures.WithLabelValues(metrics.RegisterLTP).Inc()
		return nil, fmt.Errorf("failed to load LTP Hub register: %w", err)
	}
	metrics.RegisterRecords.WithLabelValues(metrics.RegisterLTP).Set(float64(len(projects)))
	return projects, nil
}

// Financials returns the stored AFE register.
func (s *DashboardService) Financials(ctx context.Context) ([]models.FinancialRecord, error) {
	financials, err := s.Source.LoadFinancials(ctx)
	if err != nil {
		metrics.IngestionFailures.WithLabelValues(metrics.RegisterAFE).Inc()
		return nil, fmt.Errorf("failed to load AFE register: %w", err)
	}
	metrics.RegisterRecords.WithLabelValues(metrics.RegisterAFE).Set(float64(len(financials)))
	return financials, nil
}

// Compute loads both stored registers and computes the dashboard.
func (s *DashboardService) Compute(ctx context.Context) (models.DashboardResult, error) {
	start := time.Now()
	projects, err := s.Projects(ctx)
	if err != nil {
		return models.DashboardResult{}, err
	}
	financials, err := s.Financials(ctx)
	if err != nil {
		return models.DashboardResult{}, err
	}

	result := s.compute(projects, financials)
	metrics.ObserveCompute(metrics.OriginStored, start)
	return result, nil
}

// ComputeUploaded computes the dashboard over uploaded register content
// without storing it.
func (s *DashboardService) ComputeUploaded(ctx context.Context, ltpName string, ltp io.Reader, afeName string, afe io.Reader) (models.DashboardResult, error) {
	start := time.Now()
	projects, err := s.Loader.LoadProjects(ctx, ltpName, ltp)
	if err != nil {
		metrics.IngestionFailures.WithLabelValues(metrics.RegisterLTP).Inc()
		return models.DashboardResult{}, fmt.Errorf("failed to read uploaded LTP Hub file %s: %w", ltpName, err)
	}
	financials, err := s.Loader.LoadFinancials(ctx, afeName, afe)
	if err != nil {
		metrics.IngestionFailures.WithLabelValues(metrics.RegisterAFE).Inc()
		return models.DashboardResult{}, fmt.Errorf("failed to read uploaded AFE file %s: %w", afeName, err)
	}

	result := s.compute(projects, financials)
	metrics.ObserveCompute(metrics.OriginUpload, start)
	return result, nil
}

func (s *DashboardService) compute(projects []models.ProjectRecord, financials []models.FinancialRecord) models.DashboardResult {
	result := reconcile.Compute(projects, financials)
	logger.Log.Infow("Service: dashboard computed",
		"projects", len(projects),
		"financials", len(financials),
		"requests", result.Metrics.TotalRequests,
		"pending", result.Metrics.PendingRequests,
		"planners", len(result.Planners),
	)
	return result
}
