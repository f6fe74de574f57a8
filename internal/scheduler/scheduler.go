package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pgg11/stock-manager-frontend/internal/config"
	"github.com/pgg11/stock-manager-frontend/internal/service/catalog"
	"github.com/pgg11/stock-manager-frontend/internal/service/reporting"
)

// Scheduler manages the background jobs: periodic catalog snapshot refresh
// and the scheduled sales summary export.
type Scheduler struct {
	cron         *cron.Cron
	catalogSvc   *catalog.Service
	reportingSvc *reporting.Service
	cfg          config.JobsConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance in the configured timezone.
func NewScheduler(cfg config.JobsConfig, catalogSvc *catalog.Service, reportingSvc *reporting.Service, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		catalogSvc:   catalogSvc,
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}, nil
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("catalog_refresh", s.cfg.CatalogRefreshCron),
		zap.String("sales_export", s.cfg.SalesExportCron))

	if _, err := s.cron.AddFunc(s.cfg.CatalogRefreshCron, s.refreshCatalog); err != nil {
		s.logger.Error("failed to schedule catalog refresh", zap.Error(err))
	}

	if _, err := s.cron.AddFunc(s.cfg.SalesExportCron, s.exportSalesSummary); err != nil {
		s.logger.Error("failed to schedule sales export", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.catalogSvc.Refresh(ctx); err != nil {
		s.logger.Error("scheduled catalog refresh failed", zap.Error(err))
		return
	}
	s.logger.Debug("scheduled catalog refresh completed")
}

func (s *Scheduler) exportSalesSummary() {
	s.logger.Info("exporting sales summary")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	end := time.Now()
	start := end.AddDate(0, 0, -1)

	if err := s.reportingSvc.ExportSalesSummary(ctx, start, end); err != nil {
		s.logger.Error("sales summary export failed", zap.Error(err))
	}
}
