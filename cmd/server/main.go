package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/pgg11/stock-manager-frontend/internal/config"
	"github.com/pgg11/stock-manager-frontend/internal/repository/mongodb"
	"github.com/pgg11/stock-manager-frontend/internal/repository/sheets"
	"github.com/pgg11/stock-manager-frontend/internal/scheduler"
	"github.com/pgg11/stock-manager-frontend/internal/server/handlers"
	"github.com/pgg11/stock-manager-frontend/internal/server/router"
	catalogsvc "github.com/pgg11/stock-manager-frontend/internal/service/catalog"
	reportingsvc "github.com/pgg11/stock-manager-frontend/internal/service/reporting"
	salessvc "github.com/pgg11/stock-manager-frontend/internal/service/sales"
	"github.com/pgg11/stock-manager-frontend/pkg/clients/stockapi"
	"github.com/pgg11/stock-manager-frontend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	apiClient := stockapi.NewClient(cfg.StockAPI)

	var journal mongodb.Repository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		journal = mongoRepo
		baseLogger.Info("sale journal enabled")
	} else {
		baseLogger.Warn("mongodb uri missing, sale journal disabled")
	}

	var exporter sheets.Exporter
	if cfg.Sheets.SpreadsheetID != "" {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sales summary export enabled")
	} else {
		baseLogger.Warn("spreadsheet id missing, sales summary export disabled")
	}

	catalogService := catalogsvc.NewService(apiClient, baseLogger.Named("svc.catalog"))
	salesService := salessvc.NewService(apiClient, catalogService, journal, baseLogger.Named("svc.sales"))
	reportingService := reportingsvc.NewService(apiClient, catalogService, exporter, baseLogger.Named("svc.reporting"))

	// Prime the catalog snapshot so pricing estimates are available from the
	// first request; the scheduler keeps it fresh afterwards.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalogService.Refresh(startupCtx); err != nil {
		baseLogger.Warn("initial catalog refresh failed", zap.Error(err))
	}
	cancelStartup()

	draftHandler := handlers.NewDraftHandler(salesService, baseLogger.Named("handlers.draft"))
	salesHandler := handlers.NewSalesHandler(salesService, baseLogger.Named("handlers.sales"))
	catalogHandler := handlers.NewCatalogHandler(catalogService, baseLogger.Named("handlers.catalog"))
	reportsHandler := handlers.NewReportsHandler(reportingService, baseLogger.Named("handlers.reports"))
	engine := router.New(draftHandler, salesHandler, catalogHandler, reportsHandler, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Jobs, catalogService, reportingService, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
