package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finsight/internal/config"
	"finsight/internal/database"
	"finsight/internal/finance"
	"finsight/internal/logger"
	"finsight/internal/metrics"
	"finsight/internal/scheduler"
	"finsight/internal/server"
	"finsight/internal/services"
	"finsight/internal/validator"

	"github.com/gin-gonic/gin"
)

// @title           Finsight API
// @version         1.0
// @description     Finsight computes net worth, budget variance, goal progress, debt payoff and investment performance over a user's financial records.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	strategy, err := finance.ParseStrategy(appConfig.DebtStrategy)
	if err != nil {
		return fmt.Errorf("invalid DEBT_STRATEGY: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	var collector *metrics.Collector
	if appConfig.MetricsEnabled {
		collector = metrics.NewCollector()
	}

	// Initialize services
	db := dbManager.DB()
	opts := finance.ReportOptions{
		Goals:           finance.GoalPolicy{Tolerance: appConfig.GoalOnTrackTolerance},
		BillHorizonDays: appConfig.BillHorizonDays,
		Strategy:        strategy,
	}
	snapshotService := services.NewSnapshotService(db)
	insightService := services.NewInsightService(snapshotService, opts, collector)
	historyService := services.NewNetWorthHistoryService(db, snapshotService, collector)

	if appConfig.SnapshotSchedule != "" {
		jobs, err := scheduler.New(appConfig.SnapshotSchedule, historyService)
		if err != nil {
			return err
		}
		jobs.Start()
		defer func() { <-jobs.Stop().Done() }()
	} else {
		log.Info("Net worth snapshot schedule disabled")
	}

	router := server.NewRouter(server.Deps{
		Config:   appConfig,
		Insights: insightService,
		History:  historyService,
		Metrics:  collector,
		Ping:     dbManager.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           http.TimeoutHandler(router, appConfig.RequestTimeout, `{"error":{"code":"TIMEOUT","message":"Request timed out"}}`),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Finsight server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.RequestTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
