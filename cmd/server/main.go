package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/config"
	"github.com/mamadbah2/herdbook/internal/repository/mongodb"
	"github.com/mamadbah2/herdbook/internal/repository/sheets"
	"github.com/mamadbah2/herdbook/internal/scheduler"
	"github.com/mamadbah2/herdbook/internal/server/handlers"
	"github.com/mamadbah2/herdbook/internal/server/router"
	herdsvc "github.com/mamadbah2/herdbook/internal/service/herd"
	medicalsvc "github.com/mamadbah2/herdbook/internal/service/medical"
	milksvc "github.com/mamadbah2/herdbook/internal/service/milk"
	reportingsvc "github.com/mamadbah2/herdbook/internal/service/reporting"
	weightsvc "github.com/mamadbah2/herdbook/internal/service/weight"
	"github.com/mamadbah2/herdbook/pkg/clients/notify"
	"github.com/mamadbah2/herdbook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	} else {
		baseLogger.Warn("google sheets not configured, report export disabled")
	}

	herdSvc := herdsvc.NewService(store, baseLogger.Named("svc.herd"))
	milkSvc := milksvc.NewService(store, baseLogger.Named("svc.milk"))
	weightSvc := weightsvc.NewService(store, baseLogger.Named("svc.weight"))
	medicalSvc := medicalsvc.NewService(store, baseLogger.Named("svc.medical"))
	reportingSvc := reportingsvc.NewService(store, sheetsRepo, baseLogger.Named("svc.reporting"))

	var notifier notify.Client
	if cfg.Alerts.Enabled() {
		notifier = notify.NewClient(cfg.Alerts)
		baseLogger.Info("alert webhook enabled")
	} else {
		baseLogger.Warn("alert webhook not configured, alert delivery disabled")
	}

	engine := router.New(router.Handlers{
		Cattle:  handlers.NewCattleHandler(herdSvc, baseLogger.Named("handlers.cattle")),
		Milk:    handlers.NewMilkHandler(milkSvc, baseLogger.Named("handlers.milk")),
		Weight:  handlers.NewWeightHandler(weightSvc, herdSvc, baseLogger.Named("handlers.weight")),
		Medical: handlers.NewMedicalHandler(medicalSvc, baseLogger.Named("handlers.medical")),
		Stream:  handlers.NewStreamHandler(store, baseLogger.Named("handlers.stream")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     engine,
		ReadTimeout: 15 * time.Second,
		// No write timeout: the /api/stream endpoints hold their connection
		// open for as long as the client stays subscribed.
		IdleTimeout: 60 * time.Second,
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
