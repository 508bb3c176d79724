package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/config"
	"github.com/mamadbah2/herdbook/internal/service/reporting"
	"github.com/mamadbah2/herdbook/pkg/clients/notify"
)

// Scheduler runs the daily herd report and pushes the resulting alerts.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	notifier     notify.Client
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The notifier may be nil when
// alert delivery is not configured.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		reportingSvc: reportingSvc,
		notifier:     notifier,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the report job and begins running it on the configured
// schedule.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailyReport); err != nil {
		s.logger.Error("failed to schedule daily report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailyReport() {
	s.logger.Info("generating daily report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now()

	report, err := s.reportingSvc.GenerateDailyReport(ctx, now)
	if err != nil {
		s.logger.Error("failed to generate daily report", zap.Error(err))
		return
	}

	if err := s.reportingSvc.ExportDaily(ctx, report); err != nil {
		s.logger.Error("failed to export daily report", zap.Error(err))
	}

	if s.notifier == nil {
		return
	}

	alerts, err := s.reportingSvc.CollectAlerts(ctx, now)
	if err != nil {
		s.logger.Error("failed to collect alerts", zap.Error(err))
		return
	}

	for _, alert := range alerts {
		if err := s.notifier.SendAlert(ctx, alert); err != nil {
			s.logger.Error("failed to send alert",
				zap.String("kind", alert.Kind), zap.String("subject", alert.Subject), zap.Error(err))
		}
	}

	s.logger.Info("daily report finished", zap.Int("alerts", len(alerts)))
}
