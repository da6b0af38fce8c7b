package service

import (
	"context"

	"spreadlab/config"
	"spreadlab/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SchedulerService owns the cron runner that keeps the refit batch on its
// configured schedule.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

type schedulerService struct {
	cfg   *config.Config
	log   *logger.Logger
	refit RefitService
	cron  *cron.Cron
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	refit RefitService,
) SchedulerService {
	return &schedulerService{
		cfg:   cfg,
		log:   log,
		refit: refit,
		cron:  cron.New(),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Scheduler.RefitCron, func() {
		runCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.TimeoutDuration)
		defer cancel()

		if err := s.refit.RefitAll(runCtx); err != nil {
			s.log.Error("Scheduled refit failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Scheduler started", logger.StringField("refit_cron", s.cfg.Scheduler.RefitCron))
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}
