package service

import (
	"spreadlab/config"
	"spreadlab/internal/repository"
	"spreadlab/pkg/cache"
	"spreadlab/pkg/logger"
)

type Service struct {
	AnalysisService  AnalysisService
	SpreadService    SpreadService
	RefitService     RefitService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	analysisService := NewAnalysisService(cfg, log, repo.SpreadRepo, repo.BacktestRunRepo, inmemoryCache)
	spreadService := NewSpreadService(log, repo.SpreadRepo, repo.BacktestRunRepo, inmemoryCache)
	refitService := NewRefitService(cfg, log, repo.SpreadRepo, analysisService)
	schedulerService := NewSchedulerService(cfg, log, refitService)

	return &Service{
		AnalysisService:  analysisService,
		SpreadService:    spreadService,
		RefitService:     refitService,
		SchedulerService: schedulerService,
	}
}
