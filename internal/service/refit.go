package service

import (
	"context"
	"errors"

	"spreadlab/config"
	"spreadlab/internal/dto"
	"spreadlab/internal/quant"
	"spreadlab/internal/repository"
	"spreadlab/pkg/logger"
	"spreadlab/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// RefitService re-estimates AR(1) parameters for every stored spread so
// the cached parameters stay warm between data updates.
type RefitService interface {
	RefitAll(ctx context.Context) error
}

type refitService struct {
	cfg        *config.Config
	log        *logger.Logger
	spreadRepo repository.SpreadRepository
	analysis   AnalysisService
}

func NewRefitService(
	cfg *config.Config,
	log *logger.Logger,
	spreadRepo repository.SpreadRepository,
	analysis AnalysisService,
) RefitService {
	return &refitService{
		cfg:        cfg,
		log:        log,
		spreadRepo: spreadRepo,
		analysis:   analysis,
	}
}

func (s *refitService) RefitAll(ctx context.Context) error {
	spreads, err := s.spreadRepo.List(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list spreads for refit", logger.ErrorField(err))
		return err
	}

	if len(spreads) == 0 {
		s.log.InfoContext(ctx, "No spreads to refit")
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Scheduler.MaxConcurrency)

	for _, spread := range spreads {
		if !utils.ShouldContinue(ctx, s.log) {
			break
		}

		spread := spread
		g.Go(func() error {
			resp, err := s.analysis.Estimate(gctx, dto.EstimateRequest{
				SeriesInput: dto.SeriesInput{Spread: spread.Name},
			})
			if err != nil {
				// A spread too short to fit is a data problem, not a
				// reason to abort the whole batch.
				if errors.Is(err, quant.ErrInsufficientData) {
					s.log.WarnContext(gctx, "Skipping refit, insufficient data",
						logger.StringField("spread", spread.Name),
					)
					return nil
				}
				s.log.ErrorContext(gctx, "Failed to refit spread",
					logger.ErrorField(err),
					logger.StringField("spread", spread.Name),
				)
				return err
			}

			s.log.DebugContext(gctx, "Refit spread",
				logger.StringField("spread", spread.Name),
				logger.IntField("observations", resp.Observations),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "Refit batch completed", logger.IntField("spreads", len(spreads)))
	return nil
}
