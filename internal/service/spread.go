package service

import (
	"context"

	"spreadlab/internal/dto"
	"spreadlab/internal/model"
	"spreadlab/internal/repository"
	"spreadlab/pkg/cache"
	"spreadlab/pkg/logger"
)

// SpreadService manages stored spread series and their run history.
type SpreadService interface {
	Upsert(ctx context.Context, req dto.UpsertSpreadRequest) (*dto.SpreadResponse, error)
	List(ctx context.Context) ([]dto.SpreadResponse, error)
	Get(ctx context.Context, name string) (*dto.SpreadDetailResponse, error)
	Delete(ctx context.Context, name string) error
	ListRuns(ctx context.Context, name string, limit int) ([]dto.RunResponse, error)
}

type spreadService struct {
	log        *logger.Logger
	spreadRepo repository.SpreadRepository
	runRepo    repository.BacktestRunRepository
	cache      cache.Cache
}

func NewSpreadService(
	log *logger.Logger,
	spreadRepo repository.SpreadRepository,
	runRepo repository.BacktestRunRepository,
	inmemoryCache cache.Cache,
) SpreadService {
	return &spreadService{
		log:        log,
		spreadRepo: spreadRepo,
		runRepo:    runRepo,
		cache:      inmemoryCache,
	}
}

func (s *spreadService) Upsert(ctx context.Context, req dto.UpsertSpreadRequest) (*dto.SpreadResponse, error) {
	for i := 1; i < len(req.Points); i++ {
		if !req.Points[i].Time.After(req.Points[i-1].Time) {
			return nil, ErrNonIncreasingTimestamps
		}
	}

	spread := &model.Spread{Name: req.Name, Description: req.Description}
	points := make([]model.SpreadPoint, len(req.Points))
	for i, p := range req.Points {
		points[i] = model.SpreadPoint{Timestamp: p.Time, Value: p.Value}
	}

	if err := s.spreadRepo.Upsert(ctx, spread, points); err != nil {
		s.log.ErrorContext(ctx, "Failed to upsert spread",
			logger.ErrorField(err),
			logger.StringField("spread", req.Name),
		)
		return nil, err
	}

	s.log.InfoContext(ctx, "Spread stored",
		logger.StringField("spread", req.Name),
		logger.IntField("points", len(points)),
	)

	resp := newSpreadResponse(spread, req.Points)
	return &resp, nil
}

func (s *spreadService) List(ctx context.Context) ([]dto.SpreadResponse, error) {
	spreads, err := s.spreadRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SpreadResponse, 0, len(spreads))
	for _, sp := range spreads {
		out = append(out, dto.SpreadResponse{
			Name:        sp.Name,
			Description: sp.Description,
			UpdatedAt:   sp.UpdatedAt,
		})
	}
	return out, nil
}

func (s *spreadService) Get(ctx context.Context, name string) (*dto.SpreadDetailResponse, error) {
	series, spread, err := s.spreadRepo.GetSeries(ctx, name)
	if err != nil {
		return nil, err
	}

	points := dto.NewPoints(series)
	return &dto.SpreadDetailResponse{
		SpreadResponse: newSpreadResponse(spread, points),
		Points:         points,
	}, nil
}

func (s *spreadService) Delete(ctx context.Context, name string) error {
	if err := s.spreadRepo.Delete(ctx, name); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "Spread deleted", logger.StringField("spread", name))
	return nil
}

func (s *spreadService) ListRuns(ctx context.Context, name string, limit int) ([]dto.RunResponse, error) {
	spread, err := s.spreadRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	runs, err := s.runRepo.ListBySpreadID(ctx, spread.ID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.RunResponse, len(runs))
	for i, run := range runs {
		out[i] = dto.RunResponse{
			ID:        run.ID,
			Spread:    spread.Name,
			Label:     run.Label,
			EntryZ:    run.EntryZ,
			ExitZ:     run.ExitZ,
			CreatedAt: run.CreatedAt,
		}
	}
	return out, nil
}

func newSpreadResponse(spread *model.Spread, points []dto.PointDTO) dto.SpreadResponse {
	resp := dto.SpreadResponse{
		Name:        spread.Name,
		Description: spread.Description,
		PointCount:  len(points),
		UpdatedAt:   spread.UpdatedAt,
	}
	if len(points) > 0 {
		start := points[0].Time
		end := points[len(points)-1].Time
		resp.Start = &start
		resp.End = &end
	}
	return resp
}
