package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"spreadlab/config"
	"spreadlab/internal/dto"
	"spreadlab/internal/model"
	"spreadlab/internal/quant"
	"spreadlab/internal/repository"
	"spreadlab/pkg/cache"
	"spreadlab/pkg/logger"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

var (
	// ErrSeriesInput is returned when a request names a stored spread and
	// supplies inline points at the same time, or neither.
	ErrSeriesInput = errors.New("exactly one of spread name or inline points must be provided")
	// ErrNonIncreasingTimestamps is returned for inline points that are
	// not strictly increasing in time.
	ErrNonIncreasingTimestamps = errors.New("point timestamps must be strictly increasing")
	// ErrDegenerateBand rejects threshold pairs whose hysteresis band has
	// collapsed; the generator itself is permissive, the service is not.
	ErrDegenerateBand = errors.New("entry_z must be strictly greater than exit_z")
)

const keyAR1Params = "ar1_params:%s:%d"

// AnalysisService runs the estimation, signal, backtest, and summary
// pipeline over a stored or inline spread series.
type AnalysisService interface {
	Estimate(ctx context.Context, req dto.EstimateRequest) (*dto.EstimateResponse, error)
	Signal(ctx context.Context, req dto.SignalRequest) (*dto.SignalResponse, error)
	Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error)
	Sweep(ctx context.Context, req dto.SweepRequest) (*dto.SweepResponse, error)
}

type analysisService struct {
	cfg        *config.Config
	log        *logger.Logger
	spreadRepo repository.SpreadRepository
	runRepo    repository.BacktestRunRepository
	cache      cache.Cache
}

func NewAnalysisService(
	cfg *config.Config,
	log *logger.Logger,
	spreadRepo repository.SpreadRepository,
	runRepo repository.BacktestRunRepository,
	inmemoryCache cache.Cache,
) AnalysisService {
	return &analysisService{
		cfg:        cfg,
		log:        log,
		spreadRepo: spreadRepo,
		runRepo:    runRepo,
		cache:      inmemoryCache,
	}
}

// resolveSeries loads the series under analysis from the repository or the
// inline points. The returned spread is nil for inline input.
func (s *analysisService) resolveSeries(ctx context.Context, in dto.SeriesInput) (quant.Series, *model.Spread, error) {
	hasName := in.Spread != ""
	hasPoints := len(in.Points) > 0
	if hasName == hasPoints {
		return nil, nil, ErrSeriesInput
	}

	if hasName {
		return s.spreadRepo.GetSeries(ctx, in.Spread)
	}

	series := dto.SeriesFromPoints(in.Points)
	for i := 1; i < len(series); i++ {
		if !series[i].Time.After(series[i-1].Time) {
			return nil, nil, ErrNonIncreasingTimestamps
		}
	}
	return series, nil, nil
}

// fit estimates AR(1) parameters, caching per stored spread version.
func (s *analysisService) fit(ctx context.Context, series quant.Series, spread *model.Spread) (quant.AR1Parameters, error) {
	var key string
	if spread != nil {
		key = fmt.Sprintf(keyAR1Params, spread.Name, spread.UpdatedAt.UnixNano())
		if params, ok := cache.GetTyped[quant.AR1Parameters](s.cache, key); ok {
			return params, nil
		}
	}

	params, err := quant.FitAR1(series)
	if err != nil {
		return quant.AR1Parameters{}, err
	}
	if key != "" {
		s.cache.Set(key, params, s.cfg.Cache.DefaultExpiration)
	}
	return params, nil
}

func (s *analysisService) thresholds(entryZ, exitZ *float64) (float64, float64, error) {
	entry := s.cfg.Strategy.EntryZ
	if entryZ != nil {
		entry = *entryZ
	}
	exit := s.cfg.Strategy.ExitZ
	if exitZ != nil {
		exit = *exitZ
	}
	if entry <= exit {
		return 0, 0, ErrDegenerateBand
	}
	return entry, exit, nil
}

func (s *analysisService) cost(costPerTurnover *float64) float64 {
	if costPerTurnover != nil {
		return *costPerTurnover
	}
	return s.cfg.Strategy.CostPerTurnover
}

func (s *analysisService) Estimate(ctx context.Context, req dto.EstimateRequest) (*dto.EstimateResponse, error) {
	series, spread, err := s.resolveSeries(ctx, req.SeriesInput)
	if err != nil {
		return nil, err
	}

	params, err := s.fit(ctx, series, spread)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Fitted AR(1) model",
		logger.StringField("spread", req.Spread),
		logger.Float64Field("phi", params.Phi),
		logger.Float64Field("half_life", params.HalfLife),
	)

	return &dto.EstimateResponse{
		Spread:       req.Spread,
		Observations: len(series.DropNA()),
		Params:       dto.NewAR1ParametersResponse(params),
	}, nil
}

func (s *analysisService) Signal(ctx context.Context, req dto.SignalRequest) (*dto.SignalResponse, error) {
	series, spread, err := s.resolveSeries(ctx, req.SeriesInput)
	if err != nil {
		return nil, err
	}

	entryZ, exitZ, err := s.thresholds(req.EntryZ, req.ExitZ)
	if err != nil {
		return nil, err
	}

	var mu, sigma float64
	var fitted *dto.AR1ParametersResponse
	if req.Mu != nil && req.Sigma != nil {
		mu, sigma = *req.Mu, *req.Sigma
	} else {
		params, err := s.fit(ctx, series, spread)
		if err != nil {
			return nil, err
		}
		mu, sigma = params.Mu, params.Sigma
		resp := dto.NewAR1ParametersResponse(params)
		fitted = &resp
	}

	signal, zscores := quant.GenerateSignal(series, mu, sigma, entryZ, exitZ)

	out := make([]dto.SignalPointDTO, len(signal))
	for i, p := range signal {
		out[i] = dto.SignalPointDTO{Time: p.Time, Position: int(p.Position)}
	}

	return &dto.SignalResponse{
		Spread:  req.Spread,
		EntryZ:  entryZ,
		ExitZ:   exitZ,
		Params:  fitted,
		Signal:  out,
		ZScores: dto.NewPoints(zscores),
	}, nil
}

func (s *analysisService) Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error) {
	series, spread, err := s.resolveSeries(ctx, req.SeriesInput)
	if err != nil {
		return nil, err
	}

	entryZ, exitZ, err := s.thresholds(req.EntryZ, req.ExitZ)
	if err != nil {
		return nil, err
	}
	costPerTurnover := s.cost(req.CostPerTurnover)

	params, err := s.fit(ctx, series, spread)
	if err != nil {
		return nil, err
	}

	label := req.Label
	if label == "" {
		if spread != nil {
			label = spread.Name
		} else {
			label = "adhoc"
		}
	}

	signal, _ := quant.GenerateSignal(series, params.Mu, params.Sigma, entryZ, exitZ)
	records := quant.RunBacktest(series, signal, costPerTurnover)
	summary := quant.SummarizeWithPeriods(records, label, s.cfg.Strategy.PeriodsPerYear)

	resp := &dto.BacktestResponse{
		Spread:  req.Spread,
		Label:   label,
		EntryZ:  entryZ,
		ExitZ:   exitZ,
		Params:  dto.NewAR1ParametersResponse(params),
		Summary: dto.NewSummaryResponse(summary),
		Records: newRecordDTOs(records),
	}

	if spread != nil {
		run, err := s.persistRun(ctx, spread, resp, records, costPerTurnover)
		if err != nil {
			s.log.ErrorContext(ctx, "Failed to persist backtest run",
				logger.ErrorField(err),
				logger.StringField("spread", spread.Name),
			)
			return nil, err
		}
		resp.RunID = &run.ID
	}

	s.log.InfoContext(ctx, "Backtest completed",
		logger.StringField("label", label),
		logger.IntField("trades", summary.Trades),
		logger.Float64Field("total_pnl", summary.TotalPnL),
	)
	return resp, nil
}

func (s *analysisService) persistRun(ctx context.Context, spread *model.Spread, resp *dto.BacktestResponse, records []quant.BacktestRecord, costPerTurnover float64) (*model.BacktestRun, error) {
	paramsJSON, err := json.Marshal(resp.Params)
	if err != nil {
		return nil, err
	}
	summaryJSON, err := json.Marshal(resp.Summary)
	if err != nil {
		return nil, err
	}

	equity := make([]dto.PointDTO, len(records))
	for i, r := range records {
		equity[i] = dto.PointDTO{Time: r.Time, Value: dto.FiniteFloat(r.Equity)}
	}
	equityJSON, err := json.Marshal(equity)
	if err != nil {
		return nil, err
	}

	run := &model.BacktestRun{
		SpreadID:        &spread.ID,
		Label:           resp.Label,
		EntryZ:          resp.EntryZ,
		ExitZ:           resp.ExitZ,
		CostPerTurnover: costPerTurnover,
		Params:          datatypes.JSON(paramsJSON),
		Summary:         datatypes.JSON(summaryJSON),
		Equity:          datatypes.JSON(equityJSON),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *analysisService) Sweep(ctx context.Context, req dto.SweepRequest) (*dto.SweepResponse, error) {
	series, spread, err := s.resolveSeries(ctx, req.SeriesInput)
	if err != nil {
		return nil, err
	}

	for _, pair := range req.Grid {
		if pair.EntryZ <= pair.ExitZ {
			return nil, ErrDegenerateBand
		}
	}

	params, err := s.fit(ctx, series, spread)
	if err != nil {
		return nil, err
	}
	costPerTurnover := s.cost(req.CostPerTurnover)

	// Each grid cell is an independent pure computation, so fan out.
	results := make([]dto.SweepResult, len(req.Grid))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Strategy.SweepWorkers)

	for i, pair := range req.Grid {
		i, pair := i, pair
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			label := fmt.Sprintf("entry=%.2f exit=%.2f", pair.EntryZ, pair.ExitZ)
			signal, _ := quant.GenerateSignal(series, params.Mu, params.Sigma, pair.EntryZ, pair.ExitZ)
			records := quant.RunBacktest(series, signal, costPerTurnover)
			summary := quant.SummarizeWithPeriods(records, label, s.cfg.Strategy.PeriodsPerYear)
			results[i] = dto.SweepResult{
				EntryZ:  pair.EntryZ,
				ExitZ:   pair.ExitZ,
				Summary: dto.NewSummaryResponse(summary),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Summary.Sharpe > results[j].Summary.Sharpe
	})

	s.log.InfoContext(ctx, "Threshold sweep completed",
		logger.StringField("spread", req.Spread),
		logger.IntField("cells", len(results)),
	)

	return &dto.SweepResponse{
		Spread:  req.Spread,
		Params:  dto.NewAR1ParametersResponse(params),
		Results: results,
	}, nil
}

func newRecordDTOs(records []quant.BacktestRecord) []dto.BacktestRecordDTO {
	out := make([]dto.BacktestRecordDTO, len(records))
	for i, r := range records {
		out[i] = dto.BacktestRecordDTO{
			Time:     r.Time,
			Spread:   dto.FiniteFloat(r.Spread),
			Signal:   int(r.Signal),
			Position: int(r.Position),
			GrossPnL: dto.FiniteFloat(r.GrossPnL),
			Costs:    r.Costs,
			NetPnL:   dto.FiniteFloat(r.NetPnL),
			Equity:   dto.FiniteFloat(r.Equity),
		}
	}
	return out
}
