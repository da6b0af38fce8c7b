package repository

import (
	"context"

	"spreadlab/internal/model"

	"gorm.io/gorm"
)

type BacktestRunRepository interface {
	Create(ctx context.Context, run *model.BacktestRun) error
	Get(ctx context.Context, id uint) (*model.BacktestRun, error)
	ListBySpreadID(ctx context.Context, spreadID uint, limit int) ([]model.BacktestRun, error)
	List(ctx context.Context, limit int) ([]model.BacktestRun, error)
}

type backtestRunRepository struct {
	db *gorm.DB
}

func NewBacktestRunRepository(db *gorm.DB) BacktestRunRepository {
	return &backtestRunRepository{db: db}
}

func (r *backtestRunRepository) Create(ctx context.Context, run *model.BacktestRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *backtestRunRepository) Get(ctx context.Context, id uint) (*model.BacktestRun, error) {
	var run model.BacktestRun
	err := r.db.WithContext(ctx).Preload("Spread").First(&run, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &run, nil
}

func (r *backtestRunRepository) ListBySpreadID(ctx context.Context, spreadID uint, limit int) ([]model.BacktestRun, error) {
	var runs []model.BacktestRun
	q := r.db.WithContext(ctx).Where("spread_id = ?", spreadID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *backtestRunRepository) List(ctx context.Context, limit int) ([]model.BacktestRun, error) {
	var runs []model.BacktestRun
	q := r.db.WithContext(ctx).Preload("Spread").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
