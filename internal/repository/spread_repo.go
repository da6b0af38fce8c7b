package repository

import (
	"context"
	"errors"
	"math"

	"spreadlab/internal/model"
	"spreadlab/internal/quant"

	"gorm.io/gorm"
)

type SpreadRepository interface {
	Upsert(ctx context.Context, spread *model.Spread, points []model.SpreadPoint) error
	GetByName(ctx context.Context, name string) (*model.Spread, error)
	GetSeries(ctx context.Context, name string) (quant.Series, *model.Spread, error)
	List(ctx context.Context) ([]model.Spread, error)
	Delete(ctx context.Context, name string) error
}

type spreadRepository struct {
	db *gorm.DB
}

func NewSpreadRepository(db *gorm.DB) SpreadRepository {
	return &spreadRepository{db: db}
}

// Upsert creates the spread when missing and replaces its points wholesale.
func (r *spreadRepository) Upsert(ctx context.Context, spread *model.Spread, points []model.SpreadPoint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Spread
		err := tx.Where("name = ?", spread.Name).First(&existing).Error
		switch {
		case err == nil:
			existing.Description = spread.Description
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			*spread = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(spread).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if err := tx.Where("spread_id = ?", spread.ID).Delete(&model.SpreadPoint{}).Error; err != nil {
			return err
		}
		for i := range points {
			points[i].SpreadID = spread.ID
		}
		return tx.CreateInBatches(points, 500).Error
	})
}

func (r *spreadRepository) GetByName(ctx context.Context, name string) (*model.Spread, error) {
	var spread model.Spread
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&spread).Error; err != nil {
		return nil, translateError(err)
	}
	return &spread, nil
}

// GetSeries loads the full ordered point set of a stored spread as a core
// series, mapping null values to the NaN missing marker.
func (r *spreadRepository) GetSeries(ctx context.Context, name string) (quant.Series, *model.Spread, error) {
	spread, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	var points []model.SpreadPoint
	err = r.db.WithContext(ctx).
		Where("spread_id = ?", spread.ID).
		Order("timestamp ASC").
		Find(&points).Error
	if err != nil {
		return nil, nil, err
	}

	series := make(quant.Series, len(points))
	for i, p := range points {
		v := math.NaN()
		if p.Value != nil {
			v = *p.Value
		}
		series[i] = quant.Point{Time: p.Timestamp, Value: v}
	}
	return series, spread, nil
}

func (r *spreadRepository) List(ctx context.Context) ([]model.Spread, error) {
	var spreads []model.Spread
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&spreads).Error; err != nil {
		return nil, err
	}
	return spreads, nil
}

func (r *spreadRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var spread model.Spread
		if err := tx.Where("name = ?", name).First(&spread).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("spread_id = ?", spread.ID).Delete(&model.SpreadPoint{}).Error; err != nil {
			return err
		}
		return tx.Delete(&spread).Error
	})
}
