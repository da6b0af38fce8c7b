package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	SpreadRepo      SpreadRepository
	BacktestRunRepo BacktestRunRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		SpreadRepo:      NewSpreadRepository(db),
		BacktestRunRepo: NewBacktestRunRepository(db),
	}
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
