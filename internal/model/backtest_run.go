package model

import (
	"time"

	"gorm.io/datatypes"
)

// BacktestRun is a persisted backtest invocation: the thresholds and cost
// it was run with, the fitted model, and the resulting summary and equity
// curve for the presentation layer.
type BacktestRun struct {
	ID              uint           `gorm:"primarykey"`
	SpreadID        *uint          `gorm:"null;index"`
	Label           string         `gorm:"not null"`
	EntryZ          float64        `gorm:"not null"`
	ExitZ           float64        `gorm:"not null"`
	CostPerTurnover float64        `gorm:"not null"`
	Params          datatypes.JSON `gorm:"type:jsonb"`
	Summary         datatypes.JSON `gorm:"type:jsonb"`
	Equity          datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`

	Spread *Spread `gorm:"foreignKey:SpreadID"`
}

func (BacktestRun) TableName() string {
	return "backtest_runs"
}
