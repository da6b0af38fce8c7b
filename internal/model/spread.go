package model

import "time"

// Spread is a named, unit-normalized spread series owned by an upstream
// ingestion collaborator and stored here ready for analysis.
type Spread struct {
	ID          uint      `gorm:"primarykey"`
	Name        string    `gorm:"not null;uniqueIndex"`
	Description string    `gorm:"null"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Points []SpreadPoint `gorm:"foreignKey:SpreadID;constraint:OnDelete:CASCADE"`
}

func (Spread) TableName() string {
	return "spreads"
}

// SpreadPoint is a single observation. A null value marks a missing
// observation (explicit gap) rather than an absent row.
type SpreadPoint struct {
	ID        uint      `gorm:"primarykey"`
	SpreadID  uint      `gorm:"not null;uniqueIndex:idx_spread_points_spread_ts"`
	Timestamp time.Time `gorm:"not null;uniqueIndex:idx_spread_points_spread_ts"`
	Value     *float64  `gorm:"null"`
}

func (SpreadPoint) TableName() string {
	return "spread_points"
}
