package dto

import "time"

// UpsertSpreadRequest creates a spread or replaces the points of an
// existing one. Points must arrive with strictly increasing timestamps.
type UpsertSpreadRequest struct {
	Name        string     `json:"name" validate:"required,max=128"`
	Description string     `json:"description" validate:"max=512"`
	Points      []PointDTO `json:"points" validate:"required,min=1,dive"`
}

// SpreadResponse describes a stored spread without its points.
type SpreadResponse struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	PointCount  int        `json:"point_count"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SpreadDetailResponse includes the full point set for charting.
type SpreadDetailResponse struct {
	SpreadResponse
	Points []PointDTO `json:"points"`
}
