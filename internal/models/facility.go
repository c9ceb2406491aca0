package models

import "time"

// FacilitySettings stores per-tenant scheduling overrides.
type FacilitySettings struct {
	FacilityID      string    `db:"facility_id" json:"facility_id"`
	AllowParallel   bool      `db:"allow_parallel" json:"allow_parallel"`
	GlobalMaxPerDay int       `db:"global_max_per_day" json:"global_max_per_day"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
