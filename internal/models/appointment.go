package models

import "time"

// AppointmentStatus enumerates the lifecycle states of a grooming appointment.
type AppointmentStatus string

const (
	AppointmentScheduled      AppointmentStatus = "scheduled"
	AppointmentCheckedIn      AppointmentStatus = "checked-in"
	AppointmentInProgress     AppointmentStatus = "in-progress"
	AppointmentReadyForPickup AppointmentStatus = "ready-for-pickup"
	AppointmentCompleted      AppointmentStatus = "completed"
	AppointmentCancelled      AppointmentStatus = "cancelled"
	AppointmentNoShow         AppointmentStatus = "no-show"
)

// ConflictActiveStatuses are the statuses that can produce an overlap conflict.
// A scheduled appointment reserves capacity but never collides until the pet is checked in.
var ConflictActiveStatuses = map[AppointmentStatus]struct{}{
	AppointmentCheckedIn:      {},
	AppointmentInProgress:     {},
	AppointmentReadyForPickup: {},
}

// CapacityExcludedStatuses never count toward a stylist's daily load.
var CapacityExcludedStatuses = map[AppointmentStatus]struct{}{
	AppointmentCancelled: {},
	AppointmentNoShow:    {},
}

// IsConflictActive reports whether the status participates in overlap detection.
func (s AppointmentStatus) IsConflictActive() bool {
	_, ok := ConflictActiveStatuses[s]
	return ok
}

// IsCapacityExcluded reports whether the status is ignored by capacity counting.
func (s AppointmentStatus) IsCapacityExcluded() bool {
	_, ok := CapacityExcludedStatuses[s]
	return ok
}

// Valid reports whether the status is a known lifecycle state.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCheckedIn, AppointmentInProgress, AppointmentReadyForPickup,
		AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// Appointment is a booked grooming slot assigned to a stylist.
type Appointment struct {
	ID            string            `db:"id" json:"id"`
	FacilityID    string            `db:"facility_id" json:"facility_id"`
	StylistID     string            `db:"stylist_id" json:"stylist_id"`
	PetName       string            `db:"pet_name" json:"pet_name"`
	PetSize       PetSize           `db:"pet_size" json:"pet_size"`
	CoatCondition CoatCondition     `db:"coat_condition" json:"coat_condition"`
	IsAnxious     bool              `db:"is_anxious" json:"is_anxious"`
	IsAggressive  bool              `db:"is_aggressive" json:"is_aggressive"`
	Date          string            `db:"date" json:"date"`
	StartTime     string            `db:"start_time" json:"start_time"`
	EndTime       string            `db:"end_time" json:"end_time"`
	Status        AppointmentStatus `db:"status" json:"status"`
	Notes         *string           `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// Pet returns the pet profile carried by the appointment.
func (a Appointment) Pet() PetProfile {
	return PetProfile{
		Size:          a.PetSize,
		CoatCondition: a.CoatCondition,
		IsAnxious:     a.IsAnxious,
		IsAggressive:  a.IsAggressive,
	}
}

// AppointmentFilter captures filters for listing appointments.
type AppointmentFilter struct {
	FacilityID string
	StylistID  string
	Date       string
	Status     []AppointmentStatus
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
