package models

// ConflictType classifies why a stylist cannot take a slot.
type ConflictType string

const (
	ConflictOverlap       ConflictType = "overlap"
	ConflictCapacity      ConflictType = "capacity"
	ConflictSkill         ConflictType = "skill"
	ConflictConfiguration ConflictType = "configuration"
)

// ConflictDetail explains a single reason a slot is blocked.
type ConflictDetail struct {
	Type          ConflictType `json:"type"`
	AppointmentID string       `json:"appointment_id,omitempty"`
	Message       string       `json:"message"`
}

// StylistConflict aggregates conflict details for a candidate slot.
// Reason holds the last failure summary and may not describe every entry in Conflicts.
type StylistConflict struct {
	HasConflict bool             `json:"has_conflict"`
	Conflicts   []ConflictDetail `json:"conflicts"`
	Reason      *string          `json:"reason"`
}

// CapacityCheck reports the daily load of a stylist.
type CapacityCheck struct {
	HasCapacity  bool `json:"has_capacity"`
	CurrentCount int  `json:"current_count"`
	Remaining    int  `json:"remaining"`
	Max          int  `json:"max"`
}

// StylistAvailabilityCheck is the composite verdict for one stylist and one slot.
type StylistAvailabilityCheck struct {
	StylistID    string          `json:"stylist_id"`
	IsAvailable  bool            `json:"is_available"`
	CanHandlePet bool            `json:"can_handle_pet"`
	Conflict     StylistConflict `json:"conflict"`
	Capacity     CapacityCheck   `json:"capacity"`
}

// StylistMatch pairs an available stylist with the verdict that admitted them.
type StylistMatch struct {
	Stylist      Stylist                  `json:"stylist"`
	Availability StylistAvailabilityCheck `json:"availability"`
}

// Slot is a candidate same-day time window.
type Slot struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilityError is returned when a booking is rejected by the availability engine.
type AvailabilityError struct {
	Message string                   `json:"message"`
	Check   StylistAvailabilityCheck `json:"check"`
}

// Error implements the error interface.
func (e *AvailabilityError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// OpenSlots lists the start times a stylist could take on a day.
type OpenSlots struct {
	StylistID       string   `json:"stylist_id"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes"`
	Slots           []string `json:"slots"`
}
