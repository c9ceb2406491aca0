package models

import "time"

// AppointmentEventType names a lifecycle transition published downstream.
type AppointmentEventType string

const (
	EventAppointmentBooked        AppointmentEventType = "appointment.booked"
	EventAppointmentRescheduled   AppointmentEventType = "appointment.rescheduled"
	EventAppointmentStatusChanged AppointmentEventType = "appointment.status_changed"
)

// AppointmentEvent is the payload emitted when an appointment changes.
type AppointmentEvent struct {
	ID             string               `json:"id"`
	Type           AppointmentEventType `json:"type"`
	OccurredAt     time.Time            `json:"occurred_at"`
	Appointment    Appointment          `json:"appointment"`
	PreviousStatus AppointmentStatus    `json:"previous_status,omitempty"`
}
