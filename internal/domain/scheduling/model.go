package scheduling

import (
	"time"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Appointment links a patient and a doctor at a point in time. The ids are
// not checked against the patient and doctor collections; unknown ids render
// as "N/A".
type Appointment struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id" validate:"required"`
	DoctorID  string    `json:"doctor_id" validate:"required"`
	DateTime  time.Time `json:"date_time" validate:"required"`
	Status    Status    `json:"status" validate:"required,oneof=scheduled cancelled completed"`
	Notes     string    `json:"notes,omitempty"`
}

// Upcoming reports whether a is still scheduled and strictly after now.
func (a *Appointment) Upcoming(now time.Time) bool {
	return a.Status == StatusScheduled && a.DateTime.After(now)
}
