package identity

import (
	"slices"

	"github.com/clinic/clinic/internal/domain/address"
)

// Patient is a person receiving care.
type Patient struct {
	ID        string          `json:"id"`
	FullName  string          `json:"full_name" validate:"required"`
	CPF       string          `json:"cpf" validate:"required"`
	BirthDate string          `json:"birth_date" validate:"required,isodate"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email" validate:"omitempty,email"`
	Address   address.Address `json:"address"`
}

// DayOfWeek names a weekday in lower case.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// Availability is one weekly slot. Slots may overlap; times are "HH:mm"
// without a zone.
type Availability struct {
	DayOfWeek DayOfWeek `json:"day_of_week" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string    `json:"start_time" validate:"required,hhmm"`
	EndTime   string    `json:"end_time" validate:"required,hhmm"`
}

// Doctor is a practitioner with a license number (CRM).
type Doctor struct {
	ID           string         `json:"id"`
	FullName     string         `json:"full_name" validate:"required"`
	CRM          string         `json:"crm" validate:"required"`
	Specialty    string         `json:"specialty" validate:"required"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email" validate:"omitempty,email"`
	Availability []Availability `json:"availability" validate:"dive"`
}

// clone detaches the availability slice from the receiver.
func (d Doctor) clone() Doctor {
	d.Availability = slices.Clone(d.Availability)
	if d.Availability == nil {
		d.Availability = []Availability{}
	}
	return d
}
