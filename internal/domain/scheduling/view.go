package scheduling

import (
	"time"

	"github.com/clinic/clinic/internal/platform/listview"
)

type AppointmentColumn string

const (
	ColumnDateTime AppointmentColumn = "date_time"
	ColumnPatient  AppointmentColumn = "patient"
	ColumnDoctor   AppointmentColumn = "doctor"
	ColumnStatus   AppointmentColumn = "status"
)

func appointmentColumns() listview.Columns[AppointmentColumn] {
	return listview.NewColumns(
		listview.Column[AppointmentColumn]{Key: ColumnDateTime, Label: "Date and time", Visible: true},
		listview.Column[AppointmentColumn]{Key: ColumnPatient, Label: "Patient", Visible: true},
		listview.Column[AppointmentColumn]{Key: ColumnDoctor, Label: "Doctor", Visible: true},
		listview.Column[AppointmentColumn]{Key: ColumnStatus, Label: "Status", Visible: true},
	)
}

var (
	AppointmentScreen = listview.Screen[AppointmentColumn]{Name: "appointments", Defaults: appointmentColumns()}
	DashboardScreen   = listview.Screen[AppointmentColumn]{Name: "dashboard", Defaults: appointmentColumns()}
)

// FallbackName is shown for a patient or doctor id that no longer resolves.
const FallbackName = "N/A"

// UpcomingLimit caps the dashboard's upcoming list.
const UpcomingLimit = 5

// entry is an appointment with its references resolved for display.
type entry struct {
	*Appointment
	PatientName string
	DoctorName  string
}

func resolve(all []*Appointment, patients, doctors map[string]string) []entry {
	out := make([]entry, 0, len(all))
	for _, a := range all {
		e := entry{Appointment: a, PatientName: FallbackName, DoctorName: FallbackName}
		if name, ok := patients[a.PatientID]; ok {
			e.PatientName = name
		}
		if name, ok := doctors[a.DoctorID]; ok {
			e.DoctorName = name
		}
		out = append(out, e)
	}
	return out
}

func entryCell(e entry, k AppointmentColumn) any {
	switch k {
	case ColumnDateTime:
		return e.DateTime
	case ColumnPatient:
		return e.PatientName
	case ColumnDoctor:
		return e.DoctorName
	case ColumnStatus:
		return e.Status
	}
	return nil
}

func entryID(e entry) string { return e.ID }

// appointmentProjector lists every appointment, most recent first.
var appointmentProjector = listview.Projector[entry, AppointmentColumn]{
	Search:       func(e entry) []string { return []string{e.PatientName, e.DoctorName} },
	Compare:      func(a, b entry) int { return b.DateTime.Compare(a.DateTime) },
	ID:           entryID,
	Cell:         entryCell,
	EmptyMessage: "No appointments found.",
}

// upcomingProjector keeps scheduled appointments after now, soonest first.
func upcomingProjector(now time.Time) listview.Projector[entry, AppointmentColumn] {
	return listview.Projector[entry, AppointmentColumn]{
		Keep:         func(e entry) bool { return e.Upcoming(now) },
		Compare:      func(a, b entry) int { return a.DateTime.Compare(b.DateTime) },
		Limit:        UpcomingLimit,
		ID:           entryID,
		Cell:         entryCell,
		EmptyMessage: "No upcoming appointments.",
	}
}
