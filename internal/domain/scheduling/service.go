package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/clinic/clinic/internal/platform/events"
	"github.com/clinic/clinic/internal/platform/ident"
	"github.com/clinic/clinic/internal/platform/listview"
	"github.com/clinic/clinic/internal/platform/validation"
)

// Directory resolves patient and doctor ids to display names.
type Directory interface {
	PatientNames(ctx context.Context) (map[string]string, error)
	DoctorNames(ctx context.Context) (map[string]string, error)
	CountPatients(ctx context.Context) (int, error)
	CountDoctors(ctx context.Context) (int, error)
}

// ClinicCounter reports the number of clinics for the dashboard.
type ClinicCounter interface {
	CountClinics(ctx context.Context) (int, error)
}

type Service struct {
	appointments AppointmentRepository
	directory    Directory
	clinics      ClinicCounter
	events       events.Publisher
	now          func() time.Time
}

func NewService(appointments AppointmentRepository, directory Directory, clinics ClinicCounter) *Service {
	return &Service{
		appointments: appointments,
		directory:    directory,
		clinics:      clinics,
		events:       events.Nop{},
		now:          time.Now,
	}
}

func (s *Service) SetPublisher(p events.Publisher) {
	s.events = p
}

// CreateAppointment assigns a new id and always starts the appointment as
// scheduled, whatever status the caller sent.
func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	a.Status = StatusScheduled
	if err := validation.Struct(a); err != nil {
		return err
	}
	a.ID = ident.New(ident.AppointmentPrefix)
	if err := s.appointments.Create(ctx, a); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Changed(events.TopicAppointments, events.Created, a.ID))
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// UpdateAppointment replaces the record. Any status may move to any other.
func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	if err := validation.Struct(a); err != nil {
		return err
	}
	if err := s.appointments.Update(ctx, a); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Changed(events.TopicAppointments, events.Updated, a.ID))
	return nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Changed(events.TopicAppointments, events.Deleted, id))
	return nil
}

func (s *Service) resolved(ctx context.Context) ([]entry, error) {
	all, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.directory.PatientNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve patients: %w", err)
	}
	doctors, err := s.directory.DoctorNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve doctors: %w", err)
	}
	return resolve(all, patients, doctors), nil
}

// ProjectAppointments filters by patient or doctor name and sorts by date,
// most recent first.
func (s *Service) ProjectAppointments(ctx context.Context, term string, cols listview.Columns[AppointmentColumn]) (listview.View[AppointmentColumn], error) {
	entries, err := s.resolved(ctx)
	if err != nil {
		return listview.View[AppointmentColumn]{}, err
	}
	return appointmentProjector.Project(entries, term, cols), nil
}

// Stats are the dashboard counters. Upcoming counts the listed upcoming
// appointments, so it never exceeds UpcomingLimit.
type Stats struct {
	Patients int `json:"patients"`
	Doctors  int `json:"doctors"`
	Clinics  int `json:"clinics"`
	Upcoming int `json:"upcoming"`
}

type Dashboard struct {
	Stats    Stats                            `json:"stats"`
	Upcoming listview.View[AppointmentColumn] `json:"upcoming"`
}

func (s *Service) Dashboard(ctx context.Context, cols listview.Columns[AppointmentColumn]) (*Dashboard, error) {
	entries, err := s.resolved(ctx)
	if err != nil {
		return nil, err
	}
	upcoming := upcomingProjector(s.now()).Project(entries, "", cols)

	d := &Dashboard{Upcoming: upcoming}
	d.Stats.Upcoming = upcoming.Total
	if d.Stats.Patients, err = s.directory.CountPatients(ctx); err != nil {
		return nil, err
	}
	if d.Stats.Doctors, err = s.directory.CountDoctors(ctx); err != nil {
		return nil, err
	}
	if s.clinics != nil {
		if d.Stats.Clinics, err = s.clinics.CountClinics(ctx); err != nil {
			return nil, err
		}
	}
	return d, nil
}
