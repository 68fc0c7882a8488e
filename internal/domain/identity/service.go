package identity

import (
	"context"

	"github.com/clinic/clinic/internal/platform/events"
	"github.com/clinic/clinic/internal/platform/ident"
	"github.com/clinic/clinic/internal/platform/listview"
	"github.com/clinic/clinic/internal/platform/validation"
)

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
	events   events.Publisher
}

func NewService(patients PatientRepository, doctors DoctorRepository) *Service {
	return &Service{patients: patients, doctors: doctors, events: events.Nop{}}
}

// SetPublisher sends every successful change to p.
func (s *Service) SetPublisher(p events.Publisher) {
	s.events = p
}

// -- Patient --

// CreatePatient validates p, assigns a new id and appends it. The caller's
// id is ignored.
func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	p.ID = ident.New(ident.PatientPrefix)
	if err := s.patients.Create(ctx, p); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Changed(events.TopicPatients, events.Created, p.ID))
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Changed(events.TopicPatients, events.Updated, p.ID))
	return nil
}

func (s *Service) DeletePatient(ctx context.Context, id string) error {
	if err := s.patients.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Changed(events.TopicPatients, events.Deleted, id))
	return nil
}

func (s *Service) ProjectPatients(ctx context.Context, term string, cols listview.Columns[PatientColumn]) (listview.View[PatientColumn], error) {
	all, err := s.patients.List(ctx)
	if err != nil {
		return listview.View[PatientColumn]{}, err
	}
	return patientProjector.Project(all, term, cols), nil
}

// PatientNames maps patient ids to full names.
func (s *Service) PatientNames(ctx context.Context) (map[string]string, error) {
	all, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, p := range all {
		names[p.ID] = p.FullName
	}
	return names, nil
}

func (s *Service) CountPatients(ctx context.Context) (int, error) {
	all, err := s.patients.List(ctx)
	return len(all), err
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	stored := d.clone()
	stored.ID = ident.New(ident.DoctorPrefix)
	if err := s.doctors.Create(ctx, &stored); err != nil {
		return err
	}
	*d = stored.clone()
	s.events.Publish(ctx, events.Changed(events.TopicDoctors, events.Created, d.ID))
	return nil
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := d.clone()
	return &out, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	stored := d.clone()
	if err := s.doctors.Update(ctx, &stored); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Changed(events.TopicDoctors, events.Updated, d.ID))
	return nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	if err := s.doctors.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Changed(events.TopicDoctors, events.Deleted, id))
	return nil
}

func (s *Service) ProjectDoctors(ctx context.Context, term string, cols listview.Columns[DoctorColumn]) (listview.View[DoctorColumn], error) {
	all, err := s.doctors.List(ctx)
	if err != nil {
		return listview.View[DoctorColumn]{}, err
	}
	return doctorProjector.Project(all, term, cols), nil
}

// DoctorNames maps doctor ids to full names.
func (s *Service) DoctorNames(ctx context.Context) (map[string]string, error) {
	all, err := s.doctors.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, d := range all {
		names[d.ID] = d.FullName
	}
	return names, nil
}

func (s *Service) CountDoctors(ctx context.Context) (int, error) {
	all, err := s.doctors.List(ctx)
	return len(all), err
}
