package admin

import (
	"context"

	"github.com/clinic/clinic/internal/platform/events"
	"github.com/clinic/clinic/internal/platform/ident"
	"github.com/clinic/clinic/internal/platform/listview"
	"github.com/clinic/clinic/internal/platform/validation"
)

type Service struct {
	clinics ClinicRepository
	events  events.Publisher
}

func NewService(clinics ClinicRepository) *Service {
	return &Service{clinics: clinics, events: events.Nop{}}
}

func (s *Service) SetPublisher(p events.Publisher) {
	s.events = p
}

func (s *Service) CreateClinic(ctx context.Context, c *Clinic) error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	c.ID = ident.New(ident.ClinicPrefix)
	if err := s.clinics.Create(ctx, c); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Changed(events.TopicClinics, events.Created, c.ID))
	return nil
}

func (s *Service) GetClinic(ctx context.Context, id string) (*Clinic, error) {
	return s.clinics.GetByID(ctx, id)
}

func (s *Service) UpdateClinic(ctx context.Context, c *Clinic) error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if err := s.clinics.Update(ctx, c); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Changed(events.TopicClinics, events.Updated, c.ID))
	return nil
}

func (s *Service) DeleteClinic(ctx context.Context, id string) error {
	if err := s.clinics.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Changed(events.TopicClinics, events.Deleted, id))
	return nil
}

func (s *Service) ProjectClinics(ctx context.Context, term string, cols listview.Columns[ClinicColumn]) (listview.View[ClinicColumn], error) {
	all, err := s.clinics.List(ctx)
	if err != nil {
		return listview.View[ClinicColumn]{}, err
	}
	return clinicProjector.Project(all, term, cols), nil
}

func (s *Service) CountClinics(ctx context.Context) (int, error) {
	all, err := s.clinics.List(ctx)
	return len(all), err
}
