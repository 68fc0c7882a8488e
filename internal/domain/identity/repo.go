package identity

import (
	"context"

	"github.com/clinic/clinic/internal/platform/store"
)

// PatientRepository persists patients in insertion order. Update and Delete
// of an unknown id return store.ErrNotFound.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Patient, error)
}

// DoctorRepository persists doctors in insertion order.
type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id string) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Doctor, error)
}

// NewPatientStore returns the in-memory patient repository.
func NewPatientStore() *store.Collection[Patient] {
	return store.NewCollection(func(p *Patient) string { return p.ID })
}

// NewDoctorStore returns the in-memory doctor repository.
func NewDoctorStore() *store.Collection[Doctor] {
	return store.NewCollection(func(d *Doctor) string { return d.ID })
}

var (
	_ PatientRepository = (*store.Collection[Patient])(nil)
	_ DoctorRepository  = (*store.Collection[Doctor])(nil)
)
