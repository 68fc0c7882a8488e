package scheduling

import (
	"context"

	"github.com/clinic/clinic/internal/platform/store"
)

// AppointmentRepository persists appointments in insertion order. Update and
// Delete of an unknown id return store.ErrNotFound.
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Appointment, error)
}

// NewAppointmentStore returns the in-memory appointment repository.
func NewAppointmentStore() *store.Collection[Appointment] {
	return store.NewCollection(func(a *Appointment) string { return a.ID })
}

var _ AppointmentRepository = (*store.Collection[Appointment])(nil)
