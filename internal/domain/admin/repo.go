package admin

import (
	"context"

	"github.com/clinic/clinic/internal/platform/store"
)

// ClinicRepository persists clinics in insertion order. Update and Delete of
// an unknown id return store.ErrNotFound.
type ClinicRepository interface {
	Create(ctx context.Context, c *Clinic) error
	GetByID(ctx context.Context, id string) (*Clinic, error)
	Update(ctx context.Context, c *Clinic) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Clinic, error)
}

// NewClinicStore returns the in-memory clinic repository.
func NewClinicStore() *store.Collection[Clinic] {
	return store.NewCollection(func(c *Clinic) string { return c.ID })
}

var _ ClinicRepository = (*store.Collection[Clinic])(nil)
