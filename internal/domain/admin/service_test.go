package admin

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/clinic/clinic/internal/domain/address"
	"github.com/clinic/clinic/internal/platform/store"
	"github.com/clinic/clinic/internal/platform/validation"
)

// -- Mock Repository --

type mockClinicRepo struct {
	order   []string
	clinics map[string]Clinic
	listErr error
}

func newMockClinicRepo() *mockClinicRepo {
	return &mockClinicRepo{clinics: make(map[string]Clinic)}
}

func (m *mockClinicRepo) Create(_ context.Context, c *Clinic) error {
	if _, ok := m.clinics[c.ID]; ok {
		return store.ErrDuplicateID
	}
	m.order = append(m.order, c.ID)
	m.clinics[c.ID] = *c
	return nil
}

func (m *mockClinicRepo) GetByID(_ context.Context, id string) (*Clinic, error) {
	c, ok := m.clinics[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (m *mockClinicRepo) Update(_ context.Context, c *Clinic) error {
	if _, ok := m.clinics[c.ID]; !ok {
		return store.ErrNotFound
	}
	m.clinics[c.ID] = *c
	return nil
}

func (m *mockClinicRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.clinics[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.clinics, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockClinicRepo) List(_ context.Context) ([]*Clinic, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*Clinic, 0, len(m.order))
	for _, id := range m.order {
		c := m.clinics[id]
		out = append(out, &c)
	}
	return out, nil
}

func newTestService() *Service {
	return NewService(newMockClinicRepo())
}

func validClinic(name, cnpj string) *Clinic {
	return &Clinic{
		Name:  name,
		CNPJ:  cnpj,
		Phone: "(11) 3333-4444",
		Email: "contato@saudeplena.com",
		Address: address.Address{
			Zip: "01310-100", Street: "Av. Paulista", Number: "1000", Complement: "Sala 10",
			Neighborhood: "Bela Vista", City: "São Paulo", State: "SP",
		},
	}
}

func TestService_CreateClinic(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c := validClinic("Clínica Saúde Plena", "12.345.678/0001-90")
	if err := svc.CreateClinic(ctx, c); err != nil {
		t.Fatalf("CreateClinic: %v", err)
	}
	if !strings.HasPrefix(c.ID, "c-") {
		t.Errorf("expected c- prefix, got %q", c.ID)
	}
	other := validClinic("Hospital Bem Estar", "98.765.432/0001-10")
	svc.CreateClinic(ctx, other)
	if other.ID == c.ID {
		t.Error("ids must be unique")
	}
	if n, _ := svc.CountClinics(ctx); n != 2 {
		t.Errorf("expected 2 clinics, got %d", n)
	}
}

func TestService_CreateClinic_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Clinic)
		field  string
	}{
		{"missing name", func(c *Clinic) { c.Name = "" }, "name"},
		{"missing cnpj", func(c *Clinic) { c.CNPJ = "" }, "cnpj"},
		{"bad email", func(c *Clinic) { c.Email = "contato" }, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockClinicRepo()
			svc := NewService(repo)
			c := validClinic("Clínica", "1")
			tt.mutate(c)

			err := svc.CreateClinic(context.Background(), c)
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Fields[0].Field != tt.field {
				t.Errorf("expected %s, got %s", tt.field, verr.Fields[0].Field)
			}
			if len(repo.clinics) != 0 {
				t.Error("nothing must be stored")
			}
		})
	}
}

func TestService_CreateClinic_EmptyAddress(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	c := &Clinic{Name: "Clínica Saúde Plena", CNPJ: "12.345.678/0001-90"}
	if err := svc.CreateClinic(ctx, c); err != nil {
		t.Fatalf("clinic without address rejected: %v", err)
	}
	got, err := svc.GetClinic(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetClinic: %v", err)
	}
	if got.Address != (address.Address{}) {
		t.Errorf("expected empty address, got %+v", got.Address)
	}
}

func TestService_UpdateClinic(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	c := validClinic("Clínica Saúde Plena", "12.345.678/0001-90")
	svc.CreateClinic(ctx, c)

	changed := *c
	changed.Name = "Clínica Saúde Total"
	if err := svc.UpdateClinic(ctx, &changed); err != nil {
		t.Fatalf("UpdateClinic: %v", err)
	}
	got, _ := svc.GetClinic(ctx, c.ID)
	if *got != changed {
		t.Errorf("expected %+v, got %+v", changed, *got)
	}

	ghost := validClinic("Ghost", "0")
	ghost.ID = "c-missing"
	if err := svc.UpdateClinic(ctx, ghost); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_DeleteClinic_Twice(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	c := validClinic("Clínica Saúde Plena", "12.345.678/0001-90")
	svc.CreateClinic(ctx, c)

	if err := svc.DeleteClinic(ctx, c.ID); err != nil {
		t.Fatalf("DeleteClinic: %v", err)
	}
	if err := svc.DeleteClinic(ctx, c.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_ProjectClinics(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.CreateClinic(ctx, validClinic("Clínica Saúde Plena", "12.345.678/0001-90"))
	svc.CreateClinic(ctx, validClinic("Hospital Bem Estar", "98.765.432/0001-10"))

	view, _ := svc.ProjectClinics(ctx, "hospital", ClinicScreen.Defaults)
	if view.Total != 1 || view.Rows[0].Cells["name"] != "Hospital Bem Estar" {
		t.Errorf("unexpected rows %+v", view.Rows)
	}
	view, _ = svc.ProjectClinics(ctx, "0001", ClinicScreen.Defaults)
	if view.Total != 2 {
		t.Errorf("expected both clinics by cnpj, got %d", view.Total)
	}
	view, _ = svc.ProjectClinics(ctx, "paulista", ClinicScreen.Defaults)
	if !view.Empty {
		t.Error("address is not searchable")
	}
}

func TestService_ProjectClinics_RepoError(t *testing.T) {
	repo := newMockClinicRepo()
	repo.listErr = errors.New("connection refused")
	if _, err := NewService(repo).ProjectClinics(context.Background(), "", ClinicScreen.Defaults); err == nil {
		t.Error("expected repository error")
	}
}
