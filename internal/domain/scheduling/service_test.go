package scheduling

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/clinic/clinic/internal/platform/events"
	"github.com/clinic/clinic/internal/platform/store"
	"github.com/clinic/clinic/internal/platform/validation"
)

type mockDirectory struct {
	patients map[string]string
	doctors  map[string]string
	err      error
}

func (m *mockDirectory) PatientNames(_ context.Context) (map[string]string, error) {
	return m.patients, m.err
}

func (m *mockDirectory) DoctorNames(_ context.Context) (map[string]string, error) {
	return m.doctors, m.err
}

func (m *mockDirectory) CountPatients(_ context.Context) (int, error) {
	return len(m.patients), m.err
}

func (m *mockDirectory) CountDoctors(_ context.Context) (int, error) {
	return len(m.doctors), m.err
}

type mockClinics struct{ n int }

func (m mockClinics) CountClinics(_ context.Context) (int, error) { return m.n, nil }

var fixedNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func newTestDirectory() *mockDirectory {
	return &mockDirectory{
		patients: map[string]string{"p1": "Ana Silva", "p2": "Bruno Costa"},
		doctors:  map[string]string{"d1": "Dr. Carlos Ferreira", "d2": "Dra. Fernanda Lima"},
	}
}

func newTestService() (*Service, *store.Collection[Appointment]) {
	appts := NewAppointmentStore()
	svc := NewService(appts, newTestDirectory(), mockClinics{n: 2})
	svc.now = func() time.Time { return fixedNow }
	return svc, appts
}

func appt(id, patient, doctor string, offset time.Duration, status Status) Appointment {
	return Appointment{ID: id, PatientID: patient, DoctorID: doctor, DateTime: fixedNow.Add(offset), Status: status}
}

func TestService_CreateAppointment_DefaultsToScheduled(t *testing.T) {
	svc, _ := newTestService()
	a := &Appointment{PatientID: "p1", DoctorID: "d1", DateTime: fixedNow.Add(time.Hour), Status: StatusCompleted}

	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if a.ID == "" {
		t.Error("expected an id to be assigned")
	}
	got, err := svc.GetAppointment(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if got.Status != StatusScheduled {
		t.Errorf("expected status scheduled, got %s", got.Status)
	}
}

func TestService_CreateAppointment_Validation(t *testing.T) {
	svc, appts := newTestService()
	err := svc.CreateAppointment(context.Background(), &Appointment{PatientID: "p1"})
	if !validation.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if appts.Len() != 0 {
		t.Errorf("expected nothing stored, got %d", appts.Len())
	}

	var verr *validation.Error
	errors.As(err, &verr)
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	if !fields["doctor_id"] || !fields["date_time"] {
		t.Errorf("expected doctor_id and date_time errors, got %+v", verr.Fields)
	}
}

func TestService_CreateAppointment_DanglingReferencesAllowed(t *testing.T) {
	svc, _ := newTestService()
	a := &Appointment{PatientID: "gone", DoctorID: "d1", DateTime: fixedNow.Add(time.Hour)}
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_UpdateAppointment_AnyTransition(t *testing.T) {
	svc, appts := newTestService()
	appts.Seed(appt("a1", "p1", "d1", time.Hour, StatusCompleted))

	a := appt("a1", "p1", "d1", time.Hour, StatusScheduled)
	if err := svc.UpdateAppointment(context.Background(), &a); err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}
	got, _ := svc.GetAppointment(context.Background(), "a1")
	if got.Status != StatusScheduled {
		t.Errorf("expected scheduled, got %s", got.Status)
	}
}

func TestService_UpdateAppointment_InvalidStatus(t *testing.T) {
	svc, appts := newTestService()
	appts.Seed(appt("a1", "p1", "d1", time.Hour, StatusScheduled))

	a := appt("a1", "p1", "d1", time.Hour, "postponed")
	if err := svc.UpdateAppointment(context.Background(), &a); !validation.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got, _ := svc.GetAppointment(context.Background(), "a1")
	if got.Status != StatusScheduled {
		t.Errorf("record changed after rejected update: %s", got.Status)
	}
}

func TestService_UpdateAppointment_UnknownID(t *testing.T) {
	svc, _ := newTestService()
	a := appt("missing", "p1", "d1", time.Hour, StatusScheduled)
	if err := svc.UpdateAppointment(context.Background(), &a); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_DeleteAppointment(t *testing.T) {
	svc, appts := newTestService()
	appts.Seed(appt("a1", "p1", "d1", time.Hour, StatusScheduled))

	if err := svc.DeleteAppointment(context.Background(), "a1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.DeleteAppointment(context.Background(), "a1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestService_ProjectAppointments_NewestFirst(t *testing.T) {
	svc, appts := newTestService()
	appts.Seed(
		appt("a1", "p1", "d1", 24*time.Hour, StatusScheduled),
		appt("a2", "p2", "d2", 48*time.Hour, StatusScheduled),
		appt("a3", "p1", "d2", -5*24*time.Hour, StatusCompleted),
	)

	view, err := svc.ProjectAppointments(context.Background(), "", appointmentColumns())
	if err != nil {
		t.Fatalf("ProjectAppointments: %v", err)
	}
	want := []string{"a2", "a1", "a3"}
	if len(view.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(view.Rows))
	}
	for i, id := range want {
		if view.Rows[i].ID != id {
			t.Errorf("row %d: expected %s, got %s", i, id, view.Rows[i].ID)
		}
	}
}

func TestService_ProjectAppointments_SearchByResolvedName(t *testing.T) {
	svc, appts := newTestService()
	appts.Seed(
		appt("a1", "p1", "d1", time.Hour, StatusScheduled),
		appt("a2", "p2", "d2", 2*time.Hour, StatusScheduled),
	)

	view, _ := svc.ProjectAppointments(context.Background(), "fernanda", appointmentColumns())
	if view.Total != 1 || view.Rows[0].ID != "a2" {
		t.Errorf("expected only a2, got %+v", view.Rows)
	}

	view, _ = svc.ProjectAppointments(context.Background(), "d1", appointmentColumns())
	if !view.Empty || view.EmptyMessage == "" {
		t.Errorf("raw ids must not match, got %+v", view)
	}
}

func TestService_ProjectAppointments_FallbackName(t *testing.T) {
	svc, appts := newTestService()
	appts.Seed(appt("a1", "deleted", "d1", time.Hour, StatusScheduled))

	view, _ := svc.ProjectAppointments(context.Background(), "", appointmentColumns())
	if got := view.Rows[0].Cells["patient"]; got != FallbackName {
		t.Errorf("expected %q, got %v", FallbackName, got)
	}
	if got := view.Rows[0].Cells["doctor"]; got != "Dr. Carlos Ferreira" {
		t.Errorf("expected resolved doctor, got %v", got)
	}
}

func TestService_ProjectAppointments_HiddenColumn(t *testing.T) {
	svc, appts := newTestService()
	appts.Seed(appt("a1", "p1", "d1", time.Hour, StatusScheduled))

	cols, _ := appointmentColumns().SetVisible(ColumnStatus, false)
	view, _ := svc.ProjectAppointments(context.Background(), "", cols)
	if _, ok := view.Rows[0].Cells["status"]; ok {
		t.Error("hidden column must not produce a cell")
	}
	if view.Total != 1 {
		t.Errorf("hiding a column must not drop rows, got %d", view.Total)
	}
}

func TestService_Dashboard_Upcoming(t *testing.T) {
	svc, appts := newTestService()
	appts.Seed(
		appt("a3", "p1", "d2", -5*24*time.Hour, StatusCompleted),
		appt("a2", "p2", "d2", 48*time.Hour, StatusScheduled),
		appt("a1", "p1", "d1", 24*time.Hour, StatusScheduled),
	)

	d, err := svc.Dashboard(context.Background(), appointmentColumns())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(d.Upcoming.Rows) != 2 {
		t.Fatalf("expected 2 upcoming, got %d", len(d.Upcoming.Rows))
	}
	if d.Upcoming.Rows[0].ID != "a1" || d.Upcoming.Rows[1].ID != "a2" {
		t.Errorf("expected a1 then a2, got %s, %s", d.Upcoming.Rows[0].ID, d.Upcoming.Rows[1].ID)
	}
	want := Stats{Patients: 2, Doctors: 2, Clinics: 2, Upcoming: 2}
	if d.Stats != want {
		t.Errorf("expected stats %+v, got %+v", want, d.Stats)
	}
}

func TestService_Dashboard_ExcludesPastAndCancelled(t *testing.T) {
	svc, appts := newTestService()
	appts.Seed(
		appt("past", "p1", "d1", -time.Minute, StatusScheduled),
		appt("now", "p1", "d1", 0, StatusScheduled),
		appt("cancelled", "p1", "d1", time.Hour, StatusCancelled),
	)

	d, _ := svc.Dashboard(context.Background(), appointmentColumns())
	if !d.Upcoming.Empty {
		t.Errorf("expected no upcoming appointments, got %+v", d.Upcoming.Rows)
	}
	if d.Upcoming.EmptyMessage != "No upcoming appointments." {
		t.Errorf("unexpected empty message %q", d.Upcoming.EmptyMessage)
	}
	if d.Stats.Upcoming != 0 {
		t.Errorf("expected upcoming count 0, got %d", d.Stats.Upcoming)
	}
}

func TestService_Dashboard_CapsAtFive(t *testing.T) {
	svc, appts := newTestService()
	var seed []Appointment
	for i := 7; i >= 1; i-- {
		seed = append(seed, appt(string(rune('a'+i)), "p1", "d1", time.Duration(i)*time.Hour, StatusScheduled))
	}
	appts.Seed(seed...)

	d, _ := svc.Dashboard(context.Background(), appointmentColumns())
	if len(d.Upcoming.Rows) != UpcomingLimit {
		t.Fatalf("expected %d rows, got %d", UpcomingLimit, len(d.Upcoming.Rows))
	}
	if d.Upcoming.Rows[0].ID != "b" {
		t.Errorf("expected soonest first, got %s", d.Upcoming.Rows[0].ID)
	}
	if d.Stats.Upcoming != UpcomingLimit {
		t.Errorf("expected upcoming count %d, got %d", UpcomingLimit, d.Stats.Upcoming)
	}
}

func TestService_Dashboard_DirectoryError(t *testing.T) {
	appts := NewAppointmentStore()
	svc := NewService(appts, &mockDirectory{err: errors.New("db down")}, nil)
	if _, err := svc.Dashboard(context.Background(), appointmentColumns()); err == nil {
		t.Error("expected error")
	}
}

type publishFunc func(events.Event)

func (f publishFunc) Publish(_ context.Context, ev events.Event) { f(ev) }

func TestService_PublishesAppointmentChanges(t *testing.T) {
	svc, _ := newTestService()
	var types []string
	svc.SetPublisher(publishFunc(func(ev events.Event) {
		if ev.Topic != events.TopicAppointments {
			t.Errorf("unexpected topic %s", ev.Topic)
		}
		types = append(types, ev.Type)
	}))
	ctx := context.Background()

	a := &Appointment{PatientID: "p1", DoctorID: "d1", DateTime: fixedNow.Add(time.Hour)}
	if err := svc.CreateAppointment(ctx, a); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	a.Status = StatusCancelled
	if err := svc.UpdateAppointment(ctx, a); err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}
	if err := svc.UpdateAppointment(ctx, &Appointment{ID: "a-missing", PatientID: "p1", DoctorID: "d1", DateTime: fixedNow, Status: StatusScheduled}); err == nil {
		t.Fatal("expected not found")
	}
	if err := svc.DeleteAppointment(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}

	want := "appointments.created appointments.updated appointments.deleted"
	if got := strings.Join(types, " "); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
