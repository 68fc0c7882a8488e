// Package sandbox loads a small demonstration data set so a fresh console has
// something to show.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/domain/admin"
	"github.com/clinic/clinic/internal/domain/identity"
	"github.com/clinic/clinic/internal/domain/scheduling"
	"github.com/clinic/clinic/internal/platform/store"
)

type Repos struct {
	Patients     identity.PatientRepository
	Doctors      identity.DoctorRepository
	Clinics      admin.ClinicRepository
	Appointments scheduling.AppointmentRepository
}

// Result counts what Seed wrote and what was already there.
type Result struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// Seed inserts the sample records. Records whose id already exists are left
// alone, so running it twice is harmless.
func Seed(ctx context.Context, r Repos, now time.Time, logger zerolog.Logger) (Result, error) {
	var res Result
	steps := []struct {
		kind string
		run  func() (int, int, error)
	}{
		{"patients", func() (int, int, error) { return insertAll(ctx, samplePatients(), r.Patients.Create) }},
		{"doctors", func() (int, int, error) { return insertAll(ctx, sampleDoctors(), r.Doctors.Create) }},
		{"clinics", func() (int, int, error) { return insertAll(ctx, sampleClinics(), r.Clinics.Create) }},
		{"appointments", func() (int, int, error) {
			return insertAll(ctx, sampleAppointments(now), r.Appointments.Create)
		}},
	}
	for _, s := range steps {
		created, skipped, err := s.run()
		if err != nil {
			return res, fmt.Errorf("seed %s: %w", s.kind, err)
		}
		res.Created += created
		res.Skipped += skipped
		logger.Info().Str("kind", s.kind).Int("created", created).Int("skipped", skipped).Msg("sample data seeded")
	}
	return res, nil
}

func insertAll[T any](ctx context.Context, records []T, create func(context.Context, *T) error) (created, skipped int, err error) {
	for i := range records {
		err := create(ctx, &records[i])
		switch {
		case err == nil:
			created++
		case errors.Is(err, store.ErrDuplicateID):
			skipped++
		default:
			return created, skipped, err
		}
	}
	return created, skipped, nil
}
