package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/config"
	"github.com/clinic/clinic/internal/domain/account"
	"github.com/clinic/clinic/internal/domain/admin"
	"github.com/clinic/clinic/internal/domain/identity"
	"github.com/clinic/clinic/internal/domain/scheduling"
	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/sandbox"
)

// backend holds the repositories for the configured store.
type backend struct {
	repos sandbox.Repos
	users account.UserRepository
	pool  *pgxpool.Pool // nil for the memory store
}

func (b *backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}

func memoryBackend() *backend {
	return &backend{
		repos: sandbox.Repos{
			Patients:     identity.NewPatientStore(),
			Doctors:      identity.NewDoctorStore(),
			Clinics:      admin.NewClinicStore(),
			Appointments: scheduling.NewAppointmentStore(),
		},
		users: account.NewUserStore(),
	}
}

func postgresBackend(pool *pgxpool.Pool) *backend {
	return &backend{
		repos: sandbox.Repos{
			Patients:     identity.NewPatientRepoPG(pool),
			Doctors:      identity.NewDoctorRepoPG(pool),
			Clinics:      admin.NewClinicRepoPG(pool),
			Appointments: scheduling.NewAppointmentRepoPG(pool),
		},
		users: account.NewUserRepoPG(pool),
		pool:  pool,
	}
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	if cfg.StoreBackend == config.BackendMemory {
		return memoryBackend(), nil
	}
	pool, err := openPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return postgresBackend(pool), nil
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
}
