package identity

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

// -- Patient Repository --

type patientRepoPG struct {
	pool *pgxpool.Pool
}

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

const patientColumns = `id, full_name, cpf, birth_date, phone, email, address`

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO patients (`+patientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.FullName, p.CPF, p.BirthDate, p.Phone, p.Email, p.Address,
	)
	return db.MapError(err)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id string) (*Patient, error) {
	row := db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE id = $1`, id)
	return scanPatient(row)
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	return db.Affected(db.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE patients SET
			full_name = $2, cpf = $3, birth_date = $4,
			phone = $5, email = $6, address = $7
		WHERE id = $1`,
		p.ID, p.FullName, p.CPF, p.BirthDate, p.Phone, p.Email, p.Address,
	))
}

func (r *patientRepoPG) Delete(ctx context.Context, id string) error {
	return db.Affected(db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id))
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+patientColumns+` FROM patients ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FullName, &p.CPF, &p.BirthDate, &p.Phone, &p.Email, &p.Address)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &p, nil
}

// -- Doctor Repository --

type doctorRepoPG struct {
	pool *pgxpool.Pool
}

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

const doctorColumns = `id, full_name, crm, specialty, phone, email, availability`

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO doctors (`+doctorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.FullName, d.CRM, d.Specialty, d.Phone, d.Email, d.Availability,
	)
	return db.MapError(err)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id string) (*Doctor, error) {
	row := db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
	return scanDoctor(row)
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	return db.Affected(db.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE doctors SET
			full_name = $2, crm = $3, specialty = $4,
			phone = $5, email = $6, availability = $7
		WHERE id = $1`,
		d.ID, d.FullName, d.CRM, d.Specialty, d.Phone, d.Email, d.Availability,
	))
}

func (r *doctorRepoPG) Delete(ctx context.Context, id string) error {
	return db.Affected(db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id))
}

func (r *doctorRepoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+doctorColumns+` FROM doctors ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FullName, &d.CRM, &d.Specialty, &d.Phone, &d.Email, &d.Availability)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &d, nil
}
