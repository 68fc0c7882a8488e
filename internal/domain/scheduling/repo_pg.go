package scheduling

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type appointmentRepoPG struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

const appointmentSQLColumns = `id, patient_id, doctor_id, date_time, status, notes`

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO appointments (`+appointmentSQLColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.PatientID, a.DoctorID, a.DateTime, string(a.Status), a.Notes,
	)
	return db.MapError(err)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id string) (*Appointment, error) {
	return scanAppointment(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+appointmentSQLColumns+` FROM appointments WHERE id = $1`, id))
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	return db.Affected(db.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE appointments SET
			patient_id = $2, doctor_id = $3, date_time = $4, status = $5, notes = $6
		WHERE id = $1`,
		a.ID, a.PatientID, a.DoctorID, a.DateTime, string(a.Status), a.Notes,
	))
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id string) error {
	return db.Affected(db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id))
}

func (r *appointmentRepoPG) List(ctx context.Context) ([]*Appointment, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+appointmentSQLColumns+` FROM appointments ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var status string
	if err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.DateTime, &status, &a.Notes); err != nil {
		return nil, db.MapError(err)
	}
	a.Status = Status(status)
	return &a, nil
}
