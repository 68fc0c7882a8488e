package admin

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type clinicRepoPG struct {
	pool *pgxpool.Pool
}

func NewClinicRepoPG(pool *pgxpool.Pool) ClinicRepository {
	return &clinicRepoPG{pool: pool}
}

const clinicColumns = `id, name, cnpj, phone, email, address`

func (r *clinicRepoPG) Create(ctx context.Context, c *Clinic) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO clinics (`+clinicColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.CNPJ, c.Phone, c.Email, c.Address,
	)
	return db.MapError(err)
}

func (r *clinicRepoPG) GetByID(ctx context.Context, id string) (*Clinic, error) {
	return scanClinic(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+clinicColumns+` FROM clinics WHERE id = $1`, id))
}

func (r *clinicRepoPG) Update(ctx context.Context, c *Clinic) error {
	return db.Affected(db.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE clinics SET name = $2, cnpj = $3, phone = $4, email = $5, address = $6
		WHERE id = $1`,
		c.ID, c.Name, c.CNPJ, c.Phone, c.Email, c.Address,
	))
}

func (r *clinicRepoPG) Delete(ctx context.Context, id string) error {
	return db.Affected(db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM clinics WHERE id = $1`, id))
}

func (r *clinicRepoPG) List(ctx context.Context) ([]*Clinic, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+clinicColumns+` FROM clinics ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Clinic
	for rows.Next() {
		c, err := scanClinic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanClinic(row pgx.Row) (*Clinic, error) {
	var c Clinic
	if err := row.Scan(&c.ID, &c.Name, &c.CNPJ, &c.Phone, &c.Email, &c.Address); err != nil {
		return nil, db.MapError(err)
	}
	return &c, nil
}
