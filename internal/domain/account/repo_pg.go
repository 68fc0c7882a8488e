package account

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type userRepoPG struct {
	pool *pgxpool.Pool
}

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository {
	return &userRepoPG{pool: pool}
}

const userColumns = `id, full_name, email, password_hash, theme, notifications, hidden_columns, created_at`

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.Theme, u.Notifications, hiddenOrEmpty(u), u.CreatedAt,
	)
	return db.MapError(err)
}

func (r *userRepoPG) GetByID(ctx context.Context, id string) (*User, error) {
	row := db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *userRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	return scanUser(row)
}

func (r *userRepoPG) Update(ctx context.Context, u *User) error {
	return db.Affected(db.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE users SET
			full_name = $2, email = $3, password_hash = $4,
			theme = $5, notifications = $6, hidden_columns = $7
		WHERE id = $1`,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.Theme, u.Notifications, hiddenOrEmpty(u),
	))
}

// Modify locks the row with SELECT ... FOR UPDATE for the length of the
// transaction.
func (r *userRepoPG) Modify(ctx context.Context, id string, fn func(*User) error) (*User, error) {
	var out *User
	err := db.InTx(ctx, r.pool, func(ctx context.Context) error {
		row := db.Conn(ctx, r.pool).QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
		u, err := scanUser(row)
		if err != nil {
			return err
		}
		if err := fn(u); err != nil {
			return err
		}
		if err := r.Update(ctx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func hiddenOrEmpty(u *User) map[string]map[string]bool {
	if u.HiddenColumns == nil {
		return map[string]map[string]bool{}
	}
	return u.HiddenColumns
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash,
		&u.Theme, &u.Notifications, &u.HiddenColumns, &u.CreatedAt)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &u, nil
}
