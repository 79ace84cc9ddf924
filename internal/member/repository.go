package member

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

func (r *Repository) Create(ctx context.Context, m *Member) (int64, error) {
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO members(fname,lname,address,city,zip,phone,email,password_hash,created_at,updated_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?)`,
		m.FirstName, m.LastName, m.Address, m.City, m.Zip, m.Phone, m.Email, m.PasswordHash,
		m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id,fname,lname,address,city,zip,phone,email,password_hash,created_at,updated_at
		 FROM members WHERE email=?`, email)
	return scanMember(row)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id,fname,lname,address,city,zip,phone,email,password_hash,created_at,updated_at
		 FROM members WHERE id=?`, id)
	return scanMember(row)
}

func scanMember(row *sql.Row) (*Member, error) {
	m := &Member{}
	err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Address, &m.City, &m.Zip, &m.Phone,
		&m.Email, &m.PasswordHash, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}
