package cart

import (
	"context"
	"database/sql"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

// Insert appends a new line. Lines are never merged, matching the bookstore
// cart semantics where every add is its own row.
func (r *Repository) Insert(ctx context.Context, memberID int64, isbn string, qty int32) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cart(member_id, isbn, qty) VALUES(?,?,?)`, memberID, isbn, qty)
	return err
}

func (r *Repository) ListByMember(ctx context.Context, memberID int64) ([]Line, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, member_id, isbn, qty FROM cart WHERE member_id=? ORDER BY id`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var ln Line
		if err := rows.Scan(&ln.ID, &ln.MemberID, &ln.ISBN, &ln.Qty); err != nil {
			return nil, err
		}
		out = append(out, ln)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteByMember(ctx context.Context, memberID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart WHERE member_id=?`, memberID)
	return err
}
