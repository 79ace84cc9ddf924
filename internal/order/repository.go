package order

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrNotFound = errors.New("order not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

func (r *Repository) GetOrder(ctx context.Context, ono int64) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT ono, member_id, created, ship_address, ship_city, ship_zip
		FROM orders WHERE ono=?`, ono)
	var o Order
	var created string
	if err := row.Scan(&o.No, &o.MemberID, &created, &o.ShipAddress, &o.ShipCity, &o.ShipZip); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t, err := time.Parse(dateLayout, created)
	if err != nil {
		return nil, err
	}
	o.Created = t

	details, err := r.ListDetails(ctx, ono)
	if err != nil {
		return nil, err
	}
	o.Details = details
	for _, d := range details {
		o.TotalCents += d.AmountCents
	}
	return &o, nil
}

func (r *Repository) ListDetails(ctx context.Context, ono int64) ([]Detail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ono, isbn, qty, amount_cents
		FROM odetails WHERE ono=? ORDER BY id`, ono)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(&d.OrderNo, &d.ISBN, &d.Qty, &d.AmountCents); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func insertHeader(ctx context.Context, tx *sql.Tx, o *Order) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders(member_id, created, ship_address, ship_city, ship_zip)
		VALUES(?,?,?,?,?)`,
		o.MemberID, o.Created.Format(dateLayout), o.ShipAddress, o.ShipCity, o.ShipZip)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const insertDetailSQL = `
		INSERT INTO odetails(ono, isbn, qty, amount_cents)
		VALUES(?,?,?,?)`

func clearCart(ctx context.Context, tx *sql.Tx, memberID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM cart WHERE member_id=?`, memberID)
	return err
}
