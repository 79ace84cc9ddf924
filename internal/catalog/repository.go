package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("book not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

func (r *Repository) Get(ctx context.Context, isbn string) (*Book, error) {
	var b Book
	err := r.db.QueryRowContext(ctx, `
		SELECT isbn,author,title,price_cents,subject
		FROM books WHERE isbn=?`, isbn).
		Scan(&b.ISBN, &b.Author, &b.Title, &b.PriceCents, &b.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Subjects returns the distinct subjects in alphabetical order.
func (r *Repository) Subjects(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT subject FROM books ORDER BY subject`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) BySubject(ctx context.Context, subject string) ([]*Book, error) {
	return r.list(ctx, `
		SELECT isbn,author,title,price_cents,subject
		FROM books WHERE subject=? ORDER BY title`, subject)
}

func (r *Repository) SearchAuthor(ctx context.Context, q string) ([]*Book, error) {
	qp := "%" + strings.ToLower(q) + "%"
	return r.list(ctx, `
		SELECT isbn,author,title,price_cents,subject
		FROM books WHERE lower(author) LIKE ? ORDER BY title`, qp)
}

func (r *Repository) SearchTitle(ctx context.Context, q string) ([]*Book, error) {
	qp := "%" + strings.ToLower(q) + "%"
	return r.list(ctx, `
		SELECT isbn,author,title,price_cents,subject
		FROM books WHERE lower(title) LIKE ? ORDER BY title`, qp)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ISBN, &b.Author, &b.Title, &b.PriceCents, &b.Subject); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
