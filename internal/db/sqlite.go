package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the bookstore database.
// Busy timeout + WAL for concurrent readers.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := path + "?_pragma=busy_timeout=5000&_pragma=journal_mode=WAL&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS members(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  fname TEXT NOT NULL,
  lname TEXT NOT NULL,
  address TEXT NOT NULL,
  city TEXT NOT NULL,
  zip TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS books(
  isbn TEXT PRIMARY KEY,
  author TEXT NOT NULL,
  title TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  subject TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS cart(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  member_id INTEGER NOT NULL,
  isbn TEXT NOT NULL,
  qty INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS orders(
  ono INTEGER PRIMARY KEY AUTOINCREMENT,
  member_id INTEGER NOT NULL,
  created TEXT NOT NULL,
  ship_address TEXT NOT NULL,
  ship_city TEXT NOT NULL,
  ship_zip TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS odetails(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ono INTEGER NOT NULL,
  isbn TEXT NOT NULL,
  qty INTEGER NOT NULL,
  amount_cents INTEGER NOT NULL,
  FOREIGN KEY(ono) REFERENCES orders(ono) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_cart_member ON cart(member_id);
CREATE INDEX IF NOT EXISTS idx_orders_member ON orders(member_id);
CREATE INDEX IF NOT EXISTS idx_odetails_ono ON odetails(ono);
CREATE INDEX IF NOT EXISTS idx_books_subject ON books(subject);
`

func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SeedBooks inserts a starter catalog when the books table is empty so the
// console app is browsable on first run.
func SeedBooks(ctx context.Context, db *sql.DB) error {
	var c int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books`).Scan(&c); err != nil {
		return err
	}
	if c > 0 {
		return nil
	}
	seed := []struct {
		isbn, author, title, subject string
		priceCents                   int64
	}{
		{"0131103628", "Kernighan, Ritchie", "The C Programming Language", "PROGRAMMING", 5499},
		{"0201633612", "Gamma, Helm, Johnson, Vlissides", "Design Patterns: Elements of Reusable Object-Oriented Software", "PROGRAMMING", 4795},
		{"0134190440", "Donovan, Kernighan", "The Go Programming Language", "PROGRAMMING", 3999},
		{"0743273567", "F. Scott Fitzgerald", "The Great Gatsby", "FICTION", 1050},
		{"0061120081", "Harper Lee", "To Kill a Mockingbird", "FICTION", 1299},
		{"0553380168", "Brian Greene", "The Elegant Universe", "SCIENCE", 1800},
		{"0393317552", "Richard Feynman", "Six Easy Pieces", "SCIENCE", 1395},
		{"0679783261", "Jane Austen", "Pride and Prejudice", "CLASSICS", 895},
	}
	stmt, err := db.PrepareContext(ctx,
		`INSERT INTO books(isbn, author, title, price_cents, subject) VALUES(?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, b := range seed {
		if _, err := stmt.ExecContext(ctx, b.isbn, b.author, b.title, b.priceCents, b.subject); err != nil {
			return err
		}
	}
	return nil
}
