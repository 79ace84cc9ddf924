package order

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE ono=?`)).
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"ono", "member_id", "created", "ship_address", "ship_city", "ship_zip"}).
			AddRow(int64(77), int64(5), "2024-01-01", "12 Analytical Way", "London", "E1 6AN"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM odetails WHERE ono=? ORDER BY id`)).
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"ono", "isbn", "qty", "amount_cents"}).
			AddRow(int64(77), "111", int32(2), int64(2000)).
			AddRow(int64(77), "222", int32(1), int64(2500)))

	o, err := repo.GetOrder(context.Background(), 77)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if o.No != 77 || o.MemberID != 5 || len(o.Details) != 2 {
		t.Fatalf("unexpected order: %+v", o)
	}
	// total is recomputed from the detail amounts
	if o.TotalCents != 4500 {
		t.Fatalf("expected total 4500, got %d", o.TotalCents)
	}
	if got := o.Created.Format(dateLayout); got != "2024-01-01" {
		t.Fatalf("unexpected creation date %s", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE ono=?`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"ono", "member_id", "created", "ship_address", "ship_city", "ship_zip"}))

	if _, err := repo.GetOrder(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
