package menu

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"github.com/ahinestrog/bookshop/internal/cart"
	"github.com/ahinestrog/bookshop/internal/catalog"
	"github.com/ahinestrog/bookshop/internal/member"
	"github.com/ahinestrog/bookshop/internal/order"
	"github.com/ahinestrog/bookshop/internal/session"
)

type mapResolver map[string]*catalog.Book

func (r mapResolver) Resolve(_ context.Context, isbn string) (*catalog.Book, error) {
	if b, ok := r[isbn]; ok {
		return b, nil
	}
	return nil, catalog.ErrNotFound
}

func newMenu(t *testing.T, input string) (*Menu, sqlmock.Sqlmock, *bytes.Buffer, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	resolver := mapResolver{
		"111": {ISBN: "111", Title: "Book One", PriceCents: 1000},
	}
	out := &bytes.Buffer{}
	m := New(strings.NewReader(input), out,
		member.NewService(member.NewRepository(db), zerolog.Nop()),
		catalog.NewRepository(db),
		resolver,
		cart.NewManager(cart.NewRepository(db), zerolog.Nop()),
		order.NewEngine(db, resolver, nil, zerolog.Nop()),
		zerolog.Nop())
	return m, mock, out, func() { db.Close() }
}

func TestRun_QuitFromMainMenu(t *testing.T) {
	m, mock, out, done := newMenu(t, "3\n")
	defer done()

	m.Run(context.Background())
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Fatalf("missing goodbye:\n%s", out.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckout_EmptyCartReturnsToMemberMenu(t *testing.T) {
	m, mock, out, done := newMenu(t, "")
	defer done()
	m.sess = session.New(&member.Member{ID: 5, FirstName: "Ada", LastName: "Lovelace"})

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, member_id, isbn, qty FROM cart WHERE member_id=?`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "isbn", "qty"}))

	next := m.checkout(context.Background())
	if next != StateMemberMenu {
		t.Fatalf("expected member menu, got %v", next)
	}
	if !strings.Contains(out.String(), "No items in cart") {
		t.Fatalf("missing empty-cart message:\n%s", out.String())
	}
	if m.sess == nil {
		t.Fatal("session must survive an aborted checkout")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckout_DeclineKeepsCart(t *testing.T) {
	m, mock, out, done := newMenu(t, "n\n")
	defer done()
	m.sess = session.New(&member.Member{ID: 5, FirstName: "Ada", LastName: "Lovelace"})

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, member_id, isbn, qty FROM cart WHERE member_id=?`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "isbn", "qty"}).
			AddRow(int64(1), int64(5), "111", int32(2)))

	next := m.checkout(context.Background())
	if next != StateMemberMenu {
		t.Fatalf("expected member menu, got %v", next)
	}
	if !strings.Contains(out.String(), "Returning to Member Menu") {
		t.Fatalf("missing decline message:\n%s", out.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckout_SuccessLogsOut(t *testing.T) {
	m, mock, out, done := newMenu(t, "y\n")
	defer done()
	m.sess = session.New(&member.Member{
		ID: 5, FirstName: "Ada", LastName: "Lovelace",
		Address: "12 Analytical Way", City: "London", Zip: "E1 6AN",
		Email: "ada@example.com",
	})

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, member_id, isbn, qty FROM cart WHERE member_id=?`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "isbn", "qty"}).
			AddRow(int64(1), int64(5), "111", int32(2)))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(int64(5), sqlmock.AnyArg(), "12 Analytical Way", "London", "E1 6AN").
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO odetails`))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO odetails`)).
		WithArgs(int64(77), "111", int32(2), int64(2000)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart WHERE member_id=?`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	next := m.checkout(context.Background())
	if next != StateMainMenu {
		t.Fatalf("expected main menu after successful checkout, got %v", next)
	}
	for _, want := range []string{"Invoice for Order no.77", "Thanks For Shopping!", "$20.00"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
	if m.sess != nil {
		t.Fatal("expected logout after checkout")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateMainMenu:   "main-menu",
		StateMemberMenu: "member-menu",
		StateSearchMenu: "search-menu",
		StateCheckout:   "checkout",
		StateLoggedOut:  "logged-out",
		State(99):       "unknown",
	}
	for st, want := range cases {
		if st.String() != want {
			t.Fatalf("State(%d).String() = %q, want %q", st, st.String(), want)
		}
	}
}
