package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ahinestrog/bookshop/internal/cart"
	"github.com/ahinestrog/bookshop/internal/catalog"
	"github.com/ahinestrog/bookshop/internal/member"
)

// Publisher posts a domain event. A nil Publisher disables events.
type Publisher interface {
	PublishJSON(routingKey string, v any) error
}

// Engine converts a member's cart into a persisted order.
type Engine struct {
	db      *sql.DB
	catalog catalog.Resolver
	events  Publisher
	log     zerolog.Logger
	now     func() time.Time
}

func NewEngine(db *sql.DB, resolver catalog.Resolver, events Publisher, log zerolog.Logger) *Engine {
	return &Engine{db: db, catalog: resolver, events: events, log: log, now: time.Now}
}

// PlaceOrder writes the order header, one detail line per cart line (amount =
// qty × resolved price) and the cart deletion inside a single transaction.
// Any failure rolls the whole checkout back, so the cart survives intact and
// no partial order remains. The returned CreationError still carries the
// order number generated before the failure.
//
// The cart itself has no cross-session locking: two concurrent checkouts for
// the same member can interleave. Single-session use is assumed.
func (e *Engine) PlaceOrder(ctx context.Context, m *member.Member, lines []cart.Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, cart.ErrEmptyCart
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &CreationError{Step: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	o := &Order{
		MemberID:    m.ID,
		Created:     e.now().UTC(),
		ShipAddress: m.Address,
		ShipCity:    m.City,
		ShipZip:     m.Zip,
	}
	ono, err := insertHeader(ctx, tx, o)
	if err != nil {
		return nil, &CreationError{Step: "order header", Err: err}
	}
	o.No = ono

	stmt, err := tx.PrepareContext(ctx, insertDetailSQL)
	if err != nil {
		return nil, &CreationError{OrderNo: ono, Step: "prepare detail", Err: err}
	}
	defer stmt.Close()

	for _, ln := range lines {
		b, err := e.catalog.Resolve(ctx, ln.ISBN)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, &UnknownBookError{ISBN: ln.ISBN}
			}
			return nil, &CreationError{OrderNo: ono, Step: "resolve " + ln.ISBN, Err: err}
		}
		d := Detail{
			OrderNo:     ono,
			ISBN:        ln.ISBN,
			Qty:         ln.Qty,
			AmountCents: int64(ln.Qty) * b.PriceCents,
		}
		if _, err := stmt.ExecContext(ctx, d.OrderNo, d.ISBN, d.Qty, d.AmountCents); err != nil {
			return nil, &CreationError{OrderNo: ono, Step: "order detail", Err: err}
		}
		o.Details = append(o.Details, d)
		o.TotalCents += d.AmountCents
	}

	if err := clearCart(ctx, tx, m.ID); err != nil {
		return nil, &CreationError{OrderNo: ono, Step: "clear cart", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return nil, &CreationError{OrderNo: ono, Step: "commit", Err: err}
	}

	e.log.Info().Int64("order", o.No).Int64("member", m.ID).Int64("total_cents", o.TotalCents).
		Msg("order placed")
	e.publishCreated(o)
	return o, nil
}

// publishCreated is best effort: the order is already committed, so a broker
// failure only warns.
func (e *Engine) publishCreated(o *Order) {
	if e.events == nil {
		return
	}
	p := OrderCreatedPayload{
		OrderNo:    o.No,
		MemberID:   o.MemberID,
		TotalCents: o.TotalCents,
	}
	for _, d := range o.Details {
		p.Lines = append(p.Lines, LineEvt{ISBN: d.ISBN, Qty: d.Qty, AmountCents: d.AmountCents})
	}
	if err := e.events.PublishJSON(RKOrderCreated, p); err != nil {
		e.log.Warn().Err(err).Int64("order", o.No).Msg("publish order.created failed")
	}
}
