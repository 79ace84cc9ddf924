// Package invoice renders receipts and shipping summaries. It has no
// persistence side effects: output is plain text for any presentation layer.
package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ahinestrog/bookshop/internal/cart"
	"github.com/ahinestrog/bookshop/internal/catalog"
	"github.com/ahinestrog/bookshop/internal/member"
	"github.com/ahinestrog/bookshop/internal/order"
)

const (
	titleWidth = 40
	ruleWidth  = 85
)

// Line is the (isbn, quantity) shape shared by cart lines and order details,
// so one receipt renderer serves both.
type Line struct {
	ISBN string
	Qty  int32
}

func FromCart(lines []cart.Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, ln := range lines {
		out = append(out, Line{ISBN: ln.ISBN, Qty: ln.Qty})
	}
	return out
}

func FromOrder(o *order.Order) []Line {
	out := make([]Line, 0, len(o.Details))
	for _, d := range o.Details {
		out = append(out, Line{ISBN: d.ISBN, Qty: d.Qty})
	}
	return out
}

// RenderReceipt produces the tabular receipt: one row per line with the title
// cut (not wrapped) at 40 characters, a per-line total and the grand total.
func RenderReceipt(ctx context.Context, lines []Line, resolver catalog.Resolver) (string, error) {
	var b strings.Builder
	rule := strings.Repeat("_", ruleWidth)

	fmt.Fprintf(&b, "%-13s %-*s %8s %6s %10s\n", "ISBN", titleWidth, "TITLE", "$", "Qty", "Total")
	b.WriteString(rule + "\n")

	var totalCents int64
	for _, ln := range lines {
		book, err := resolver.Resolve(ctx, ln.ISBN)
		if err != nil {
			return "", err
		}
		lineCents := int64(ln.Qty) * book.PriceCents
		totalCents += lineCents

		title := book.Title
		if len(title) > titleWidth {
			title = title[:titleWidth]
		}
		fmt.Fprintf(&b, "%-13s %-*s %8.2f %6d %10.2f\n",
			ln.ISBN, titleWidth, title, dollars(book.PriceCents), ln.Qty, dollars(lineCents))
	}

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total%s$%.2f\n", strings.Repeat(" ", 65), dollars(totalCents))
	b.WriteString(rule + "\n")
	return b.String(), nil
}

// RenderShippingSummary produces the shipment block for a completed order.
func RenderShippingSummary(m *member.Member, o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  Invoice for Order no.%d\n\n", o.No)
	b.WriteString("  ---Shipping Address---\n")
	fmt.Fprintf(&b, "Name:     %s %s\n", m.FirstName, m.LastName)
	fmt.Fprintf(&b, "Address:  %s\n          %s\n          %s\n\n", o.ShipAddress, o.ShipCity, o.ShipZip)
	fmt.Fprintf(&b, "Expected delivery:  %s\n", DeliveryDate(o.Created).Format("2006-01-02"))
	return b.String()
}

// DeliveryDate is a fixed seven-day offset from order creation. No
// business-day logic.
func DeliveryDate(created time.Time) time.Time {
	return created.AddDate(0, 0, 7)
}

func dollars(cents int64) float64 { return float64(cents) / 100 }
