package order

import "time"

const dateLayout = "2006-01-02"

// Order is the persisted checkout header plus its detail lines. The shipping
// fields are a snapshot of the member's address at creation time; the record
// is never mutated after checkout.
type Order struct {
	No          int64
	MemberID    int64
	Created     time.Time
	ShipAddress string
	ShipCity    string
	ShipZip     string
	Details     []Detail
	TotalCents  int64
}

// Detail is one priced line item belonging to an order header.
// AmountCents = qty × book price at time of order.
type Detail struct {
	OrderNo     int64
	ISBN        string
	Qty         int32
	AmountCents int64
}
