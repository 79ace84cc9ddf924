package order

// Events published after checkout.
const (
	RKOrderCreated = "order.created"
)

type OrderCreatedPayload struct {
	OrderNo    int64     `json:"order_no"`
	MemberID   int64     `json:"member_id"`
	Lines      []LineEvt `json:"lines"`
	TotalCents int64     `json:"total_cents"`
}

type LineEvt struct {
	ISBN        string `json:"isbn"`
	Qty         int32  `json:"qty"`
	AmountCents int64  `json:"amount_cents"`
}
