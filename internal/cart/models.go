package cart

import "errors"

// Quantity bounds for a single cart line.
const (
	MinQty int32 = 1
	MaxQty int32 = 10
)

var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 10")
	ErrEmptyCart       = errors.New("cart is empty")
)

// Line is a pending (isbn, quantity) selection. Duplicate ISBN lines for the
// same member may coexist; each one becomes its own order detail line.
type Line struct {
	ID       int64
	MemberID int64
	ISBN     string
	Qty      int32
}
