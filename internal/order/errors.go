package order

import "fmt"

// UnknownBookError reports a cart line whose ISBN did not resolve.
type UnknownBookError struct {
	ISBN string
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("unknown book %q in cart", e.ISBN)
}

// CreationError reports a failed checkout step. OrderNo carries the generated
// order number when the header insert had already succeeded, so the caller
// can reconcile; it is zero otherwise.
type CreationError struct {
	OrderNo int64
	Step    string
	Err     error
}

func (e *CreationError) Error() string {
	if e.OrderNo != 0 {
		return fmt.Sprintf("order %d creation failed at %s: %v", e.OrderNo, e.Step, e.Err)
	}
	return fmt.Sprintf("order creation failed at %s: %v", e.Step, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }
