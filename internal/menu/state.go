package menu

// State is one node of the navigation machine that replaces the original
// menu recursion: login/browse/checkout run as a single loop over explicit
// transitions.
type State int

const (
	StateMainMenu State = iota
	StateMemberMenu
	StateSearchMenu
	StateCheckout
	StateLoggedOut
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main-menu"
	case StateMemberMenu:
		return "member-menu"
	case StateSearchMenu:
		return "search-menu"
	case StateCheckout:
		return "checkout"
	case StateLoggedOut:
		return "logged-out"
	default:
		return "unknown"
	}
}
