package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/ahinestrog/bookshop/internal/cart"
	"github.com/ahinestrog/bookshop/internal/catalog"
	"github.com/ahinestrog/bookshop/internal/invoice"
	"github.com/ahinestrog/bookshop/internal/member"
	"github.com/ahinestrog/bookshop/internal/order"
	"github.com/ahinestrog/bookshop/internal/session"
)

const booksPerPage = 3

// Menu drives the console session over the state machine in state.go.
type Menu struct {
	in       *bufio.Reader
	out      io.Writer
	members  *member.Service
	catalog  *catalog.Repository
	resolver catalog.Resolver
	cart     *cart.Manager
	engine   *order.Engine
	sess     *session.Session
	eof      bool
	log      zerolog.Logger
}

func New(in io.Reader, out io.Writer, members *member.Service, cat *catalog.Repository,
	resolver catalog.Resolver, carts *cart.Manager, engine *order.Engine, log zerolog.Logger) *Menu {
	return &Menu{
		in:       bufio.NewReader(in),
		out:      out,
		members:  members,
		catalog:  cat,
		resolver: resolver,
		cart:     carts,
		engine:   engine,
		log:      log,
	}
}

// Run loops the state machine until logout from the main menu.
func (m *Menu) Run(ctx context.Context) {
	handlers := map[State]func(context.Context) State{
		StateMainMenu:   m.mainMenu,
		StateMemberMenu: m.memberMenu,
		StateSearchMenu: m.searchMenu,
		StateCheckout:   m.checkout,
	}
	for st := StateMainMenu; st != StateLoggedOut; {
		next := handlers[st](ctx)
		m.log.Debug().Stringer("from", st).Stringer("to", next).Msg("menu transition")
		st = next
	}
	fmt.Fprintln(m.out, "Goodbye!")
}

func (m *Menu) mainMenu(ctx context.Context) State {
	m.header("")
	fmt.Fprintln(m.out, "  1. Member Login")
	fmt.Fprintln(m.out, "  2. New Member Registration")
	fmt.Fprintln(m.out, "  3. Quit")
	switch m.promptChoice(3) {
	case 1:
		email := m.prompt("Enter email: ")
		password := m.prompt("Enter password: ")
		u, err := m.members.Authenticate(ctx, email, password)
		if err != nil {
			fmt.Fprintf(m.out, "\nLog in attempt for user %s failed.\n\n", email)
			return StateMainMenu
		}
		m.sess = session.New(u)
		m.log.Info().Stringer("session", m.sess.ID).Int64("member", u.ID).Msg("session started")
		fmt.Fprintf(m.out, "\nUser %s logged in successfully\n\n", email)
		return StateMemberMenu
	case 2:
		m.register(ctx)
		return StateMainMenu
	default:
		return StateLoggedOut
	}
}

func (m *Menu) register(ctx context.Context) {
	reg := member.Registration{
		FirstName: m.prompt("First name: "),
		LastName:  m.prompt("Last name: "),
		Address:   m.prompt("Enter street address: "),
		City:      m.prompt("Enter city: "),
		State:     m.prompt("State: "),
		Zip:       m.prompt("Enter zip: "),
		Phone:     m.prompt("Enter phone: "),
		Email:     m.prompt("Enter email: "),
		Password:  m.prompt("Enter password: "),
	}
	if _, err := m.members.Register(ctx, reg); err != nil {
		fmt.Fprintln(m.out, "Member creation failed.")
		fmt.Fprintln(m.out, "")
		return
	}
	fmt.Fprintln(m.out, "\nMember Creation Successful!")
	fmt.Fprintln(m.out, "")
}

func (m *Menu) memberMenu(ctx context.Context) State {
	m.header("Member Menu")
	fmt.Fprintln(m.out, "  1. Browse by Subject")
	fmt.Fprintln(m.out, "  2. Search by Author/Title")
	fmt.Fprintln(m.out, "  3. Check Out")
	fmt.Fprintln(m.out, "  4. Logout")
	switch m.promptChoice(4) {
	case 1:
		m.browseBySubject(ctx)
		return StateMemberMenu
	case 2:
		return StateSearchMenu
	case 3:
		return StateCheckout
	default:
		m.logout()
		return StateMainMenu
	}
}

func (m *Menu) searchMenu(ctx context.Context) State {
	m.header("Search Menu")
	fmt.Fprintln(m.out, "  1. Author Search")
	fmt.Fprintln(m.out, "  2. Title Search")
	fmt.Fprintln(m.out, "  3. Go Back to Member Menu")
	switch m.promptChoice(3) {
	case 1:
		q := m.prompt("Enter authors name or part of authors name: ")
		books, err := m.catalog.SearchAuthor(ctx, q)
		m.showSearchResult(ctx, books, err, q)
		return StateSearchMenu
	case 2:
		q := m.prompt("Enter title or part of the title: ")
		books, err := m.catalog.SearchTitle(ctx, q)
		m.showSearchResult(ctx, books, err, q)
		return StateSearchMenu
	default:
		return StateMemberMenu
	}
}

func (m *Menu) showSearchResult(ctx context.Context, books []*catalog.Book, err error, q string) {
	if err != nil {
		fmt.Fprintln(m.out, "Search failed. Please try again.")
		m.log.Error().Err(err).Str("query", q).Msg("catalog search failed")
		return
	}
	fmt.Fprintf(m.out, "\n%s books found (%s).\n\n", humanize.Comma(int64(len(books))), q)
	m.browseBooks(ctx, books)
}

func (m *Menu) browseBySubject(ctx context.Context) {
	subjects, err := m.catalog.Subjects(ctx)
	if err != nil {
		fmt.Fprintln(m.out, "Could not load subjects.")
		m.log.Error().Err(err).Msg("list subjects failed")
		return
	}
	if len(subjects) == 0 {
		fmt.Fprintln(m.out, "No books to display.")
		return
	}
	for i, s := range subjects {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, s)
	}
	fmt.Fprintf(m.out, "\nChoose a subject: (Enter a number between 1-%d):\n", len(subjects))
	n := m.promptChoice(len(subjects))
	subject := subjects[n-1]

	books, err := m.catalog.BySubject(ctx, subject)
	if err != nil {
		fmt.Fprintln(m.out, "Could not load books.")
		m.log.Error().Err(err).Str("subject", subject).Msg("list books failed")
		return
	}
	fmt.Fprintf(m.out, "\n%s books available on this subject (%s)\n\n",
		humanize.Comma(int64(len(books))), subject)
	m.browseBooks(ctx, books)
}

// browseBooks pages through books a few at a time; an ISBN adds to the cart,
// "n" advances, an empty line returns to the previous menu.
func (m *Menu) browseBooks(ctx context.Context, books []*catalog.Book) {
	if len(books) == 0 {
		fmt.Fprintln(m.out, "No books to display.")
		return
	}
	start := 0
	for {
		for i := start; i < start+booksPerPage; i++ {
			b := books[i%len(books)]
			fmt.Fprintf(m.out, "Author: %s\nTitle: %s\nISBN: %s\nPrice: %.2f\nSubject: %s\n\n",
				b.Author, b.Title, b.ISBN, float64(b.PriceCents)/100, b.Subject)
		}
		fmt.Fprintln(m.out, "Enter ISBN to add to Cart, n to browse or ENTER to go back to menu:")
		input := m.prompt("-> ")
		switch {
		case input == "":
			return
		case input == "n":
			start += booksPerPage
		case isbnMatch(input, books):
			m.addToCart(ctx, input)
		}
	}
}

func (m *Menu) addToCart(ctx context.Context, isbn string) {
	raw := m.prompt("\nEnter quantity (1-10): ")
	qty, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input. Please enter a valid integer.")
		return
	}
	if err := m.cart.AddLine(ctx, m.sess.Member.ID, isbn, int32(qty)); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			fmt.Fprintln(m.out, "Please enter a quantity between 1 and 10.")
			return
		}
		fmt.Fprintln(m.out, "Could not add to cart. Please try again.")
		m.log.Error().Err(err).Str("isbn", isbn).Msg("add to cart failed")
		return
	}
	fmt.Fprintf(m.out, "\nAdded %d books to cart\n\n", qty)
}

// checkout previews the receipt, asks for confirmation and places the order.
// On any failure the cart is left intact and the member returns to the
// member menu.
func (m *Menu) checkout(ctx context.Context) State {
	lines, err := m.cart.ListLines(ctx, m.sess.Member.ID)
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			fmt.Fprintln(m.out, "\nNo items in cart. Returning to Member Menu...")
		} else {
			fmt.Fprintln(m.out, "\nCould not read your cart. Returning to Member Menu...")
			m.log.Error().Err(err).Msg("list cart failed")
		}
		return StateMemberMenu
	}

	receipt, err := invoice.RenderReceipt(ctx, invoice.FromCart(lines), m.resolver)
	if err != nil {
		fmt.Fprintln(m.out, "\nCould not price your cart. Returning to Member Menu...")
		m.log.Error().Err(err).Msg("render receipt failed")
		return StateMemberMenu
	}
	fmt.Fprintln(m.out, receipt)

	switch strings.ToLower(m.prompt("\nProceed to check out (Y/N ?): \n")) {
	case "y", "yes":
	case "n":
		fmt.Fprintln(m.out, "\nReturning to Member Menu")
		return StateMemberMenu
	default:
		fmt.Fprintln(m.out, "\nInvalid input. Returning to Member Menu")
		return StateMemberMenu
	}

	o, err := m.engine.PlaceOrder(ctx, m.sess.Member, lines)
	if err != nil {
		m.reportOrderFailure(err)
		return StateMemberMenu
	}

	fmt.Fprintln(m.out, invoice.RenderShippingSummary(m.sess.Member, o))
	final, err := invoice.RenderReceipt(ctx, invoice.FromOrder(o), m.resolver)
	if err == nil {
		fmt.Fprintln(m.out, final)
	}
	fmt.Fprintln(m.out, "\nThanks For Shopping!")
	m.logout()
	return StateMainMenu
}

func (m *Menu) reportOrderFailure(err error) {
	var unknown *order.UnknownBookError
	if errors.As(err, &unknown) {
		fmt.Fprintf(m.out, "\nBook %s is no longer in the catalog. Your cart was kept.\n", unknown.ISBN)
	} else {
		fmt.Fprintln(m.out, "\nCheck out failed. Your cart was kept; please try again.")
	}
	m.log.Error().Err(err).Msg("checkout failed")
}

func (m *Menu) logout() {
	if m.sess == nil {
		return
	}
	fmt.Fprintf(m.out, "Logging out user %s...\n\n", m.sess.Member.Email)
	m.log.Info().Stringer("session", m.sess.ID).Msg("session ended")
	m.sess = nil
}

func (m *Menu) header(subMenu string) {
	const width = 60
	line := strings.Repeat("*", width)
	fmt.Fprintln(m.out, line)
	fmt.Fprintln(m.out, "***"+strings.Repeat(" ", width-6)+"***")
	fmt.Fprintln(m.out, "***"+center("Welcome to the Online Book Store", width-6)+"***")
	fmt.Fprintln(m.out, "***"+center(subMenu, width-6)+"***")
	fmt.Fprintln(m.out, line)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-left-len(s))
}

func isbnMatch(isbn string, books []*catalog.Book) bool {
	for _, b := range books {
		if b.ISBN == isbn {
			return true
		}
	}
	return false
}

func (m *Menu) prompt(label string) string {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		m.eof = true
	}
	return strings.TrimSpace(line)
}

// promptChoice re-asks until the answer is a number in [1, n]. Closed input
// picks the last option, which is always the quit/back choice.
func (m *Menu) promptChoice(n int) int {
	for {
		raw := m.prompt("\nPlease enter your choice: ")
		fmt.Fprintln(m.out, "")
		if m.eof {
			return n
		}
		c, err := strconv.Atoi(raw)
		if err == nil && c >= 1 && c <= n {
			return c
		}
		fmt.Fprintf(m.out, "\nInvalid choice. Please enter a number between 1 and %d\n", n)
	}
}
