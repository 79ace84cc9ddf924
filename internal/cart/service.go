package cart

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Manager owns a member's pending-purchase lines.
type Manager struct {
	repo *Repository
	log  zerolog.Logger
}

func NewManager(repo *Repository, log zerolog.Logger) *Manager {
	return &Manager{repo: repo, log: log}
}

// AddLine validates the quantity range before any write. The input layer has
// already parsed the integer; the range check is repeated here regardless.
func (m *Manager) AddLine(ctx context.Context, memberID int64, isbn string, qty int32) error {
	if qty < MinQty || qty > MaxQty {
		return ErrInvalidQuantity
	}
	if err := m.repo.Insert(ctx, memberID, isbn, qty); err != nil {
		return fmt.Errorf("add cart line: %w", err)
	}
	m.log.Debug().Int64("member", memberID).Str("isbn", isbn).Int32("qty", qty).Msg("cart line added")
	return nil
}

// ListLines returns the member's lines in insertion order. An empty cart is
// reported as ErrEmptyCart, distinct from a wrapped persistence error.
func (m *Manager) ListLines(ctx context.Context, memberID int64) ([]Line, error) {
	lines, err := m.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	return lines, nil
}

// Clear removes all of the member's lines. Clearing an already-empty cart
// succeeds.
func (m *Manager) Clear(ctx context.Context, memberID int64) error {
	if err := m.repo.DeleteByMember(ctx, memberID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
