// Package session holds the logged-in state for one member. A session is
// created at login and discarded at logout; there is no process-wide
// current-user value.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/ahinestrog/bookshop/internal/member"
)

type Session struct {
	ID        uuid.UUID
	Member    *member.Member
	StartedAt time.Time
}

func New(m *member.Member) *Session {
	return &Session{
		ID:        uuid.New(),
		Member:    m,
		StartedAt: time.Now().UTC(),
	}
}
