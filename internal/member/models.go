package member

import "time"

type Member struct {
	ID           int64
	FirstName    string
	LastName     string
	Address      string
	City         string
	Zip          string
	Phone        string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m *Member) FullName() string { return m.FirstName + " " + m.LastName }

// Registration carries the raw signup fields. State is folded into the city
// line on persistence.
type Registration struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	Zip       string
	Phone     string
	Email     string
	Password  string
}
