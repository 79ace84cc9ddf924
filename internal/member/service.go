package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

type Service struct {
	repo *Repository
	log  zerolog.Logger
}

func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Register(ctx context.Context, reg Registration) (int64, error) {
	if reg.Email == "" || reg.Password == "" || reg.FirstName == "" || reg.LastName == "" {
		return 0, errors.New("name, email and password are required")
	}
	if u, _ := s.repo.GetByEmail(ctx, reg.Email); u != nil {
		return 0, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	city := reg.City
	if reg.State != "" {
		city = reg.City + ", " + reg.State
	}
	m := &Member{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Address:      reg.Address,
		City:         city,
		Zip:          reg.Zip,
		Phone:        reg.Phone,
		Email:        reg.Email,
		PasswordHash: string(hash),
	}
	id, err := s.repo.Create(ctx, m)
	if err != nil {
		return 0, fmt.Errorf("create member: %w", err)
	}
	s.log.Info().Int64("member", id).Str("email", m.Email).Msg("member registered")
	return id, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*Member, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
