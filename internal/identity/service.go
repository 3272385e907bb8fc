package identity

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/PRATHVI9607/PaymentAI/internal/domain"
)

var (
	// ErrInvalidCredentials covers unknown phone numbers and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates an unknown or expired session token.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrDuplicatePhone rejects seed data violating phone uniqueness.
	ErrDuplicatePhone = errors.New("duplicate phone number")
)

// Service is the in-process user directory and session table. Users are
// immutable after seeding; sessions live for the process lifetime.
type Service struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	byPhone  map[string]string
	sessions map[string]string

	tokenFn func() string
}

// NewService builds a directory over the seeded users. Phone numbers must be
// unique since phone is both the login credential and the transfer key.
func NewService(users []domain.User) (*Service, error) {
	s := &Service{
		users:    make(map[string]domain.User, len(users)),
		byPhone:  make(map[string]string, len(users)),
		sessions: make(map[string]string),
		tokenFn:  uuid.NewString,
	}
	for _, u := range users {
		if _, exists := s.byPhone[u.Phone]; exists {
			return nil, ErrDuplicatePhone
		}
		s.users[u.ID] = u
		s.byPhone[u.Phone] = u.ID
	}
	return s, nil
}

// Login verifies phone+password and issues a session token.
func (s *Service) Login(phone, password string) (string, domain.User, error) {
	s.mu.RLock()
	userID, ok := s.byPhone[phone]
	user := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return "", domain.User{}, ErrInvalidCredentials
	}

	match, err := VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", domain.User{}, ErrInvalidCredentials
	}

	token := s.tokenFn()
	s.mu.Lock()
	s.sessions[token] = user.ID
	s.mu.Unlock()
	return token, user, nil
}

// Authenticate resolves a bearer token to the acting user.
func (s *Service) Authenticate(token string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.sessions[token]
	if !ok {
		return domain.User{}, ErrInvalidToken
	}
	return s.users[userID], nil
}

// ByID looks a user up by id.
func (s *Service) ByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// ByPhone looks a user up by their unique phone number.
func (s *Service) ByPhone(phone string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byPhone[phone]
	if !ok {
		return domain.User{}, false
	}
	return s.users[id], true
}
