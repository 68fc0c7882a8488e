package account

import (
	"context"
	"strings"
	"sync"

	"github.com/clinic/clinic/internal/platform/store"
)

// UserRepository stores users. Emails are unique ignoring case; a clash on
// Create or Update returns store.ErrDuplicateID.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	// Modify runs fn on the current record and stores the result as one
	// step. Concurrent Modify calls for a user do not overwrite each other.
	// When fn returns an error nothing is written.
	Modify(ctx context.Context, id string, fn func(*User) error) (*User, error)
}

// userStore is the in-memory UserRepository.
type userStore struct {
	mu    sync.Mutex // serialises every write with the reads it depends on
	users *store.Collection[User]
}

func NewUserStore() UserRepository {
	return &userStore{users: store.NewCollection(func(u *User) string { return u.ID })}
}

func (s *userStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(ctx, u.Email, "") {
		return store.ErrDuplicateID
	}
	return s.users.Create(ctx, u.clone())
}

func (s *userStore) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.clone(), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.users.Find(ctx, func(u *User) bool { return strings.EqualFold(u.Email, email) })
	if err != nil {
		return nil, err
	}
	return u.clone(), nil
}

func (s *userStore) Update(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(ctx, u.Email, u.ID) {
		return store.ErrDuplicateID
	}
	return s.users.Update(ctx, u.clone())
}

func (s *userStore) Modify(ctx context.Context, id string, fn func(*User) error) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u = u.clone()
	if err := fn(u); err != nil {
		return nil, err
	}
	if s.emailTaken(ctx, u.Email, u.ID) {
		return nil, store.ErrDuplicateID
	}
	if err := s.users.Update(ctx, u.clone()); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userStore) emailTaken(ctx context.Context, email, exceptID string) bool {
	_, err := s.users.Find(ctx, func(u *User) bool {
		return u.ID != exceptID && strings.EqualFold(u.Email, email)
	})
	return err == nil
}
