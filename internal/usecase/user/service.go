// Package user implements account management: registration, lookup, and
// role changes.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ripple-forum/ripple/internal/domain"
	domuser "github.com/ripple-forum/ripple/internal/domain/user"
)

// Repository defines the storage contract for users.
type Repository interface {
	Upsert(ctx context.Context, u domuser.User) (created bool, err error)
	Get(ctx context.Context, email string) (domuser.User, error)
	List(ctx context.Context) ([]domuser.User, error)
	SetRole(ctx context.Context, email string, role domuser.Role) error
}

// Service handles user operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a user service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Register creates or refreshes an account. Email is the identity and is
// normalized to lower case. Returns whether the account was created.
func (s *Service) Register(ctx context.Context, email, name string) (domuser.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domuser.User{}, false, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}

	u := domuser.User{
		Email:     email,
		Name:      name,
		Role:      domuser.RoleMember,
		CreatedAt: s.now().UnixMilli(),
	}

	if existing, err := s.repo.Get(ctx, email); err == nil {
		// Re-registration keeps the original role and creation time.
		u.Role = existing.Role
		u.CreatedAt = existing.CreatedAt
	}

	created, err := s.repo.Upsert(ctx, u)
	if err != nil {
		return domuser.User{}, false, fmt.Errorf("upsert user: %w", err)
	}
	return u, created, nil
}

// Find returns a user by email.
func (s *Service) Find(ctx context.Context, email string) (domuser.User, error) {
	return s.repo.Get(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// List returns every registered user.
func (s *Service) List(ctx context.Context) ([]domuser.User, error) {
	return s.repo.List(ctx)
}

// Promote changes a user's role.
func (s *Service) Promote(ctx context.Context, email string, role domuser.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	return s.repo.SetRole(ctx, strings.ToLower(strings.TrimSpace(email)), role)
}
