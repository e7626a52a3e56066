// Package user implements the user repository: JSON documents keyed by
// email under ripple:users:.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ripple-forum/ripple/internal/db"
	"github.com/ripple-forum/ripple/internal/domain"
	domuser "github.com/ripple-forum/ripple/internal/domain/user"
)

// store is the consumer interface for users (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/user.Repository.
type Repo struct {
	store store
}

// New creates a user repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert stores a user record, creating or replacing it. Returns true when
// the record was created.
func (r *Repo) Upsert(ctx context.Context, u domuser.User) (bool, error) {
	key := userKey(u.Email)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	data, err := json.Marshal(u)
	if err != nil {
		return false, fmt.Errorf("marshal user: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w", key, err)
	}
	return !exists, nil
}

// Get returns a user by email.
func (r *Repo) Get(ctx context.Context, email string) (domuser.User, error) {
	raw, err := r.store.JSONGet(ctx, userKey(email), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domuser.User{}, domain.ErrUserNotFound
		}
		return domuser.User{}, fmt.Errorf("json.get %s: %w", userKey(email), err)
	}
	return parseUser(raw)
}

// List returns every user, ordered by email for a stable listing.
func (r *Repo) List(ctx context.Context) ([]domuser.User, error) {
	keys, err := r.store.Scan(ctx, keyPrefix()+"*")
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	docs, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}

	users := make([]domuser.User, 0, len(docs))
	for _, raw := range docs {
		if raw == nil {
			continue
		}
		u, err := parseUser(raw)
		if err != nil {
			continue
		}
		users = append(users, u)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

// SetRole updates a user's role in place.
func (r *Repo) SetRole(ctx context.Context, email string, role domuser.Role) error {
	key := userKey(email)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrUserNotFound
	}

	data, err := json.Marshal(string(role))
	if err != nil {
		return fmt.Errorf("marshal role: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$.role", data); err != nil {
		return fmt.Errorf("json.set role %s: %w", key, err)
	}
	return nil
}

func keyPrefix() string {
	return domain.KeyPrefix + "users:"
}

func userKey(email string) string {
	return keyPrefix() + strings.ToLower(email)
}

func parseUser(raw []byte) (domuser.User, error) {
	var docs []domuser.User
	if err := json.Unmarshal(raw, &docs); err != nil {
		var u domuser.User
		if err2 := json.Unmarshal(raw, &u); err2 == nil {
			return u, nil
		}
		return domuser.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	if len(docs) == 0 {
		return domuser.User{}, fmt.Errorf("empty user document")
	}
	return docs[0], nil
}
