package user

import (
	"context"
	"errors"
	"testing"

	"github.com/ripple-forum/ripple/internal/db"
	"github.com/ripple-forum/ripple/internal/domain"
	domuser "github.com/ripple-forum/ripple/internal/domain/user"
)

type mockStore struct {
	jsonSetFn      func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn      func(ctx context.Context, key string, paths ...string) ([]byte, error)
	jsonGetMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	existsFn       func(ctx context.Context, key string) (bool, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.jsonGetMultiFn != nil {
		return m.jsonGetMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func TestUpsert_CreatesWhenAbsent(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	created, err := repo.Upsert(context.Background(), domuser.User{Email: "a@b.com", Role: domuser.RoleMember})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for new user")
	}
}

func TestUpsert_UpdatesWhenPresent(t *testing.T) {
	ms := &mockStore{
		existsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
	}
	repo := New(ms)

	created, err := repo.Upsert(context.Background(), domuser.User{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false for existing user")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(&mockStore{})

	_, err := repo.Get(context.Background(), "missing@b.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGet_KeyIsLowercased(t *testing.T) {
	var gotKey string
	ms := &mockStore{
		jsonGetFn: func(_ context.Context, key string, _ ...string) ([]byte, error) {
			gotKey = key
			return []byte(`[{"email":"a@b.com","role":"member"}]`), nil
		},
	}
	repo := New(ms)

	if _, err := repo.Get(context.Background(), "A@B.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "ripple:users:a@b.com" {
		t.Errorf("key = %q, want lowercased", gotKey)
	}
}

func TestList_SortedByEmail(t *testing.T) {
	ms := &mockStore{
		scanFn: func(_ context.Context, pattern string) ([]string, error) {
			if pattern != "ripple:users:*" {
				t.Errorf("pattern = %q", pattern)
			}
			return []string{"ripple:users:b@b.com", "ripple:users:a@b.com"}, nil
		},
		jsonGetMultiFn: func(_ context.Context, _ []string) ([][]byte, error) {
			return [][]byte{
				[]byte(`[{"email":"b@b.com"}]`),
				[]byte(`[{"email":"a@b.com"}]`),
			}, nil
		},
	}
	repo := New(ms)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0].Email != "a@b.com" || users[1].Email != "b@b.com" {
		t.Errorf("unexpected users: %+v", users)
	}
}

func TestSetRole_MissingUser(t *testing.T) {
	repo := New(&mockStore{})

	err := repo.SetRole(context.Background(), "missing@b.com", domuser.RoleAdmin)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetRole_WritesRolePath(t *testing.T) {
	var gotPath, gotData string
	ms := &mockStore{
		existsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
		jsonSetFn: func(_ context.Context, _, path string, data []byte) error {
			gotPath, gotData = path, string(data)
			return nil
		},
	}
	repo := New(ms)

	if err := repo.SetRole(context.Background(), "a@b.com", domuser.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "$.role" || gotData != `"admin"` {
		t.Errorf("wrote %s=%s, want $.role=\"admin\"", gotPath, gotData)
	}
}
