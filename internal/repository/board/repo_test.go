package board

import (
	"context"
	"errors"
	"testing"

	"github.com/ripple-forum/ripple/internal/domain"
	domboard "github.com/ripple-forum/ripple/internal/domain/board"
)

type mockStore struct {
	jsonSetFn      func(ctx context.Context, key, path string, data []byte) error
	jsonGetMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	existsFn       func(ctx context.Context, key string) (bool, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	delFn          func(ctx context.Context, key string) error
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
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

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func TestCreateTag_DuplicateSlug(t *testing.T) {
	ms := &mockStore{
		existsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
	}
	repo := New(ms)

	err := repo.CreateTag(context.Background(), domboard.Tag{Slug: "golang", Name: "Golang"})
	if !errors.Is(err, domain.ErrTagExists) {
		t.Errorf("expected ErrTagExists, got %v", err)
	}
}

func TestCreateTag_WritesSlugKey(t *testing.T) {
	var gotKey string
	ms := &mockStore{
		jsonSetFn: func(_ context.Context, key, _ string, _ []byte) error {
			gotKey = key
			return nil
		},
	}
	repo := New(ms)

	if err := repo.CreateTag(context.Background(), domboard.Tag{Slug: "golang"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "ripple:tags:golang" {
		t.Errorf("key = %q", gotKey)
	}
}

func TestListTags_SortedBySlug(t *testing.T) {
	ms := &mockStore{
		scanFn: func(_ context.Context, pattern string) ([]string, error) {
			if pattern != "ripple:tags:*" {
				t.Errorf("pattern = %q", pattern)
			}
			return []string{"ripple:tags:zig", "ripple:tags:go"}, nil
		},
		jsonGetMultiFn: func(_ context.Context, _ []string) ([][]byte, error) {
			return [][]byte{
				[]byte(`[{"slug":"zig","name":"Zig"}]`),
				[]byte(`[{"slug":"go","name":"Go"}]`),
			}, nil
		},
	}
	repo := New(ms)

	tags, err := repo.ListTags(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 || tags[0].Slug != "go" || tags[1].Slug != "zig" {
		t.Errorf("unexpected tags: %+v", tags)
	}
}

func TestListAnnouncements_NewestFirst(t *testing.T) {
	ms := &mockStore{
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{"ripple:announcements:a1", "ripple:announcements:a2"}, nil
		},
		jsonGetMultiFn: func(_ context.Context, _ []string) ([][]byte, error) {
			return [][]byte{
				[]byte(`[{"id":"a1","title":"older","created_at":100}]`),
				[]byte(`[{"id":"a2","title":"newer","created_at":200}]`),
			}, nil
		},
	}
	repo := New(ms)

	anns, err := repo.ListAnnouncements(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(anns) != 2 || anns[0].ID != "a2" || anns[1].ID != "a1" {
		t.Errorf("unexpected order: %+v", anns)
	}
}

func TestListReports_SkipsVanishedKeys(t *testing.T) {
	ms := &mockStore{
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{"ripple:reports:r1", "ripple:reports:r2"}, nil
		},
		jsonGetMultiFn: func(_ context.Context, _ []string) ([][]byte, error) {
			return [][]byte{
				nil,
				[]byte(`[{"id":"r2","post_id":"p1","reason":"spam","created_at":50}]`),
			}, nil
		},
	}
	repo := New(ms)

	reports, err := repo.ListReports(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != "r2" {
		t.Errorf("unexpected reports: %+v", reports)
	}
}

func TestDeleteTag_MissingKeyIsFine(t *testing.T) {
	ms := &mockStore{
		delFn: func(_ context.Context, _ string) error { return nil },
	}
	repo := New(ms)

	if err := repo.DeleteTag(context.Background(), "gone"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
