package comment

import (
	"context"
	"testing"

	"github.com/ripple-forum/ripple/internal/db"
	domcomment "github.com/ripple-forum/ripple/internal/domain/comment"
)

type mockStore struct {
	jsonSetFn     func(ctx context.Context, key, path string, data []byte) error
	searchListFn  func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func TestInsert_WritesRootDocument(t *testing.T) {
	var gotKey, gotPath string
	ms := &mockStore{
		jsonSetFn: func(_ context.Context, key, path string, _ []byte) error {
			gotKey, gotPath = key, path
			return nil
		},
	}
	repo := New(ms)

	err := repo.Insert(context.Background(), domcomment.Comment{ID: "c1", PostID: "p1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "ripple:comments:c1" || gotPath != "$" {
		t.Errorf("wrote %s %s, want ripple:comments:c1 $", gotKey, gotPath)
	}
}

func TestByPost_QueriesPostTagOldestFirst(t *testing.T) {
	var captured *db.ListQuery
	ms := &mockStore{
		searchListFn: func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
			captured = q
			return &db.SearchResult{
				Total: 2,
				Entries: []db.SearchEntry{
					{Key: "ripple:comments:c1", Fields: map[string]string{"$": `{"id":"c1","post_id":"p1","content":"first"}`}},
					{Key: "ripple:comments:c2", Fields: map[string]string{"$": `{"id":"c2","post_id":"p1","content":"second"}`}},
				},
			}, nil
		},
	}
	repo := New(ms)

	comments, err := repo.ByPost(context.Background(), "p1", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Query != "@post_id:{p1}" {
		t.Errorf("query = %q", captured.Query)
	}
	if captured.SortBy != "created_at" || captured.SortDesc {
		t.Errorf("sort = %s desc=%v, want created_at ascending", captured.SortBy, captured.SortDesc)
	}
	if len(comments) != 2 || comments[0].ID != "c1" || comments[1].ID != "c2" {
		t.Errorf("unexpected comments: %+v", comments)
	}
}

func TestByPost_EscapesID(t *testing.T) {
	var captured *db.ListQuery
	ms := &mockStore{
		searchListFn: func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
			captured = q
			return &db.SearchResult{}, nil
		},
	}
	repo := New(ms)

	if _, err := repo.ByPost(context.Background(), "a-b.c", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Query != `@post_id:{a\-b\.c}` {
		t.Errorf("query = %q", captured.Query)
	}
}

func TestEnsureIndex_SchemaCoversThreadFields(t *testing.T) {
	var captured *db.IndexDefinition
	ms := &mockStore{
		createIndexFn: func(_ context.Context, def *db.IndexDefinition) error {
			captured = def
			return nil
		},
	}
	repo := New(ms)

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Name != "ripple:comments:idx" {
		t.Errorf("index name = %q", captured.Name)
	}
	aliases := map[string]bool{}
	for _, f := range captured.Fields {
		aliases[f.Alias] = true
	}
	for _, want := range []string{"post_id", "created_at"} {
		if !aliases[want] {
			t.Errorf("schema missing field %q", want)
		}
	}
}

func TestEnsureIndex_ExistingIndexIsFine(t *testing.T) {
	ms := &mockStore{
		createIndexFn: func(_ context.Context, _ *db.IndexDefinition) error {
			return db.ErrIndexExists
		},
	}
	repo := New(ms)

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("expected existing index to be tolerated, got %v", err)
	}
}
