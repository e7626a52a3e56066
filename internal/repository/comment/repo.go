// Package comment implements the comment repository: JSON documents under
// ripple:comments:, indexed by post for threaded retrieval.
package comment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ripple-forum/ripple/internal/db"
	"github.com/ripple-forum/ripple/internal/domain"
	domcomment "github.com/ripple-forum/ripple/internal/domain/comment"
)

// store is the consumer interface for comments (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Repo implements usecase/comment.Repository.
type Repo struct {
	store store
}

// New creates a comment repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the comments FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := &db.IndexDefinition{
		Name:        indexName(),
		StorageType: db.StorageJSON,
		Prefixes:    []string{keyPrefix()},
		Fields: []db.IndexField{
			{Name: "$.post_id", Alias: "post_id", Type: db.IndexFieldTag},
			{Name: "$.created_at", Alias: "created_at", Type: db.IndexFieldNumeric, Sortable: true},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create comments index: %w", err)
	}
	return nil
}

// Insert stores a new comment.
func (r *Repo) Insert(ctx context.Context, c domcomment.Comment) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal comment: %w", err)
	}
	if err := r.store.JSONSet(ctx, commentKey(c.ID), "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", commentKey(c.ID), err)
	}
	return nil
}

// ByPost returns the comments on a post, oldest first.
func (r *Repo) ByPost(ctx context.Context, postID string, limit int) ([]domcomment.Comment, error) {
	q := &db.ListQuery{
		IndexName:    indexName(),
		Query:        fmt.Sprintf("@post_id:{%s}", escapeTag(postID)),
		SortBy:       "created_at",
		Limit:        limit,
		ReturnFields: []string{"$"},
	}

	res, err := r.store.SearchList(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search comments by post: %w", err)
	}

	comments := make([]domcomment.Comment, 0, len(res.Entries))
	for _, entry := range res.Entries {
		c, err := parseEntry(entry)
		if err != nil {
			continue
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func keyPrefix() string {
	return domain.KeyPrefix + "comments:"
}

func commentKey(id string) string {
	return keyPrefix() + id
}

func indexName() string {
	return domain.KeyPrefix + "comments:idx"
}

func parseEntry(entry db.SearchEntry) (domcomment.Comment, error) {
	raw, ok := entry.Fields["$"]
	if !ok {
		return domcomment.Comment{}, fmt.Errorf("entry %s has no root document", entry.Key)
	}
	var c domcomment.Comment
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return domcomment.Comment{}, fmt.Errorf("unmarshal comment %s: %w", entry.Key, err)
	}
	if c.ID == "" {
		c.ID = strings.TrimPrefix(entry.Key, keyPrefix())
	}
	return c, nil
}

func escapeTag(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
