// Package post implements the post repository over the document store:
// JSON documents under ripple:posts:, ranked through an FT.AGGREGATE
// pipeline that derives the vote difference per candidate.
package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ripple-forum/ripple/internal/db"
	"github.com/ripple-forum/ripple/internal/domain"
	dompost "github.com/ripple-forum/ripple/internal/domain/post"
)

// voteDifferenceField is the derived attribute computed by the APPLY step.
const voteDifferenceField = "vote_difference"

// store is the consumer interface for posts (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONNumIncrBy(ctx context.Context, key, path string, delta int64) (int64, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	Aggregate(ctx context.Context, q *db.AggregateQuery) (*db.AggregateResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Repo implements usecase/feed.Repository.
type Repo struct {
	store store
}

// New creates a post repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the posts FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := &db.IndexDefinition{
		Name:        indexName(),
		StorageType: db.StorageJSON,
		Prefixes:    []string{keyPrefix()},
		Fields: []db.IndexField{
			{Name: "$.owner", Alias: "owner", Type: db.IndexFieldTag},
			{Name: "$.tag", Alias: "tag", Type: db.IndexFieldTag},
			{Name: "$.upvotes", Alias: "upvotes", Type: db.IndexFieldNumeric, Sortable: true},
			{Name: "$.downvotes", Alias: "downvotes", Type: db.IndexFieldNumeric, Sortable: true},
			{Name: "$.created_at", Alias: "created_at", Type: db.IndexFieldNumeric, Sortable: true},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create posts index: %w", err)
	}
	return nil
}

// Insert stores a new post.
func (r *Repo) Insert(ctx context.Context, p dompost.Post) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}
	if err := r.store.JSONSet(ctx, postKey(p.ID), "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", postKey(p.ID), err)
	}
	return nil
}

// Get returns a post by ID.
func (r *Repo) Get(ctx context.Context, id string) (dompost.Post, error) {
	raw, err := r.store.JSONGet(ctx, postKey(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dompost.Post{}, domain.ErrPostNotFound
		}
		return dompost.Post{}, fmt.Errorf("json.get %s: %w", postKey(id), err)
	}
	return parseRootDoc(raw)
}

// Ranked returns posts matching the tag filter, ordered by the selected
// sort key descending and capped at limit. The vote difference is derived
// for every candidate by the aggregation pipeline, never read from storage.
func (r *Repo) Ranked(ctx context.Context, search string, mode dompost.SortMode, limit int) ([]dompost.Post, error) {
	sortBy := "created_at"
	if mode == dompost.SortPopularity {
		sortBy = voteDifferenceField
	}

	q := &db.AggregateQuery{
		IndexName: indexName(),
		Query:     buildTagQuery(search),
		Load: []db.LoadField{
			{Identifier: "@__key"},
			{Identifier: "@owner"},
			{Identifier: "@tag"},
			{Identifier: "@upvotes"},
			{Identifier: "@downvotes"},
			{Identifier: "@created_at"},
			{Identifier: "$.content", As: "content"},
		},
		Apply:    []db.ApplyStep{{Expression: "@upvotes - @downvotes", As: voteDifferenceField}},
		SortBy:   sortBy,
		SortDesc: true,
		Limit:    limit,
	}

	res, err := r.store.Aggregate(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("aggregate posts: %w", err)
	}

	posts := make([]dompost.Post, 0, len(res.Rows))
	for _, row := range res.Rows {
		posts = append(posts, rowToPost(row))
	}
	return posts, nil
}

// ByOwner returns posts owned by the given email, newest first, capped at limit.
func (r *Repo) ByOwner(ctx context.Context, email string, limit int) ([]dompost.Post, error) {
	q := &db.ListQuery{
		IndexName:    indexName(),
		Query:        fmt.Sprintf("@owner:{%s}", escapeTag(email)),
		SortBy:       "created_at",
		SortDesc:     true,
		Limit:        limit,
		ReturnFields: []string{"$"},
	}

	res, err := r.store.SearchList(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search posts by owner: %w", err)
	}

	posts := make([]dompost.Post, 0, len(res.Entries))
	for _, entry := range res.Entries {
		p, err := parseEntryDoc(entry)
		if err != nil {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// Count returns the number of stored posts.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, indexName(), "*")
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// IncrementVote atomically adds 1 to the chosen counter. Returns the number
// of matched posts: 0 when the id resolves to nothing, which is not an
// error at this layer.
func (r *Repo) IncrementVote(ctx context.Context, id string, dir dompost.VoteDirection) (int, error) {
	path := "$.upvotes"
	if dir == dompost.VoteDown {
		path = "$.downvotes"
	}

	if _, err := r.store.JSONNumIncrBy(ctx, postKey(id), path, 1); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("increment vote %s: %w", postKey(id), err)
	}
	return 1, nil
}

func keyPrefix() string {
	return domain.KeyPrefix + "posts:"
}

func postKey(id string) string {
	return keyPrefix() + id
}

func indexName() string {
	return domain.KeyPrefix + "posts:idx"
}
