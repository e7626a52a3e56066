// Package feed implements the post feed: creation, retrieval, ranked
// queries, and vote counting.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ripple-forum/ripple/internal/domain"
	dompost "github.com/ripple-forum/ripple/internal/domain/post"
)

// defaultMaxResults is the window for unlimited queries; the store needs
// an explicit upper bound even when the caller asks for everything.
const defaultMaxResults = 10000

// Service handles feed operations on top of a post Repository.
type Service struct {
	repo       Repository
	maxResults int
	now        func() time.Time
	newID      func() string
}

// New creates a feed service.
func New(repo Repository) *Service {
	return &Service{
		repo:       repo,
		maxResults: defaultMaxResults,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WithMaxResults overrides the window used for unlimited queries.
func (s *Service) WithMaxResults(n int) *Service {
	if n > 0 {
		s.maxResults = n
	}
	return s
}

// Create stores a new post. The id, timestamps, and zeroed vote counters
// are assigned here; caller-supplied values for them are ignored.
func (s *Service) Create(ctx context.Context, owner, tag, content string) (dompost.Post, error) {
	if owner == "" {
		return dompost.Post{}, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}

	p := dompost.Post{
		ID:        s.newID(),
		Owner:     owner,
		Tag:       tag,
		Content:   content,
		CreatedAt: s.now().UnixMilli(),
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return dompost.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

// Query returns posts whose tag contains the search term, ordered by the
// parsed sort mode. When limited, the result is capped after sorting.
func (s *Service) Query(ctx context.Context, search, sortBy string, limited bool) ([]dompost.Post, error) {
	limit := s.maxResults
	if limited {
		limit = dompost.FeedLimit
	}

	posts, err := s.repo.Ranked(ctx, search, dompost.ParseSortMode(sortBy), limit)
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}
	return posts, nil
}

// All returns every post, newest first.
func (s *Service) All(ctx context.Context) ([]dompost.Post, error) {
	posts, err := s.repo.Ranked(ctx, "", dompost.SortRecency, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// FindByID returns a single post.
func (s *Service) FindByID(ctx context.Context, id string) (dompost.Post, error) {
	return s.repo.Get(ctx, id)
}

// FindByOwner returns the owner's posts, newest first. When limited, the
// result is capped after sorting.
func (s *Service) FindByOwner(ctx context.Context, email string, limited bool) ([]dompost.Post, error) {
	limit := s.maxResults
	if limited {
		limit = dompost.OwnerLimit
	}

	posts, err := s.repo.ByOwner(ctx, email, limit)
	if err != nil {
		return nil, fmt.Errorf("posts by owner: %w", err)
	}
	return posts, nil
}

// IncrementVote adds one vote in the given direction. It returns the
// number of posts matched: zero means the id resolved to nothing, which
// is reported, not raised.
func (s *Service) IncrementVote(ctx context.Context, id string, dir dompost.VoteDirection) (int, error) {
	if !dir.Valid() {
		return 0, fmt.Errorf("%w: unknown vote direction %q", domain.ErrInvalidInput, dir)
	}

	matched, err := s.repo.IncrementVote(ctx, id, dir)
	if err != nil {
		return 0, fmt.Errorf("increment vote: %w", err)
	}
	return matched, nil
}

// Count returns the number of stored posts.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
