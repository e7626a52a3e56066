// Package comment implements threaded replies on posts.
package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ripple-forum/ripple/internal/domain"
	domcomment "github.com/ripple-forum/ripple/internal/domain/comment"
	dompost "github.com/ripple-forum/ripple/internal/domain/post"
)

// threadWindow bounds a single thread listing.
const threadWindow = 1000

// Repository defines the storage contract for comments.
type Repository interface {
	Insert(ctx context.Context, c domcomment.Comment) error
	ByPost(ctx context.Context, postID string, limit int) ([]domcomment.Comment, error)
}

// PostFinder resolves the target post; the feed service satisfies this.
type PostFinder interface {
	FindByID(ctx context.Context, id string) (dompost.Post, error)
}

// Service handles comment operations.
type Service struct {
	repo  Repository
	posts PostFinder
	now   func() time.Time
	newID func() string
}

// New creates a comment service.
func New(repo Repository, posts PostFinder) *Service {
	return &Service{repo: repo, posts: posts, now: time.Now, newID: uuid.NewString}
}

// Add attaches a comment to a post. The post must exist.
func (s *Service) Add(ctx context.Context, postID, author, content string) (domcomment.Comment, error) {
	if content == "" {
		return domcomment.Comment{}, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return domcomment.Comment{}, domain.ErrPostNotFound
		}
		return domcomment.Comment{}, fmt.Errorf("check post: %w", err)
	}

	c := domcomment.Comment{
		ID:        s.newID(),
		PostID:    postID,
		Author:    author,
		Content:   content,
		CreatedAt: s.now().UnixMilli(),
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return domcomment.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}

// Thread returns a post's comments, oldest first.
func (s *Service) Thread(ctx context.Context, postID string) ([]domcomment.Comment, error) {
	comments, err := s.repo.ByPost(ctx, postID, threadWindow)
	if err != nil {
		return nil, fmt.Errorf("load thread: %w", err)
	}
	return comments, nil
}
