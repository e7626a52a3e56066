// Package board implements tags, announcements, and moderation reports.
package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/ripple-forum/ripple/internal/domain"
	domboard "github.com/ripple-forum/ripple/internal/domain/board"
	dompost "github.com/ripple-forum/ripple/internal/domain/post"
)

// Repository defines the storage contract for board records.
type Repository interface {
	CreateTag(ctx context.Context, t domboard.Tag) error
	ListTags(ctx context.Context) ([]domboard.Tag, error)
	DeleteTag(ctx context.Context, slug string) error

	CreateAnnouncement(ctx context.Context, a domboard.Announcement) error
	ListAnnouncements(ctx context.Context) ([]domboard.Announcement, error)

	CreateReport(ctx context.Context, r domboard.Report) error
	ListReports(ctx context.Context) ([]domboard.Report, error)
	DeleteReport(ctx context.Context, id string) error
}

// PostFinder resolves the post a report targets.
type PostFinder interface {
	FindByID(ctx context.Context, id string) (dompost.Post, error)
}

// Service handles board operations.
type Service struct {
	repo  Repository
	posts PostFinder
	now   func() time.Time
	newID func() string
}

// New creates a board service.
func New(repo Repository, posts PostFinder) *Service {
	return &Service{repo: repo, posts: posts, now: time.Now, newID: uuid.NewString}
}

// CreateTag registers a new tag. The slug is derived from the name and is
// the tag's identity; a duplicate slug is rejected.
func (s *Service) CreateTag(ctx context.Context, name string) (domboard.Tag, error) {
	if name == "" {
		return domboard.Tag{}, fmt.Errorf("%w: tag name is required", domain.ErrInvalidInput)
	}

	t := domboard.Tag{
		Slug:      slug.Make(name),
		Name:      name,
		CreatedAt: s.now().UnixMilli(),
	}
	if err := s.repo.CreateTag(ctx, t); err != nil {
		if errors.Is(err, domain.ErrTagExists) {
			return domboard.Tag{}, domain.ErrTagExists
		}
		return domboard.Tag{}, fmt.Errorf("create tag: %w", err)
	}
	return t, nil
}

// ListTags returns every tag.
func (s *Service) ListTags(ctx context.Context) ([]domboard.Tag, error) {
	return s.repo.ListTags(ctx)
}

// DeleteTag removes a tag by slug. Removing an unknown slug is a no-op.
func (s *Service) DeleteTag(ctx context.Context, tagSlug string) error {
	return s.repo.DeleteTag(ctx, tagSlug)
}

// Announce publishes a site-wide notice.
func (s *Service) Announce(ctx context.Context, title, body, author string) (domboard.Announcement, error) {
	if title == "" {
		return domboard.Announcement{}, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	a := domboard.Announcement{
		ID:        s.newID(),
		Title:     title,
		Body:      body,
		Author:    author,
		CreatedAt: s.now().UnixMilli(),
	}
	if err := s.repo.CreateAnnouncement(ctx, a); err != nil {
		return domboard.Announcement{}, fmt.Errorf("create announcement: %w", err)
	}
	return a, nil
}

// Announcements returns every notice, newest first.
func (s *Service) Announcements(ctx context.Context) ([]domboard.Announcement, error) {
	return s.repo.ListAnnouncements(ctx)
}

// Report flags a post for moderation. The post must exist.
func (s *Service) Report(ctx context.Context, postID, reporter, reason string) (domboard.Report, error) {
	if reason == "" {
		return domboard.Report{}, fmt.Errorf("%w: reason is required", domain.ErrInvalidInput)
	}

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return domboard.Report{}, domain.ErrPostNotFound
		}
		return domboard.Report{}, fmt.Errorf("check post: %w", err)
	}

	r := domboard.Report{
		ID:        s.newID(),
		PostID:    postID,
		Reporter:  reporter,
		Reason:    reason,
		CreatedAt: s.now().UnixMilli(),
	}
	if err := s.repo.CreateReport(ctx, r); err != nil {
		return domboard.Report{}, fmt.Errorf("create report: %w", err)
	}
	return r, nil
}

// Reports returns the open reports, newest first.
func (s *Service) Reports(ctx context.Context) ([]domboard.Report, error) {
	return s.repo.ListReports(ctx)
}

// Resolve closes a report by removing it.
func (s *Service) Resolve(ctx context.Context, id string) error {
	return s.repo.DeleteReport(ctx, id)
}
