package board

import (
	"context"
	"errors"
	"testing"

	"github.com/ripple-forum/ripple/internal/domain"
	domboard "github.com/ripple-forum/ripple/internal/domain/board"
	dompost "github.com/ripple-forum/ripple/internal/domain/post"
)

type fakeRepo struct {
	tags          map[string]domboard.Tag
	announcements []domboard.Announcement
	reports       map[string]domboard.Report
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tags:    make(map[string]domboard.Tag),
		reports: make(map[string]domboard.Report),
	}
}

func (f *fakeRepo) CreateTag(_ context.Context, t domboard.Tag) error {
	if _, ok := f.tags[t.Slug]; ok {
		return domain.ErrTagExists
	}
	f.tags[t.Slug] = t
	return nil
}

func (f *fakeRepo) ListTags(_ context.Context) ([]domboard.Tag, error) {
	out := make([]domboard.Tag, 0, len(f.tags))
	for _, t := range f.tags {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeRepo) DeleteTag(_ context.Context, slug string) error {
	delete(f.tags, slug)
	return nil
}

func (f *fakeRepo) CreateAnnouncement(_ context.Context, a domboard.Announcement) error {
	f.announcements = append(f.announcements, a)
	return nil
}

func (f *fakeRepo) ListAnnouncements(_ context.Context) ([]domboard.Announcement, error) {
	return f.announcements, nil
}

func (f *fakeRepo) CreateReport(_ context.Context, r domboard.Report) error {
	f.reports[r.ID] = r
	return nil
}

func (f *fakeRepo) ListReports(_ context.Context) ([]domboard.Report, error) {
	out := make([]domboard.Report, 0, len(f.reports))
	for _, r := range f.reports {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) DeleteReport(_ context.Context, id string) error {
	delete(f.reports, id)
	return nil
}

type fakePosts struct {
	known map[string]bool
}

func (f *fakePosts) FindByID(_ context.Context, id string) (dompost.Post, error) {
	if !f.known[id] {
		return dompost.Post{}, domain.ErrPostNotFound
	}
	return dompost.Post{ID: id}, nil
}

func newTestService(repo *fakeRepo, known ...string) *Service {
	posts := &fakePosts{known: make(map[string]bool)}
	for _, id := range known {
		posts.known[id] = true
	}
	return New(repo, posts)
}

func TestCreateTag_SlugsTheName(t *testing.T) {
	svc := newTestService(newFakeRepo())

	tag, err := svc.CreateTag(context.Background(), "Web Development")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag.Slug != "web-development" {
		t.Errorf("slug = %q, want web-development", tag.Slug)
	}
	if tag.Name != "Web Development" {
		t.Errorf("name = %q", tag.Name)
	}
}

func TestCreateTag_DuplicateSlug(t *testing.T) {
	svc := newTestService(newFakeRepo())

	if _, err := svc.CreateTag(context.Background(), "Go"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	// Different display name, same slug.
	_, err := svc.CreateTag(context.Background(), "go")
	if !errors.Is(err, domain.ErrTagExists) {
		t.Errorf("expected ErrTagExists, got %v", err)
	}
}

func TestCreateTag_RequiresName(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.CreateTag(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnnounce_AssignsIDAndTime(t *testing.T) {
	svc := newTestService(newFakeRepo())

	a, err := svc.Announce(context.Background(), "Maintenance", "back soon", "admin@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == "" || a.CreatedAt == 0 {
		t.Errorf("unexpected announcement: %+v", a)
	}
}

func TestReport_MissingPost(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Report(context.Background(), "ghost", "a@b.com", "spam")
	if !errors.Is(err, domain.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestReport_ResolveRemovesIt(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "p1")

	r, err := svc.Report(context.Background(), "p1", "a@b.com", "spam")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Resolve(context.Background(), r.ID); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	reports, _ := svc.Reports(context.Background())
	if len(reports) != 0 {
		t.Errorf("reports remaining: %+v", reports)
	}
}
