// Package board implements storage for the bulletin-board entities: tags,
// announcements, and reports. These are plain keyed JSON records listed by
// key scan, with no search index.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ripple-forum/ripple/internal/db"
	"github.com/ripple-forum/ripple/internal/domain"
	domboard "github.com/ripple-forum/ripple/internal/domain/board"
)

// store is the consumer interface for board records (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/board.Repository.
type Repo struct {
	store store
}

// New creates a board repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// CreateTag stores a new tag. Returns domain.ErrTagExists when the slug is
// already taken.
func (r *Repo) CreateTag(ctx context.Context, t domboard.Tag) error {
	key := tagKey(t.Slug)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if exists {
		return domain.ErrTagExists
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal tag: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// ListTags returns every tag, ordered by slug.
func (r *Repo) ListTags(ctx context.Context) ([]domboard.Tag, error) {
	docs, err := r.scanDocs(ctx, tagPrefix())
	if err != nil {
		return nil, err
	}

	tags := make([]domboard.Tag, 0, len(docs))
	for _, raw := range docs {
		var t domboard.Tag
		if err := unwrap(raw, &t); err != nil {
			continue
		}
		tags = append(tags, t)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Slug < tags[j].Slug })
	return tags, nil
}

// DeleteTag removes a tag by slug.
func (r *Repo) DeleteTag(ctx context.Context, slug string) error {
	key := tagKey(slug)
	if err := r.store.Del(ctx, key); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// CreateAnnouncement stores a new announcement.
func (r *Repo) CreateAnnouncement(ctx context.Context, a domboard.Announcement) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal announcement: %w", err)
	}
	key := announcementKey(a.ID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// ListAnnouncements returns every announcement, newest first.
func (r *Repo) ListAnnouncements(ctx context.Context) ([]domboard.Announcement, error) {
	docs, err := r.scanDocs(ctx, announcementPrefix())
	if err != nil {
		return nil, err
	}

	anns := make([]domboard.Announcement, 0, len(docs))
	for _, raw := range docs {
		var a domboard.Announcement
		if err := unwrap(raw, &a); err != nil {
			continue
		}
		anns = append(anns, a)
	}

	sort.Slice(anns, func(i, j int) bool { return anns[i].CreatedAt > anns[j].CreatedAt })
	return anns, nil
}

// CreateReport stores a new moderation report.
func (r *Repo) CreateReport(ctx context.Context, rep domboard.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	key := reportKey(rep.ID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// ListReports returns every open report, newest first.
func (r *Repo) ListReports(ctx context.Context) ([]domboard.Report, error) {
	docs, err := r.scanDocs(ctx, reportPrefix())
	if err != nil {
		return nil, err
	}

	reports := make([]domboard.Report, 0, len(docs))
	for _, raw := range docs {
		var rep domboard.Report
		if err := unwrap(raw, &rep); err != nil {
			continue
		}
		reports = append(reports, rep)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].CreatedAt > reports[j].CreatedAt })
	return reports, nil
}

// DeleteReport removes a resolved report.
func (r *Repo) DeleteReport(ctx context.Context, id string) error {
	key := reportKey(id)
	if err := r.store.Del(ctx, key); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func (r *Repo) scanDocs(ctx context.Context, prefix string) ([][]byte, error) {
	keys, err := r.store.Scan(ctx, prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	docs, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", prefix, err)
	}

	out := make([][]byte, 0, len(docs))
	for _, raw := range docs {
		if raw != nil {
			out = append(out, raw)
		}
	}
	return out, nil
}

func tagPrefix() string          { return domain.KeyPrefix + "tags:" }
func announcementPrefix() string { return domain.KeyPrefix + "announcements:" }
func reportPrefix() string       { return domain.KeyPrefix + "reports:" }

func tagKey(slug string) string        { return tagPrefix() + slug }
func announcementKey(id string) string { return announcementPrefix() + id }
func reportKey(id string) string       { return reportPrefix() + id }

// unwrap decodes a JSON.GET "$" reply, which wraps the document in a
// one-element array.
func unwrap(raw []byte, v any) error {
	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return json.Unmarshal(raw, v)
	}
	if len(docs) == 0 {
		return errors.New("empty document")
	}
	return json.Unmarshal(docs[0], v)
}
