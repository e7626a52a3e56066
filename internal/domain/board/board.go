// Package board holds the bulletin-board side entities: tags,
// announcements, and reports. Plain keyed records, no ranking.
package board

// Tag is a post category label, keyed by its slug.
type Tag struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// Announcement is a site-wide notice.
type Announcement struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Author    string `json:"author"`
	CreatedAt int64  `json:"created_at"`
}

// Report flags a post for moderation.
type Report struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	Reporter  string `json:"reporter"`
	Reason    string `json:"reason"`
	CreatedAt int64  `json:"created_at"`
}
