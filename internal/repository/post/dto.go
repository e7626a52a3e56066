package post

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ripple-forum/ripple/internal/db"
	dompost "github.com/ripple-forum/ripple/internal/domain/post"
)

// rowToPost converts an aggregation row of flat attributes into a Post.
// The id comes from the document key; numeric attributes arrive as strings.
func rowToPost(row db.Row) dompost.Post {
	return dompost.Post{
		ID:        strings.TrimPrefix(row["__key"], keyPrefix()),
		Owner:     row["owner"],
		Tag:       row["tag"],
		Upvotes:   atoi(row["upvotes"]),
		Downvotes: atoi(row["downvotes"]),
		CreatedAt: int64(atoi(row["created_at"])),
		Content:   row["content"],
	}
}

// parseRootDoc unwraps a JSON.GET "$" reply, which is an array holding the
// root document.
func parseRootDoc(raw []byte) (dompost.Post, error) {
	var docs []dompost.Post
	if err := json.Unmarshal(raw, &docs); err != nil {
		// Some paths return the bare document rather than an array.
		var p dompost.Post
		if err2 := json.Unmarshal(raw, &p); err2 == nil {
			return p, nil
		}
		return dompost.Post{}, fmt.Errorf("unmarshal post: %w", err)
	}
	if len(docs) == 0 {
		return dompost.Post{}, fmt.Errorf("empty post document")
	}
	return docs[0], nil
}

// parseEntryDoc extracts a Post from an FT.SEARCH entry carrying the whole
// document under the "$" field.
func parseEntryDoc(entry db.SearchEntry) (dompost.Post, error) {
	raw, ok := entry.Fields["$"]
	if !ok {
		return dompost.Post{}, fmt.Errorf("entry %s has no document field", entry.Key)
	}
	var p dompost.Post
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return dompost.Post{}, fmt.Errorf("unmarshal post %s: %w", entry.Key, err)
	}
	if p.ID == "" {
		p.ID = strings.TrimPrefix(entry.Key, keyPrefix())
	}
	return p, nil
}

// atoi parses integers that may arrive formatted as floats ("8" or "8.0").
func atoi(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
