// Package post defines the post entity and the ranking vocabulary of the
// feed: sort modes, vote directions, and the result caps.
package post

import "strings"

// FeedLimit caps a limited feed query after sorting.
const FeedLimit = 5

// OwnerLimit caps a limited by-owner lookup. Deliberately distinct from
// FeedLimit; both are part of the API contract.
const OwnerLimit = 3

// Post is a single forum submission. Vote counters only ever grow, one
// increment at a time; the vote difference is derived, never stored.
type Post struct {
	ID        string `json:"id"`
	Owner     string `json:"owner"`
	Tag       string `json:"tag"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
	CreatedAt int64  `json:"created_at"`
	Content   string `json:"content"`
}

// VoteDifference returns upvotes minus downvotes, the popularity sort key.
func (p Post) VoteDifference() int {
	return p.Upvotes - p.Downvotes
}

// SortMode selects the feed ranking key.
type SortMode string

const (
	// SortPopularity orders by descending vote difference.
	SortPopularity SortMode = "popularity"
	// SortRecency orders by descending creation time.
	SortRecency SortMode = "recency"
)

// ParseSortMode maps a query parameter to a SortMode. Only "popularity"
// selects the popularity order; any other value means recency.
func ParseSortMode(s string) SortMode {
	if strings.EqualFold(strings.TrimSpace(s), string(SortPopularity)) {
		return SortPopularity
	}
	return SortRecency
}

// VoteDirection identifies which counter an increment targets.
type VoteDirection string

const (
	// VoteUp increments the upvote counter.
	VoteUp VoteDirection = "up"
	// VoteDown increments the downvote counter.
	VoteDown VoteDirection = "down"
)

// Valid reports whether the direction is one of the two known values.
func (d VoteDirection) Valid() bool {
	return d == VoteUp || d == VoteDown
}
