package feed

import (
	"context"

	dompost "github.com/ripple-forum/ripple/internal/domain/post"
)

// Repository defines the storage contract for the post feed.
type Repository interface {
	Insert(ctx context.Context, p dompost.Post) error
	Get(ctx context.Context, id string) (dompost.Post, error)

	// Ranked returns posts matching the tag search term, sorted by the
	// requested mode descending and capped at limit.
	Ranked(ctx context.Context, search string, mode dompost.SortMode, limit int) ([]dompost.Post, error)

	// ByOwner returns posts owned by email, newest first, capped at limit.
	ByOwner(ctx context.Context, email string, limit int) ([]dompost.Post, error)

	// IncrementVote adds one to the chosen counter and reports how many
	// posts matched the id (0 or 1). A missing id is not an error.
	IncrementVote(ctx context.Context, id string, dir dompost.VoteDirection) (int, error)

	Count(ctx context.Context) (int, error)
}
