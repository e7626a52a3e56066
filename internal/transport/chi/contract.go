package chi

import (
	"context"

	domboard "github.com/ripple-forum/ripple/internal/domain/board"
	domcomment "github.com/ripple-forum/ripple/internal/domain/comment"
	dompost "github.com/ripple-forum/ripple/internal/domain/post"
	domuser "github.com/ripple-forum/ripple/internal/domain/user"
)

// FeedService is the post feed surface the handlers call.
type FeedService interface {
	Create(ctx context.Context, owner, tag, content string) (dompost.Post, error)
	Query(ctx context.Context, search, sortBy string, limited bool) ([]dompost.Post, error)
	All(ctx context.Context) ([]dompost.Post, error)
	FindByID(ctx context.Context, id string) (dompost.Post, error)
	FindByOwner(ctx context.Context, email string, limited bool) ([]dompost.Post, error)
	IncrementVote(ctx context.Context, id string, dir dompost.VoteDirection) (int, error)
}

// UserService is the account surface the handlers call.
type UserService interface {
	Register(ctx context.Context, email, name string) (domuser.User, bool, error)
	Find(ctx context.Context, email string) (domuser.User, error)
	List(ctx context.Context) ([]domuser.User, error)
	Promote(ctx context.Context, email string, role domuser.Role) error
}

// CommentService is the thread surface the handlers call.
type CommentService interface {
	Add(ctx context.Context, postID, author, content string) (domcomment.Comment, error)
	Thread(ctx context.Context, postID string) ([]domcomment.Comment, error)
}

// BoardService is the tag / announcement / report surface.
type BoardService interface {
	CreateTag(ctx context.Context, name string) (domboard.Tag, error)
	ListTags(ctx context.Context) ([]domboard.Tag, error)
	DeleteTag(ctx context.Context, slug string) error
	Resolve(ctx context.Context, id string) error
	Announce(ctx context.Context, title, body, author string) (domboard.Announcement, error)
	Announcements(ctx context.Context) ([]domboard.Announcement, error)
	Report(ctx context.Context, postID, reporter, reason string) (domboard.Report, error)
	Reports(ctx context.Context) ([]domboard.Report, error)
}
