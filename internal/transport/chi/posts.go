package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	dompost "github.com/ripple-forum/ripple/internal/domain/post"
	"github.com/ripple-forum/ripple/internal/metrics"
)

// Feed handles GET /posts?search=&sortBy=. The result is ranked by the
// requested sort key and capped.
func (s *Server) Feed(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	sortBy := r.URL.Query().Get("sortBy")

	posts, err := s.feed.Query(r.Context(), search, sortBy, true)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// AllPosts handles GET /allposts: the full unranked list, newest first.
func (s *Server) AllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.feed.All(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /post/{id}.
func (s *Server) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := s.feed.FindByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// PostsByOwnerLimited handles GET /post/email/{email}: the owner's newest
// posts, capped.
func (s *Server) PostsByOwnerLimited(w http.ResponseWriter, r *http.Request) {
	s.postsByOwner(w, r, true)
}

// PostsByOwner handles GET /posts/email/{email}: every post by the owner.
func (s *Server) PostsByOwner(w http.ResponseWriter, r *http.Request) {
	s.postsByOwner(w, r, false)
}

func (s *Server) postsByOwner(w http.ResponseWriter, r *http.Request, limited bool) {
	email := chi.URLParam(r, "email")

	posts, err := s.feed.FindByOwner(r.Context(), email, limited)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

type createPostRequest struct {
	Owner   string `json:"owner"`
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

// CreatePost handles POST /posts.
func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	post, err := s.feed.Create(r.Context(), req.Owner, req.Tag, req.Content)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Upvote handles PATCH /upvote/{id}.
func (s *Server) Upvote(w http.ResponseWriter, r *http.Request) {
	s.vote(w, r, dompost.VoteUp)
}

// Downvote handles PATCH /downvote/{id}.
func (s *Server) Downvote(w http.ResponseWriter, r *http.Request) {
	s.vote(w, r, dompost.VoteDown)
}

func (s *Server) vote(w http.ResponseWriter, r *http.Request, dir dompost.VoteDirection) {
	id := chi.URLParam(r, "id")

	matched, err := s.feed.IncrementVote(r.Context(), id, dir)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if matched == 0 {
		writeError(w, http.StatusNotFound, codeNotFound, "post not found")
		return
	}

	metrics.VotesTotal.WithLabelValues(string(dir)).Inc()
	writeJSON(w, http.StatusOK, map[string]int{"matched": matched})
}
