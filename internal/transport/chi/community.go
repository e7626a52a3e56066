package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type addCommentRequest struct {
	PostID  string `json:"post_id"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// AddComment handles POST /comments.
func (s *Server) AddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	c, err := s.comments.Add(r.Context(), req.PostID, req.Author, req.Content)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// CommentsForPost handles GET /comments/{postId}.
func (s *Server) CommentsForPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	thread, err := s.comments.Thread(r.Context(), postID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}

type createTagRequest struct {
	Name string `json:"name"`
}

// CreateTag handles POST /tags (guarded).
func (s *Server) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	t, err := s.board.CreateTag(r.Context(), req.Name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// DeleteTag handles DELETE /tags/{slug} (guarded).
func (s *Server) DeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := s.board.DeleteTag(r.Context(), chi.URLParam(r, "slug")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTags handles GET /tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.board.ListTags(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

type createAnnouncementRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Author string `json:"author"`
}

// CreateAnnouncement handles POST /announcements (guarded).
func (s *Server) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req createAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	a, err := s.board.Announce(r.Context(), req.Title, req.Body, req.Author)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// ListAnnouncements handles GET /announcements.
func (s *Server) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	anns, err := s.board.Announcements(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, anns)
}

type fileReportRequest struct {
	PostID   string `json:"post_id"`
	Reporter string `json:"reporter"`
	Reason   string `json:"reason"`
}

// FileReport handles POST /reports (guarded).
func (s *Server) FileReport(w http.ResponseWriter, r *http.Request) {
	var req fileReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	rep, err := s.board.Report(r.Context(), req.PostID, req.Reporter, req.Reason)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

// ResolveReport handles DELETE /reports/{id} (guarded).
func (s *Server) ResolveReport(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Resolve(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListReports handles GET /reports (guarded).
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.board.Reports(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
