// Package chi implements the HTTP transport: route handlers, the bearer
// guard, rate limiting, and the error envelope.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ripple-forum/ripple/internal/auth"
	"github.com/ripple-forum/ripple/internal/domain"
	logpkg "github.com/ripple-forum/ripple/internal/logger"
	healthuc "github.com/ripple-forum/ripple/internal/usecase/health"
)

// Error envelope codes.
const (
	codeBadRequest   = "bad_request"
	codeUnauthorized = "unauthorized"
	codeNotFound     = "not_found"
	codeConflict     = "conflict"
	codeInternal     = "internal_error"
)

// errorResponse is the JSON error envelope for every non-2xx reply.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server wires the HTTP surface to the usecase services.
type Server struct {
	feed     FeedService
	users    UserService
	comments CommentService
	board    BoardService
	health   *healthuc.Service
	tokens   *auth.Manager
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	feed FeedService,
	users UserService,
	comments CommentService,
	board BoardService,
	health *healthuc.Service,
	tokens *auth.Manager,
	logger *zap.Logger,
) *Server {
	return &Server{
		feed:     feed,
		users:    users,
		comments: comments,
		board:    board,
		health:   health,
		tokens:   tokens,
		logger:   logger,
	}
}

// Routes mounts every handler on the given router. Privileged routes sit
// behind the bearer guard; health and metrics stay open.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/jwt", s.IssueToken)

	r.Get("/posts", s.Feed)
	r.Post("/posts", s.CreatePost)
	r.Get("/allposts", s.AllPosts)
	r.Get("/post/{id}", s.GetPost)
	r.Get("/post/email/{email}", s.PostsByOwnerLimited)
	r.Get("/posts/email/{email}", s.PostsByOwner)
	r.Patch("/upvote/{id}", s.Upvote)
	r.Patch("/downvote/{id}", s.Downvote)

	r.Post("/users", s.RegisterUser)
	r.Get("/comments/{postId}", s.CommentsForPost)
	r.Post("/comments", s.AddComment)
	r.Get("/tags", s.ListTags)
	r.Get("/announcements", s.ListAnnouncements)

	r.Group(func(g chi.Router) {
		g.Use(RequireAuth(s.tokens))
		g.Get("/users", s.ListUsers)
		g.Get("/users/{email}", s.GetUser)
		g.Patch("/users/{email}/role", s.ChangeRole)
		g.Post("/tags", s.CreateTag)
		g.Delete("/tags/{slug}", s.DeleteTag)
		g.Post("/announcements", s.CreateAnnouncement)
		g.Get("/reports", s.ListReports)
		g.Post("/reports", s.FileReport)
		g.Delete("/reports/{id}", s.ResolveReport)
	})
}

// Root handles GET /: a plain liveness line.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("server is running"))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrPostNotFound,
		domain.ErrUserNotFound,
		domain.ErrTagExists,
		domain.ErrInvalidInput,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// handleDomainError logs through the request-scoped logger so the warning
// carries the request id from the wide-event middleware.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logpkg.FromContext(r.Context()).Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)

	switch {
	case errors.Is(err, domain.ErrPostNotFound), errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, msg)
	case errors.Is(err, domain.ErrTagExists):
		writeError(w, http.StatusConflict, codeConflict, msg)
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, codeBadRequest, msg)
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, msg)
	}
}
