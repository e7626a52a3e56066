package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ripple-forum/ripple/internal/auth"
)

func testTokens() *auth.Manager {
	return auth.NewManager("test-secret", time.Hour)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if called != nil {
			*called = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_MissingHeader_401(t *testing.T) {
	called := false
	handler := RequireAuth(testTokens())(okHandler(&called))

	req := httptest.NewRequest("GET", "/users", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("handler must not run without a token")
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeUnauthorized {
		t.Errorf("error code: got %s, want %s", errResp.Code, codeUnauthorized)
	}
}

func TestRequireAuth_BasicScheme_401(t *testing.T) {
	handler := RequireAuth(testTokens())(okHandler(nil))

	req := httptest.NewRequest("GET", "/users", http.NoBody)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("basic scheme: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_GarbageToken_401(t *testing.T) {
	handler := RequireAuth(testTokens())(okHandler(nil))

	req := httptest.NewRequest("GET", "/users", http.NoBody)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_WrongSecret_401(t *testing.T) {
	other := auth.NewManager("other-secret", time.Hour)
	token, err := other.Issue("a@b.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	handler := RequireAuth(testTokens())(okHandler(nil))

	req := httptest.NewRequest("GET", "/users", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong secret: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_ValidToken_PassThrough(t *testing.T) {
	tokens := testTokens()
	token, err := tokens.Issue("a@b.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	called := false
	handler := RequireAuth(tokens)(okHandler(&called))

	req := httptest.NewRequest("GET", "/users", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("valid token: got %d, want %d", rr.Code, http.StatusOK)
	}
	if !called {
		t.Error("handler should run with a valid token")
	}
}
