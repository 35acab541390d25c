package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-client/internal/model"
	"go-blog-client/internal/session"
	"go-blog-client/pkg/apierror"
)

func newTestStore(t *testing.T, accessToken, refreshToken string) *session.Store {
	t.Helper()

	store := session.NewStore(session.NewMemoryKeystore())
	if accessToken != "" {
		require.NoError(t, store.Login(accessToken, refreshToken, "alice", "USER"))
	}

	return store
}

func newTestExecutor(url string, store *session.Store) *Executor {
	return NewExecutor(url, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// recorder tracks every request a scripted backend serves.
type recorder struct {
	mu       sync.Mutex
	requests []*http.Request
	auth     []string
}

func (r *recorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)
	r.auth = append(r.auth, req.Header.Get("Authorization"))
}

func (r *recorder) count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, req := range r.requests {
		if req.URL.Path == path {
			n++
		}
	}

	return n
}

func TestDo_SingleRetryOn401(t *testing.T) {
	rec := &recorder{}
	dataCalls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		switch r.URL.Path {
		case "/api/auth/refresh":
			var req model.RefreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "refresh-1", req.RefreshToken)
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, model.RefreshResponse{
				AccessToken:  "token-2",
				RefreshToken: "refresh-2",
				Username:     "alice",
			})
		case "/api/data":
			dataCalls++
			if dataCalls == 1 {
				writeJSON(t, w, http.StatusUnauthorized, model.Message{Message: "token expired"})
				return
			}
			writeJSON(t, w, http.StatusOK, map[string]int{"value": 42})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	store := newTestStore(t, "token-1", "refresh-1")
	exec := newTestExecutor(srv.URL, store)

	var out map[string]int
	err := exec.Do(context.Background(), http.MethodGet, "/api/data", nil, &out)
	require.NoError(t, err)

	// Exactly three network interactions: failed call, refresh, retry.
	assert.Equal(t, 2, rec.count("/api/data"))
	assert.Equal(t, 1, rec.count("/api/auth/refresh"))
	assert.Equal(t, 42, out["value"])

	// The retry carried the refreshed token and the session kept it.
	assert.Equal(t, "Bearer token-2", rec.auth[len(rec.auth)-1])
	assert.Equal(t, "token-2", store.AccessToken())
	assert.Equal(t, "refresh-2", store.RefreshToken())
}

func TestDo_NoSecondRefresh(t *testing.T) {
	rec := &recorder{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		if r.URL.Path == "/api/auth/refresh" {
			writeJSON(t, w, http.StatusOK, model.RefreshResponse{
				AccessToken:  "token-2",
				RefreshToken: "refresh-2",
				Username:     "alice",
			})
			return
		}
		// The resource keeps rejecting even after a successful refresh.
		writeJSON(t, w, http.StatusUnauthorized, model.Message{Message: "still unauthorized"})
	}))
	defer srv.Close()

	exec := newTestExecutor(srv.URL, newTestStore(t, "token-1", "refresh-1"))

	err := exec.Do(context.Background(), http.MethodGet, "/api/data", nil, nil)
	require.Error(t, err)
	assert.True(t, apierror.IsUnauthorized(err))

	assert.Equal(t, 2, rec.count("/api/data"))
	assert.Equal(t, 1, rec.count("/api/auth/refresh"))
}

func TestDo_RefreshFailureClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			writeJSON(t, w, http.StatusUnauthorized, model.Message{Message: "Invalid refresh token"})
			return
		}
		writeJSON(t, w, http.StatusUnauthorized, model.Message{Message: "token expired"})
	}))
	defer srv.Close()

	store := newTestStore(t, "token-1", "refresh-1")
	exec := newTestExecutor(srv.URL, store)

	err := exec.Do(context.Background(), http.MethodGet, "/api/data", nil, nil)
	require.Error(t, err)

	// The original unauthorized error surfaces, not the refresh error.
	assert.True(t, apierror.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "token expired")

	assert.False(t, store.IsAuthenticated())
}

func TestDo_401WithoutRefreshTokenIsImmediate(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		writeJSON(t, w, http.StatusUnauthorized, model.Message{Message: "missing bearer token"})
	}))
	defer srv.Close()

	exec := newTestExecutor(srv.URL, session.NewStore(session.NewMemoryKeystore()))

	err := exec.Do(context.Background(), http.MethodGet, "/api/data", nil, nil)
	require.Error(t, err)
	assert.True(t, apierror.IsUnauthorized(err))

	assert.Equal(t, 1, rec.count("/api/data"))
	assert.Equal(t, 0, rec.count("/api/auth/refresh"))
}

func TestDo_NoContentResolvesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	exec := newTestExecutor(srv.URL, newTestStore(t, "token-1", "refresh-1"))

	var out map[string]any
	err := exec.Do(context.Background(), http.MethodDelete, "/api/posts/1", nil, &out)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestDo_EmptyBodyOn200ResolvesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	exec := newTestExecutor(srv.URL, newTestStore(t, "token-1", "refresh-1"))

	var out map[string]any
	err := exec.Do(context.Background(), http.MethodGet, "/api/data", nil, &out)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestDo_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusNotFound, `{"message":"Post not found"}`, "Post not found"},
		{"error field", http.StatusConflict, `{"error":"Username already taken"}`, "Username already taken"},
		{"plain text body", http.StatusBadGateway, "upstream exploded", "request failed with status 502"},
		{"empty body", http.StatusInternalServerError, "", "request failed with status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			exec := newTestExecutor(srv.URL, newTestStore(t, "token-1", "refresh-1"))

			err := exec.Do(context.Background(), http.MethodGet, "/api/data", nil, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)

			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.HTTPStatus)
		})
	}
}

func TestDo_TransportErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	store := newTestStore(t, "token-1", "refresh-1")
	exec := newTestExecutor(srv.URL, store)

	err := exec.Do(context.Background(), http.MethodGet, "/api/data", nil, nil)
	require.Error(t, err)

	// Not an API error and no retry side effects: session stays intact.
	var apiErr *apierror.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.True(t, store.IsAuthenticated())
}

func TestDo_OmitsAuthorizationWhenLoggedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, map[string]string{"ok": "yes"})
	}))
	defer srv.Close()

	exec := newTestExecutor(srv.URL, session.NewStore(session.NewMemoryKeystore()))

	err := exec.Do(context.Background(), http.MethodGet, "/api/posts", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}
