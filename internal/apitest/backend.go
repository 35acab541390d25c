// Package apitest runs an in-memory stand-in for the blog backend. Tests
// point a client at Backend.URL() and exercise the real HTTP path, token
// issuing included.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-blog-client/internal/model"
)

const signingSecret = "apitest-signing-secret"

type account struct {
	ID       int64
	Password string
	Name     string
	Email    string
	Role     string
}

type Backend struct {
	server *httptest.Server

	mu           sync.Mutex
	accounts     map[string]*account
	posts        map[int64]*model.Post
	comments     map[int64]*model.Comment
	categories   map[int64]*model.Category
	nextID       int64
	accessTTL    time.Duration
	refreshCalls int
	authFailures map[string]int // path -> number of 401s still to serve
}

func NewBackend() *Backend {
	b := &Backend{
		accounts: map[string]*account{
			"alice": {ID: 1, Password: "password1", Name: "Alice", Email: "alice@example.com", Role: model.RoleUser},
			"root":  {ID: 2, Password: "hunter22", Name: "Root", Email: "root@example.com", Role: model.RoleAdmin},
		},
		posts:        map[int64]*model.Post{},
		comments:     map[int64]*model.Comment{},
		categories:   map[int64]*model.Category{},
		nextID:       100,
		accessTTL:    time.Hour,
		authFailures: map[string]int{},
	}

	r := chi.NewRouter()
	r.Post("/api/auth/login", b.handleLogin)
	r.Post("/api/auth/register", b.handleRegister)
	r.Post("/api/auth/refresh", b.handleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(b.requireAuth)

		r.Get("/api/posts", b.handleListPosts)
		r.Post("/api/posts", b.handleCreatePost)
		r.Get("/api/posts/me", b.handleListMyPosts)
		r.Get("/api/posts/{id}", b.handleGetPost)
		r.Put("/api/posts/{id}", b.handleUpdatePost)
		r.Delete("/api/posts/{id}", b.handleDeletePost)

		r.Get("/api/posts/{id}/comments", b.handleListComments)
		r.Post("/api/posts/{id}/comments", b.handleCreateComment)
		r.Put("/api/posts/{id}/comments/{cid}", b.handleUpdateComment)
		r.Delete("/api/posts/{id}/comments/{cid}", b.handleDeleteComment)

		r.Get("/api/categories", b.handleListCategories)
		r.Get("/api/users/me", b.handleProfile)
	})

	b.server = httptest.NewServer(r)
	return b
}

func (b *Backend) URL() string {
	return b.server.URL
}

func (b *Backend) Close() {
	b.server.Close()
}

// SetAccessTTL controls the lifetime of subsequently issued access tokens.
// Negative values issue already-expired tokens.
func (b *Backend) SetAccessTTL(ttl time.Duration) {
	b.mu.Lock()
	b.accessTTL = ttl
	b.mu.Unlock()
}

// FailAuthTimes makes the next n authenticated calls to path come back 401
// regardless of the presented token, simulating expiry server-side.
func (b *Backend) FailAuthTimes(path string, n int) {
	b.mu.Lock()
	b.authFailures[path] = n
	b.mu.Unlock()
}

// RefreshCalls reports how many times the refresh endpoint was hit.
func (b *Backend) RefreshCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.refreshCalls
}

// IssueAccessToken mints a signed access token the way the backend does:
// sub is the username, with name, email and role claims.
func (b *Backend) IssueAccessToken(username, role string, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  username,
		"name": username,
		"role": role,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(signingSecret))
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}

	return signed
}

func (b *Backend) issueRefreshToken(username string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(7 * 24 * time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(signingSecret))
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}

	return signed
}

func (b *Backend) parseToken(raw string) (username string, role string, err error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(signingSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", "", fmt.Errorf("invalid token")
	}

	claims := parsed.Claims.(jwt.MapClaims)
	username, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)

	return username, role, nil
}

func (b *Backend) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		if left := b.authFailures[r.URL.Path]; left > 0 {
			b.authFailures[r.URL.Path] = left - 1
			b.mu.Unlock()
			writeJSON(w, http.StatusUnauthorized, model.Message{Message: "token expired"})
			return
		}
		b.mu.Unlock()

		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			writeJSON(w, http.StatusUnauthorized, model.Message{Message: "missing bearer token"})
			return
		}

		username, _, err := b.parseToken(header[len(prefix):])
		if err != nil || username == "" {
			writeJSON(w, http.StatusUnauthorized, model.Message{Message: "invalid token"})
			return
		}

		r.Header.Set("X-Test-User", username)
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.Message{Message: "bad request"})
		return
	}

	b.mu.Lock()
	acct, ok := b.accounts[req.Username]
	ttl := b.accessTTL
	b.mu.Unlock()

	if !ok || acct.Password != req.Password {
		writeJSON(w, http.StatusUnauthorized, model.Message{Message: "invalid credentials"})
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{
		Token:        b.IssueAccessToken(req.Username, acct.Role, ttl),
		RefreshToken: b.issueRefreshToken(req.Username),
		Username:     req.Username,
		Role:         acct.Role,
	})
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.Message{Message: "bad request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.accounts[req.Username]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Username already taken"})
		return
	}

	b.nextID++
	b.accounts[req.Username] = &account{
		ID:       b.nextID,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Role:     model.RoleUser,
	}
	writeJSON(w, http.StatusCreated, model.Message{Message: "User created successfully"})
}

func (b *Backend) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, model.Message{Message: "Refresh token is null"})
		return
	}

	b.mu.Lock()
	b.refreshCalls++
	ttl := b.accessTTL
	b.mu.Unlock()

	username, _, err := b.parseToken(req.RefreshToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, model.Message{Message: "Invalid refresh token"})
		return
	}

	b.mu.Lock()
	acct, ok := b.accounts[username]
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, model.Message{Message: "Invalid refresh token"})
		return
	}

	writeJSON(w, http.StatusOK, model.RefreshResponse{
		AccessToken:  b.IssueAccessToken(username, acct.Role, ttl),
		RefreshToken: req.RefreshToken,
		Username:     username,
	})
}

func (b *Backend) handleListPosts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	posts := make([]model.Post, 0, len(b.posts))
	for _, p := range b.posts {
		if p.Status == model.PostStatusPublished {
			posts = append(posts, *p)
		}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (b *Backend) handleListMyPosts(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get("X-Test-User")

	b.mu.Lock()
	defer b.mu.Unlock()

	posts := make([]model.Post, 0)
	for _, p := range b.posts {
		if p.Username == username {
			posts = append(posts, *p)
		}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (b *Backend) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req model.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.Message{Message: "bad request"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, model.Message{Message: "Title is required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	now := time.Now().UTC().Format(time.RFC3339)
	post := &model.Post{
		ID:        b.nextID,
		Title:     req.Title,
		Content:   req.Content,
		Status:    req.Status,
		ImageURL:  req.ImageURL,
		Username:  r.Header.Get("X-Test-User"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, cid := range req.CategoryIDs {
		if c, ok := b.categories[cid]; ok {
			post.Categories = append(post.Categories, *c)
		}
	}
	b.posts[post.ID] = post
	writeJSON(w, http.StatusCreated, post)
}

func (b *Backend) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	post, ok := b.posts[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, model.Message{Message: "Post not found"})
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (b *Backend) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")

	var req model.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.Message{Message: "bad request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	post, ok := b.posts[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, model.Message{Message: "Post not found"})
		return
	}
	post.Title = req.Title
	post.Content = req.Content
	if req.Status != "" {
		post.Status = req.Status
	}
	post.ImageURL = req.ImageURL
	post.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, post)
}

func (b *Backend) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.posts[id]; !ok {
		writeJSON(w, http.StatusNotFound, model.Message{Message: "Post not found"})
		return
	}
	delete(b.posts, id)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) handleListComments(w http.ResponseWriter, r *http.Request) {
	postID := pathID(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	comments := make([]model.Comment, 0)
	for _, c := range b.comments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	writeJSON(w, http.StatusOK, comments)
}

func (b *Backend) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	postID := pathID(r, "id")

	var req model.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.Message{Message: "bad request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.posts[postID]; !ok {
		writeJSON(w, http.StatusNotFound, model.Message{Message: "Post not found"})
		return
	}

	b.nextID++
	now := time.Now().UTC().Format(time.RFC3339)
	comment := &model.Comment{
		ID:        b.nextID,
		Comment:   req.Content,
		Author:    r.Header.Get("X-Test-User"),
		PostID:    postID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.comments[comment.ID] = comment
	writeJSON(w, http.StatusCreated, comment)
}

func (b *Backend) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID := pathID(r, "cid")

	var req model.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.Message{Message: "bad request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	comment, ok := b.comments[commentID]
	if !ok {
		writeJSON(w, http.StatusNotFound, model.Message{Message: "Comment not found"})
		return
	}
	comment.Comment = req.Content
	comment.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, comment)
}

func (b *Backend) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := pathID(r, "cid")

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.comments[commentID]; !ok {
		writeJSON(w, http.StatusNotFound, model.Message{Message: "Comment not found"})
		return
	}
	delete(b.comments, commentID)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) handleListCategories(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	categories := make([]model.Category, 0, len(b.categories))
	for _, c := range b.categories {
		categories = append(categories, *c)
	}
	writeJSON(w, http.StatusOK, categories)
}

func (b *Backend) handleProfile(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get("X-Test-User")

	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[username]
	if !ok {
		writeJSON(w, http.StatusNotFound, model.Message{Message: "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, model.User{
		ID:       acct.ID,
		Username: username,
		Name:     acct.Name,
		Email:    acct.Email,
		Role:     acct.Role,
	})
}

// SeedCategory adds a category and returns it.
func (b *Backend) SeedCategory(name, description string) model.Category {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	c := &model.Category{ID: b.nextID, Name: name, Description: description}
	b.categories[c.ID] = c

	return *c
}

// SeedPost adds a published post owned by username and returns it.
func (b *Backend) SeedPost(username, title, content string) model.Post {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	now := time.Now().UTC().Format(time.RFC3339)
	p := &model.Post{
		ID:        b.nextID,
		Title:     title,
		Content:   content,
		Status:    model.PostStatusPublished,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.posts[p.ID] = p

	return *p
}

func pathID(r *http.Request, key string) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
