package service

import (
	"context"
	"fmt"
	"net/http"

	"go-blog-client/internal/api"
	"go-blog-client/internal/model"
)

type PostService struct {
	exec *api.Executor
}

func NewPostService(exec *api.Executor) *PostService {
	return &PostService{exec: exec}
}

func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := s.exec.Do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// ListMine returns the posts owned by the authenticated user, drafts
// included.
func (s *PostService) ListMine(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := s.exec.Do(ctx, http.MethodGet, "/api/posts/me", nil, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (model.Post, error) {
	var post model.Post
	if err := s.exec.Do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &post); err != nil {
		return model.Post{}, err
	}

	return post, nil
}

func (s *PostService) Create(ctx context.Context, req model.PostRequest) (model.Post, error) {
	if req.Status == "" {
		req.Status = model.PostStatusDraft
	}

	var post model.Post
	if err := s.exec.Do(ctx, http.MethodPost, "/api/posts", req, &post); err != nil {
		return model.Post{}, err
	}

	return post, nil
}

func (s *PostService) Update(ctx context.Context, id int64, req model.PostRequest) (model.Post, error) {
	var post model.Post
	if err := s.exec.Do(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), req, &post); err != nil {
		return model.Post{}, err
	}

	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	return s.exec.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, nil)
}
