package service

import (
	"context"
	"fmt"
	"net/http"

	"go-blog-client/internal/api"
	"go-blog-client/internal/model"
)

// AdminService wraps the moderation endpoints. The backend enforces the
// ADMIN role; this client only routes the calls.
type AdminService struct {
	exec *api.Executor
}

func NewAdminService(exec *api.Executor) *AdminService {
	return &AdminService{exec: exec}
}

func (s *AdminService) Overview(ctx context.Context) (model.AdminOverview, error) {
	var overview model.AdminOverview
	if err := s.exec.Do(ctx, http.MethodGet, "/api/admin/overview", nil, &overview); err != nil {
		return model.AdminOverview{}, err
	}

	return overview, nil
}

func (s *AdminService) UpdateAnyPost(ctx context.Context, postID int64, req model.PostRequest) (model.Post, error) {
	var post model.Post
	path := fmt.Sprintf("/api/admin/posts/%d", postID)
	if err := s.exec.Do(ctx, http.MethodPut, path, req, &post); err != nil {
		return model.Post{}, err
	}

	return post, nil
}

// DeleteAnyPost removes any user's post. The backend authorizes post owners
// and admins on the same route.
func (s *AdminService) DeleteAnyPost(ctx context.Context, postID int64) error {
	return s.exec.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), nil, nil)
}

func (s *AdminService) ListAllComments(ctx context.Context) ([]model.Comment, error) {
	var comments []model.Comment
	if err := s.exec.Do(ctx, http.MethodGet, "/api/comments", nil, &comments); err != nil {
		return nil, err
	}

	return comments, nil
}

func (s *AdminService) UpdateAnyComment(ctx context.Context, commentID int64, content string) (model.Comment, error) {
	var comment model.Comment
	path := fmt.Sprintf("/api/comments/%d", commentID)
	if err := s.exec.Do(ctx, http.MethodPut, path, model.CommentRequest{Content: content}, &comment); err != nil {
		return model.Comment{}, err
	}

	return comment, nil
}

func (s *AdminService) DeleteAnyComment(ctx context.Context, commentID int64) error {
	return s.exec.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), nil, nil)
}

func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.exec.Do(ctx, http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, userID int64) error {
	return s.exec.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", userID), nil, nil)
}

func (s *AdminService) PromoteUser(ctx context.Context, userID int64) (model.User, error) {
	var user model.User
	path := fmt.Sprintf("/api/admin/users/%d/promote", userID)
	if err := s.exec.Do(ctx, http.MethodPut, path, nil, &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (s *AdminService) DemoteUser(ctx context.Context, userID int64) (model.User, error) {
	var user model.User
	path := fmt.Sprintf("/api/admin/users/%d/demote", userID)
	if err := s.exec.Do(ctx, http.MethodPut, path, nil, &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (s *AdminService) CreateCategory(ctx context.Context, req model.CategoryRequest) (model.Category, error) {
	var category model.Category
	if err := s.exec.Do(ctx, http.MethodPost, "/api/admin/categories", req, &category); err != nil {
		return model.Category{}, err
	}

	return category, nil
}

func (s *AdminService) UpdateCategory(ctx context.Context, categoryID int64, req model.CategoryRequest) (model.Category, error) {
	var category model.Category
	path := fmt.Sprintf("/api/admin/categories/%d", categoryID)
	if err := s.exec.Do(ctx, http.MethodPut, path, req, &category); err != nil {
		return model.Category{}, err
	}

	return category, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, categoryID int64) error {
	return s.exec.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%d", categoryID), nil, nil)
}
