package service

import (
	"context"
	"fmt"
	"net/http"

	"go-blog-client/internal/api"
	"go-blog-client/internal/model"
)

type CommentService struct {
	exec *api.Executor
}

func NewCommentService(exec *api.Executor) *CommentService {
	return &CommentService{exec: exec}
}

func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	var comments []model.Comment
	path := fmt.Sprintf("/api/posts/%d/comments", postID)
	if err := s.exec.Do(ctx, http.MethodGet, path, nil, &comments); err != nil {
		return nil, err
	}

	return comments, nil
}

func (s *CommentService) Create(ctx context.Context, postID int64, content string) (model.Comment, error) {
	var comment model.Comment
	path := fmt.Sprintf("/api/posts/%d/comments", postID)
	if err := s.exec.Do(ctx, http.MethodPost, path, model.CommentRequest{Content: content}, &comment); err != nil {
		return model.Comment{}, err
	}

	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, postID, commentID int64, content string) (model.Comment, error) {
	var comment model.Comment
	path := fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID)
	if err := s.exec.Do(ctx, http.MethodPut, path, model.CommentRequest{Content: content}, &comment); err != nil {
		return model.Comment{}, err
	}

	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, postID, commentID int64) error {
	path := fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID)
	return s.exec.Do(ctx, http.MethodDelete, path, nil, nil)
}
