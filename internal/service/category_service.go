package service

import (
	"context"
	"net/http"

	"go-blog-client/internal/api"
	"go-blog-client/internal/model"
)

type CategoryService struct {
	exec *api.Executor
}

func NewCategoryService(exec *api.Executor) *CategoryService {
	return &CategoryService{exec: exec}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := s.exec.Do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}
