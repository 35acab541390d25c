package service

import (
	"context"
	"net/http"

	"go-blog-client/internal/api"
	"go-blog-client/internal/model"
)

type UserService struct {
	exec *api.Executor
}

func NewUserService(exec *api.Executor) *UserService {
	return &UserService{exec: exec}
}

func (s *UserService) Profile(ctx context.Context) (model.User, error) {
	var user model.User
	if err := s.exec.Do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (model.User, error) {
	var user model.User
	if err := s.exec.Do(ctx, http.MethodPut, "/api/users/profile", req, &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, current, next string) error {
	req := model.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	return s.exec.Do(ctx, http.MethodPut, "/api/users/change-password", req, nil)
}
