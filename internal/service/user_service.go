package service

import (
	"context"
	"fmt"

	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/pagination"
	"github.com/qs3c/blog_web_server/internal/pkg/session"
)

type UserService struct {
	client   *backend.Client
	activity *ActivityService
}

func NewUserService(client *backend.Client, activity *ActivityService) *UserService {
	return &UserService{
		client:   client,
		activity: activity,
	}
}

// List 用户列表，role 为空时不过滤
func (s *UserService) List(ctx context.Context, page, pageSize int, role string) (*pagination.Page[model.User], error) {
	if role != "" {
		if err := getValidator().Var(role, "oneof=admin editor reader"); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	page, pageSize = pagination.Normalize(page, pageSize, pagination.DefaultPageSize)
	return s.client.ListUsers(ctx, page, pageSize, role)
}

// Update 修改角色或启用状态，不能修改自己
func (s *UserService) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*model.User, error) {
	if err := validateID("user_id", id); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if isSelf(ctx, id) {
		return nil, ErrSelfModify
	}

	user, err := s.client.UpdateUser(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "update", "users", id, user.Username)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := validateID("user_id", id); err != nil {
		return err
	}
	if isSelf(ctx, id) {
		return ErrSelfModify
	}
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "delete", "users", id, "")
	return nil
}

func isSelf(ctx context.Context, userID int64) bool {
	sess, ok := session.FromContext(ctx)
	return ok && sess.UserID == userID
}
