package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paperdesk/internal/entity"
	"paperdesk/internal/modules/admin/dto"
	userRepo "paperdesk/internal/modules/user/repository"
	"paperdesk/pkg/apperror"
	"paperdesk/pkg/response"
)

type AdminService interface {
	ListUsers(ctx context.Context, actor response.Actor) ([]*entity.User, error)
	SetRole(ctx context.Context, actor response.Actor, userID uuid.UUID, input dto.UpdateRoleInput) (*dto.MessageUserResponse, error)
}

type adminService struct {
	users userRepo.UserRepository
}

func NewAdminService(users userRepo.UserRepository) AdminService {
	return &adminService{users: users}
}

func (s *adminService) ListUsers(ctx context.Context, actor response.Actor) ([]*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	return s.users.FindAll(ctx)
}

func (s *adminService) SetRole(ctx context.Context, actor response.Actor, userID uuid.UUID, input dto.UpdateRoleInput) (*dto.MessageUserResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	if !entity.ValidRole(input.Role) {
		return nil, apperror.New(0, "invalid role", apperror.ErrValidation)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	user.Role = input.Role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.MessageUserResponse{
		Message: "user role updated successfully",
		User:    user,
	}, nil
}
