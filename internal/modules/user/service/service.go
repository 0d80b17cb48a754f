package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"paperdesk/internal/auth"
	"paperdesk/internal/entity"
	"paperdesk/internal/modules/user/dto"
	"paperdesk/internal/modules/user/repository"
	"paperdesk/pkg/apperror"
	"paperdesk/pkg/response"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	CurrentUser(ctx context.Context, actor response.Actor) (*entity.User, error)
}

type authService struct {
	repo          repository.UserRepository
	secret        string
	tokenTTL      time.Duration
	allowedDomain string
}

func NewAuthService(repo repository.UserRepository, secret string, tokenTTL time.Duration, allowedDomain string) AuthService {
	return &authService{
		repo:          repo,
		secret:        secret,
		tokenTTL:      tokenTTL,
		allowedDomain: allowedDomain,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	if !strings.HasSuffix(input.Email, "@"+s.allowedDomain) {
		return nil, apperror.New(0, fmt.Sprintf("only @%s emails are allowed", s.allowedDomain), apperror.ErrValidation)
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.New(0, "user already exists", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Role:         entity.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user, "user registered successfully")
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "invalid email or password", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.New(0, "invalid email or password", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user, "login successful")
}

func (s *authService) CurrentUser(ctx context.Context, actor response.Actor) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) buildAuthResponse(user *entity.User, message string) (*dto.AuthResponse, error) {
	token, err := auth.NewToken(s.secret, s.tokenTTL, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message:     message,
		User:        user,
		AccessToken: token,
	}, nil
}
