package dto

import "paperdesk/internal/entity"

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Message     string       `json:"message"`
	User        *entity.User `json:"user"`
	AccessToken string       `json:"access_token"`
}
