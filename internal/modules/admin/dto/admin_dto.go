package dto

import "paperdesk/internal/entity"

type UpdateRoleInput struct {
	Role string `json:"role" binding:"required"`
}

type MessageUserResponse struct {
	Message string       `json:"message"`
	User    *entity.User `json:"user"`
}
