package dto

import "paperdesk/internal/entity"

type ReviewInput struct {
	Action  string `json:"action" binding:"required,oneof=approve reject"`
	Comment string `json:"comment"`
}

type ApprovalResponse struct {
	*entity.ApprovalRequest
	UserName string `json:"user_name"`
}

type MessageApprovalResponse struct {
	Message string           `json:"message"`
	Request ApprovalResponse `json:"request"`
}

func NewApprovalResponse(r *entity.ApprovalRequest) ApprovalResponse {
	return ApprovalResponse{ApprovalRequest: r, UserName: r.RequesterName()}
}

func NewApprovalResponses(requests []*entity.ApprovalRequest) []ApprovalResponse {
	out := make([]ApprovalResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, NewApprovalResponse(r))
	}
	return out
}
