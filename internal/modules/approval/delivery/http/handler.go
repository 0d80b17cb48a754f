package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paperdesk/internal/modules/approval/dto"
	service "paperdesk/internal/modules/approval/service"
	"paperdesk/pkg/response"
	"paperdesk/pkg/validator"
)

type ApprovalHandler struct {
	service service.ApprovalService
}

func NewApprovalHandler(service service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{service: service}
}

func (h *ApprovalHandler) List(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	requests, err := h.service.List(c.Request.Context(), actor, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *ApprovalHandler) Review(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var input dto.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Review(c.Request.Context(), actor, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
