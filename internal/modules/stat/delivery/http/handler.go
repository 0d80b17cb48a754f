package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	service "paperdesk/internal/modules/stat/service"
	"paperdesk/pkg/response"
)

type StatHandler struct {
	service service.StatService
}

func NewStatHandler(service service.StatService) *StatHandler {
	return &StatHandler{service: service}
}

func (h *StatHandler) Summary(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
