package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paperdesk/internal/modules/paper/dto"
	service "paperdesk/internal/modules/paper/service"
	"paperdesk/pkg/response"
	"paperdesk/pkg/validator"
)

type PaperHandler struct {
	service       service.PaperService
	maxUploadSize int64
}

func NewPaperHandler(service service.PaperService, maxUploadSize int64) *PaperHandler {
	return &PaperHandler{service: service, maxUploadSize: maxUploadSize}
}

func (h *PaperHandler) List(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter dto.PaperFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	papers, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, papers)
}

func (h *PaperHandler) Get(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paper id"})
		return
	}

	paper, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, paper)
}

func (h *PaperHandler) Create(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CreatePaperInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	upload, err := h.formUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, input, upload)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PaperHandler) Update(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paper id"})
		return
	}

	var input dto.UpdatePaperInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	upload, err := h.formUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actor, id, input, upload)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaperHandler) Delete(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paper id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "paper deleted successfully"})
}

func (h *PaperHandler) FetchPDF(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paper id"})
		return
	}

	name, rc, size, err := h.service.FetchPDF(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", name),
	}
	c.DataFromReader(http.StatusOK, size, "application/pdf", rc, headers)
}

func (h *PaperHandler) MyPapers(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	papers, err := h.service.MyPapers(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, papers)
}

// formUpload pulls the optional "pdf" file out of the multipart form.
func (h *PaperHandler) formUpload(c *gin.Context) (*dto.Upload, error) {
	header, err := c.FormFile("pdf")
	if err != nil {
		// no file attached
		return nil, nil
	}

	if header.Size > h.maxUploadSize {
		return nil, fmt.Errorf("file exceeds the %d byte upload limit", h.maxUploadSize)
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}

	return &dto.Upload{Filename: header.Filename, Reader: f}, nil
}
