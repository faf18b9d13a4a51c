package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/papergen/papergen-backend/internal/middleware"
	"github.com/papergen/papergen-backend/internal/model"
	"github.com/papergen/papergen-backend/internal/response"
	"github.com/papergen/papergen-backend/internal/service"
	"github.com/papergen/papergen-backend/internal/validator"
	"github.com/rs/zerolog"
)

// PaperHandler handles paper generation and management endpoints.
type PaperHandler struct {
	paperService *service.PaperService
	log          zerolog.Logger
}

// NewPaperHandler creates a new PaperHandler.
func NewPaperHandler(paperService *service.PaperService, log zerolog.Logger) *PaperHandler {
	return &PaperHandler{
		paperService: paperService,
		log:          log.With().Str("component", "paper_handler").Logger(),
	}
}

// Generate godoc
// POST /api/v1/papers/generate
// Selects questions, persists the paper, and streams the rendered PDF.
func (h *PaperHandler) Generate(c *gin.Context) {
	var req model.GeneratePaperRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	paper, entries, err := h.paperService.Generate(c.Request.Context(), &req, claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("paper generation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrPaperGeneration)
		return
	}

	buf, err := h.paperService.Render(paper, entries, req.IncludeAnswers)
	if err != nil {
		h.log.Error().Err(err).Int("paper_id", paper.ID).Msg("paper render failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrPaperGeneration)
		return
	}

	h.streamPDF(c, buf.Bytes(), service.Filename(req.IncludeAnswers))
}

// GenerateOnly godoc
// POST /api/v1/papers/generate-only
// Selects questions and streams a PDF without persisting anything.
func (h *PaperHandler) GenerateOnly(c *gin.Context) {
	var req model.GeneratePaperRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	paper, entries, err := h.paperService.GenerateEphemeral(c.Request.Context(), &req, claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("paper generation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrPaperGeneration)
		return
	}

	buf, err := h.paperService.Render(paper, entries, req.IncludeAnswers)
	if err != nil {
		h.log.Error().Err(err).Msg("paper render failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrPaperGeneration)
		return
	}

	h.streamPDF(c, buf.Bytes(), service.Filename(req.IncludeAnswers))
}

// Download godoc
// GET /api/v1/papers/:id/download?include_answers=true
// Re-renders a persisted paper from its stored question links.
func (h *PaperHandler) Download(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	includeAnswers := c.Query("include_answers") == "true"

	claims := middleware.GetClaims(c)
	buf, filename, err := h.paperService.Download(c.Request.Context(), id, claims.UserID, includeAnswers)
	if err != nil {
		if errors.Is(err, service.ErrPaperNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrPaperNotFound)
			return
		}
		h.log.Error().Err(err).Int("paper_id", id).Msg("paper download failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrPaperGeneration)
		return
	}

	h.streamPDF(c, buf.Bytes(), filename)
}

// List godoc
// GET /api/v1/papers?page=&per_page=
func (h *PaperHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	papers, total, err := h.paperService.List(c.Request.Context(), claims.UserID, perPage, (page-1)*perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if papers == nil {
		papers = []model.Paper{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"papers": papers},
		response.NewPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/papers/:id
func (h *PaperHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	claims := middleware.GetClaims(c)
	paper, err := h.paperService.Get(c.Request.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrPaperNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrPaperNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paper": paper})
}

// Update godoc
// PUT /api/v1/papers/:id
func (h *PaperHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdatePaperRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	paper, err := h.paperService.Update(c.Request.Context(), id, claims.UserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrPaperNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrPaperNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paper": paper})
}

// Delete godoc
// DELETE /api/v1/papers/:id
func (h *PaperHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.paperService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, service.ErrPaperNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrPaperNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "paper deleted successfully"})
}

// streamPDF writes a fully rendered document as an attachment.
func (h *PaperHandler) streamPDF(c *gin.Context, data []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
