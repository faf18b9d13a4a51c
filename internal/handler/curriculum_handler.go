package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/papergen/papergen-backend/internal/middleware"
	"github.com/papergen/papergen-backend/internal/model"
	"github.com/papergen/papergen-backend/internal/response"
	"github.com/papergen/papergen-backend/internal/service"
	"github.com/papergen/papergen-backend/internal/validator"
)

// CurriculumHandler handles board/subject/chapter endpoints.
type CurriculumHandler struct {
	curriculumService *service.CurriculumService
}

// NewCurriculumHandler creates a new CurriculumHandler.
func NewCurriculumHandler(curriculumService *service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculumService: curriculumService}
}

// ListBoards godoc
// GET /api/v1/boards
func (h *CurriculumHandler) ListBoards(c *gin.Context) {
	boards, err := h.curriculumService.ListBoards(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if boards == nil {
		boards = []model.Board{}
	}

	response.Success(c, http.StatusOK, gin.H{"boards": boards})
}

// CreateBoard godoc
// POST /api/v1/boards
func (h *CurriculumHandler) CreateBoard(c *gin.Context) {
	var req model.CreateBoardRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	board := &model.Board{Name: req.Name, CreatedBy: claims.UserID}
	if err := h.curriculumService.CreateBoard(c.Request.Context(), board); err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"board": board})
}

// ListSubjects godoc
// GET /api/v1/boards/:boardId/subjects
func (h *CurriculumHandler) ListSubjects(c *gin.Context) {
	boardID, err := strconv.Atoi(c.Param("boardId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	subjects, err := h.curriculumService.ListSubjects(c.Request.Context(), boardID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if subjects == nil {
		subjects = []model.Subject{}
	}

	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// CreateSubject godoc
// POST /api/v1/subjects
func (h *CurriculumHandler) CreateSubject(c *gin.Context) {
	var req model.CreateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	subject := &model.Subject{Name: req.Name, BoardID: req.BoardID, CreatedBy: claims.UserID}
	if err := h.curriculumService.CreateSubject(c.Request.Context(), subject); err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"subject": subject})
}

// ListChapters godoc
// GET /api/v1/subjects/:subjectId/chapters
func (h *CurriculumHandler) ListChapters(c *gin.Context) {
	subjectID, err := strconv.Atoi(c.Param("subjectId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	chapters, err := h.curriculumService.ListChapters(c.Request.Context(), subjectID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if chapters == nil {
		chapters = []model.Chapter{}
	}

	response.Success(c, http.StatusOK, gin.H{"chapters": chapters})
}

// CreateChapter godoc
// POST /api/v1/chapters
func (h *CurriculumHandler) CreateChapter(c *gin.Context) {
	var req model.CreateChapterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	chapter := &model.Chapter{Name: req.Name, SubjectID: req.SubjectID, CreatedBy: claims.UserID}
	if err := h.curriculumService.CreateChapter(c.Request.Context(), chapter); err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"chapter": chapter})
}
