package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/papergen/papergen-backend/internal/middleware"
	"github.com/papergen/papergen-backend/internal/model"
	"github.com/papergen/papergen-backend/internal/repository"
	"github.com/papergen/papergen-backend/internal/response"
	"github.com/papergen/papergen-backend/internal/service"
	"github.com/papergen/papergen-backend/internal/validator"
)

// QuestionHandler handles question bank endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
	mediaService    *service.MediaService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService, mediaService *service.MediaService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, mediaService: mediaService}
}

// List godoc
// GET /api/v1/questions?board_id=&class=&subject_id=&chapter_id=&question_type=&page=&per_page=
func (h *QuestionHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var filter repository.ListFilter
	filter.BoardID, _ = strconv.Atoi(c.Query("board_id"))
	filter.Class, _ = strconv.Atoi(c.Query("class"))
	filter.SubjectID, _ = strconv.Atoi(c.Query("subject_id"))
	filter.ChapterID, _ = strconv.Atoi(c.Query("chapter_id"))
	filter.Type = model.QuestionType(c.Query("question_type"))

	questions, total, err := h.questionService.List(c.Request.Context(),
		claims.UserID, filter, perPage, (page-1)*perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": questions},
		response.NewPagination(page, perPage, total))
}

// UsedSubjects godoc
// GET /api/v1/questions/subjects
func (h *QuestionHandler) UsedSubjects(c *gin.Context) {
	claims := middleware.GetClaims(c)

	ids, err := h.questionService.UsedSubjects(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if ids == nil {
		ids = []int{}
	}
	response.Success(c, http.StatusOK, gin.H{"subject_ids": ids})
}

// UsedChapters godoc
// GET /api/v1/questions/chapters?subject_id=
func (h *QuestionHandler) UsedChapters(c *gin.Context) {
	claims := middleware.GetClaims(c)
	subjectID, _ := strconv.Atoi(c.Query("subject_id"))

	ids, err := h.questionService.UsedChapters(c.Request.Context(), claims.UserID, subjectID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if ids == nil {
		ids = []int{}
	}
	response.Success(c, http.StatusOK, gin.H{"chapter_ids": ids})
}

// Create godoc
// POST /api/v1/questions (multipart: questionImage, optionImages[], answerImage)
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	images, errCode := h.saveImages(c)
	if errCode != "" {
		response.Fail(c, http.StatusBadRequest, errCode)
		return
	}

	claims := middleware.GetClaims(c)
	question, err := h.questionService.Create(c.Request.Context(), &req, images, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// BulkCreate godoc
// POST /api/v1/questions/bulk
func (h *QuestionHandler) BulkCreate(c *gin.Context) {
	var req model.BulkCreateQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	created, err := h.questionService.BulkCreate(c.Request.Context(), req.Questions, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrImportFailed)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"created": created})
}

// Import godoc
// POST /api/v1/questions/import (multipart: "file" xlsx)
func (h *QuestionHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	claims := middleware.GetClaims(c)
	created, err := h.questionService.ImportExcel(c.Request.Context(), file, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrImportFailed)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"created": created})
}

// Update godoc
// PUT /api/v1/questions/:id (multipart, same fields as Create)
func (h *QuestionHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateQuestionRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	images, errCode := h.saveImages(c)
	if errCode != "" {
		response.Fail(c, http.StatusBadRequest, errCode)
		return
	}

	claims := middleware.GetClaims(c)
	question, err := h.questionService.Update(c.Request.Context(), id, claims.UserID, &req, images)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Toggle godoc
// PATCH /api/v1/questions/:id/toggle
func (h *QuestionHandler) Toggle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ToggleQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.questionService.SetActive(c.Request.Context(), id, claims.UserID, req.IsActive); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "question updated successfully"})
}

// Delete godoc
// DELETE /api/v1/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.questionService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "question deleted successfully"})
}

// saveImages stores the optional question, option and answer image files.
// Option images keep their form order, which matches the option order.
func (h *QuestionHandler) saveImages(c *gin.Context) (service.QuestionImages, response.ErrCode) {
	var images service.QuestionImages

	if file, header, err := c.Request.FormFile("questionImage"); err == nil {
		defer file.Close()
		path, err := h.mediaService.SaveUpload(file, header)
		if err != nil {
			return images, uploadErrCode(err)
		}
		images.Question = &path
	}

	if file, header, err := c.Request.FormFile("answerImage"); err == nil {
		defer file.Close()
		path, err := h.mediaService.SaveUpload(file, header)
		if err != nil {
			return images, uploadErrCode(err)
		}
		images.Answer = &path
	}

	form, err := c.MultipartForm()
	if err != nil {
		return images, ""
	}
	for _, header := range form.File["optionImages"] {
		file, err := header.Open()
		if err != nil {
			return images, response.ErrInternal
		}
		path, err := h.mediaService.SaveUpload(file, header)
		file.Close()
		if err != nil {
			return images, uploadErrCode(err)
		}
		p := path
		images.Options = append(images.Options, &p)
	}

	return images, ""
}

func uploadErrCode(err error) response.ErrCode {
	if errors.Is(err, service.ErrUnsupportedFileType) {
		return response.ErrUnsupportedFile
	}
	if errors.Is(err, service.ErrFileTooLarge) {
		return response.ErrFileTooLarge
	}
	return response.ErrInternal
}
