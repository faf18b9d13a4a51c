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

// SchoolHandler handles school profile endpoints.
type SchoolHandler struct {
	schoolService *service.SchoolService
	mediaService  *service.MediaService
}

// NewSchoolHandler creates a new SchoolHandler.
func NewSchoolHandler(schoolService *service.SchoolService, mediaService *service.MediaService) *SchoolHandler {
	return &SchoolHandler{schoolService: schoolService, mediaService: mediaService}
}

// List godoc
// GET /api/v1/schools
func (h *SchoolHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	schools, err := h.schoolService.List(c.Request.Context(), claims.UserID, claims.Role == model.RoleAdmin)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if schools == nil {
		schools = []model.School{}
	}

	response.Success(c, http.StatusOK, gin.H{"schools": schools})
}

// Create godoc
// POST /api/v1/schools (multipart, optional "logo" file)
func (h *SchoolHandler) Create(c *gin.Context) {
	var req model.CreateSchoolRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	logo, errCode := h.saveLogo(c)
	if errCode != "" {
		response.Fail(c, http.StatusBadRequest, errCode)
		return
	}

	claims := middleware.GetClaims(c)
	school := &model.School{
		Name:         req.Name,
		Logo:         logo,
		Address:      req.Address,
		MobileNumber: req.MobileNumber,
		CreatedBy:    claims.UserID,
	}
	if err := h.schoolService.Create(c.Request.Context(), school); err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"school": school})
}

// Update godoc
// PUT /api/v1/schools/:id (multipart, optional "logo" file)
func (h *SchoolHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateSchoolRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	logo, errCode := h.saveLogo(c)
	if errCode != "" {
		response.Fail(c, http.StatusBadRequest, errCode)
		return
	}

	claims := middleware.GetClaims(c)
	school, err := h.schoolService.Update(c.Request.Context(), id, claims.UserID, &req, logo)
	if err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"school": school})
}

// Delete godoc
// DELETE /api/v1/schools/:id
func (h *SchoolHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.schoolService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "school deleted successfully"})
}

// saveLogo stores an optional "logo" form file and returns its URL path.
func (h *SchoolHandler) saveLogo(c *gin.Context) (*string, response.ErrCode) {
	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		return nil, "" // no file attached
	}
	defer file.Close()

	path, err := h.mediaService.SaveUpload(file, header)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			return nil, response.ErrUnsupportedFile
		}
		if errors.Is(err, service.ErrFileTooLarge) {
			return nil, response.ErrFileTooLarge
		}
		return nil, response.ErrInternal
	}
	return &path, ""
}
