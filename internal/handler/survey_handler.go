package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ospteam/osp-backend/internal/model"
	"github.com/ospteam/osp-backend/internal/response"
	"github.com/ospteam/osp-backend/internal/service"
	"github.com/ospteam/osp-backend/internal/validator"
)

// SurveyHandler handles survey lifecycle endpoints.
type SurveyHandler struct {
	surveyService *service.SurveyService
}

// NewSurveyHandler creates a new SurveyHandler.
func NewSurveyHandler(surveyService *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// CreateSurvey godoc
// POST /api/v1/admin/surveys
// Creates a new survey with its question list and a fresh public token.
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req model.CreateSurveyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	survey, err := h.surveyService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			response.Fail(c, http.StatusBadRequest, response.ErrMissingFields)
		case errors.Is(err, service.ErrInvalidQuestionSpec):
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidSpec, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Survey created successfully",
		"survey":  survey,
	})
}

// UpdateSurvey godoc
// PUT /api/v1/admin/surveys/:id
// Updates a survey's title and/or replaces its question list.
func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateSurveyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	survey, err := h.surveyService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsProvided):
			response.Fail(c, http.StatusBadRequest, response.ErrNoFieldsProvided)
		case errors.Is(err, service.ErrEmptyQuestions):
			response.Fail(c, http.StatusBadRequest, response.ErrQuestionsEmpty)
		case errors.Is(err, service.ErrMissingFields):
			response.Fail(c, http.StatusBadRequest, response.ErrMissingFields)
		case errors.Is(err, service.ErrInvalidQuestionSpec):
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidSpec, err.Error())
		case errors.Is(err, service.ErrSurveyNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrSurveyNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Survey updated successfully",
		"survey":  survey,
	})
}

// DeleteSurvey godoc
// DELETE /api/v1/admin/surveys/:id
// Deletes a survey and echoes the removed record.
func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	survey, err := h.surveyService.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSurveyNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Survey deleted successfully",
		"survey":  survey,
	})
}

// ListSurveys godoc
// GET /api/v1/admin/surveys
// Lists surveys with pagination, newest first.
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	surveys, pagination, err := h.surveyService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"surveys": surveys}, pagination)
}

// GetSurveyByToken godoc
// GET /api/v1/surveys/:token
// Participant-facing lookup by public token. No credential required.
func (h *SurveyHandler) GetSurveyByToken(c *gin.Context) {
	survey, err := h.surveyService.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSurveyNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"survey": survey})
}
