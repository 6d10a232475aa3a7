package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ospteam/osp-backend/internal/model"
	"github.com/ospteam/osp-backend/internal/response"
	"github.com/ospteam/osp-backend/internal/service"
	"github.com/ospteam/osp-backend/internal/validator"
)

// ResponseHandler handles submission and response listing endpoints.
type ResponseHandler struct {
	responseService *service.ResponseService
}

// NewResponseHandler creates a new ResponseHandler.
func NewResponseHandler(responseService *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseService: responseService}
}

// SubmitResponse godoc
// POST /api/v1/surveys/:token/responses
// Validates a participant's answer set against the survey's questions and
// persists it if every answer passes.
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	var req model.SubmitResponseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.responseService.Submit(c.Request.Context(), c.Param("token"), &req)
	if err != nil {
		var invalidQuestion *service.InvalidQuestionError
		var violation *service.ConstraintViolation
		switch {
		case errors.Is(err, service.ErrMissingToken):
			response.Fail(c, http.StatusBadRequest, response.ErrTokenRequired)
		case errors.Is(err, service.ErrMissingAnswers):
			response.Fail(c, http.StatusBadRequest, response.ErrAnswersRequired)
		case errors.Is(err, service.ErrSurveyNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrSurveyNotFound)
		case errors.Is(err, service.ErrAnswerCountMismatch):
			response.Fail(c, http.StatusBadRequest, response.ErrAnswerCountMismatch)
		case errors.As(err, &invalidQuestion):
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidQuestionID, invalidQuestion.Error())
		case errors.As(err, &violation):
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidAnswer, violation.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":  "Response submitted successfully",
		"response": resp,
	})
}

// GetResponsesBySurveyID godoc
// GET /api/v1/admin/surveys/:id/responses
// Lists all responses submitted to a survey.
func (h *ResponseHandler) GetResponsesBySurveyID(c *gin.Context) {
	surveyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	responses, err := h.responseService.ListBySurvey(c.Request.Context(), surveyID)
	if err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSurveyNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":   "Responses fetched successfully",
		"responses": responses,
	})
}
