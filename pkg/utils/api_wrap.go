package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondAccepted(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusAccepted, APIResponse{
		Status:  "success",
		Code:    http.StatusAccepted,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service sentinels onto the response envelope.
// Anything unrecognised is logged and reported as a 500.
func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Diagnostic session not found")
	case errors.Is(err, ErrTaskNotFound):
		RespondError(c, http.StatusNotFound, "Enrichment task not found")
	case errors.Is(err, ErrStepIncomplete):
		RespondError(c, http.StatusUnprocessableEntity, "Fill in company name, city and state first")
	case errors.Is(err, ErrInvalidTransition):
		RespondError(c, http.StatusConflict, "Action not allowed on the current step")
	case errors.Is(err, ErrResetNotConfirmed):
		RespondError(c, http.StatusBadRequest, "Reset must be confirmed")
	case errors.Is(err, ErrInvalidShareToken):
		RespondError(c, http.StatusBadRequest, "Invalid share link")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrStorageUnavailable):
		logger.Error("storage error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusServiceUnavailable, "Storage unavailable")
	default:
		logger.Error("unhandled service error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
