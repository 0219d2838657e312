package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"tutorlink/internal/dto"
	apperrors "tutorlink/internal/errors"
	"tutorlink/internal/platform/telegram"
)

type InitDataValidator interface {
	Validate(raw string) error
}

var (
	errUnauthorized        = errors.New("init data is invalid")
	errUnauthorizedMissing = fmt.Errorf("%w: authorization header is missing", errUnauthorized)
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func writeValidationError(w http.ResponseWriter, r *http.Request, traceID, message string, details ...apperrors.ValidationDetail) {
	writeJSON(w, r, http.StatusBadRequest, dto.ErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

// writeError maps an error from the order flow or the orders service to a
// status code and the common error body.
func writeError(w http.ResponseWriter, r *http.Request, traceID string, err error, notices []string, logger *zap.Logger) {
	resp := dto.ErrorResponse{TraceID: traceID, Notices: notices}
	status := http.StatusInternalServerError

	// A failed remote call keeps its cause for logging only; the client sees
	// a generic failure even when the cause is a 404 or a conflict.
	var ie *apperrors.InternalError
	if errors.As(err, &ie) {
		writeOrdersAPIFailure(w, r, traceID, err, notices, logger)
		return
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		status = http.StatusUnprocessableEntity
		resp.Error = "VALIDATION_ERROR"
		resp.Message = ve.Message
		resp.Details = ve.Details
		writeJSON(w, r, status, resp)
		return
	}

	if pe, ok := apperrors.IsPreconditionError(err); ok {
		status = http.StatusPreconditionRequired
		resp.Error = "PRECONDITION_REQUIRED"
		resp.Message = pe.Message
		writeJSON(w, r, status, resp)
		return
	}

	if errors.Is(err, errUnauthorized) {
		status = http.StatusUnauthorized
		resp.Error = "UNAUTHORIZED"
		resp.Message = err.Error()
		writeJSON(w, r, status, resp)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		status = http.StatusNotFound
		resp.Error = "NOT_FOUND"
		resp.Message = nfe.Message
		writeJSON(w, r, status, resp)
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		status = http.StatusConflict
		resp.Error = "CONFLICT"
		resp.Message = ce.Message
		writeJSON(w, r, status, resp)
		return
	}

	if errors.Is(err, telegram.ErrButtonDisabled) || errors.Is(err, telegram.ErrButtonNotMounted) {
		status = http.StatusConflict
		resp.Error = "BUTTON_UNAVAILABLE"
		resp.Message = err.Error()
		writeJSON(w, r, status, resp)
		return
	}

	if _, ok := apperrors.IsUpstreamError(err); ok {
		writeOrdersAPIFailure(w, r, traceID, err, notices, logger)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	resp.Error = "INTERNAL_ERROR"
	resp.Message = "an unexpected error occurred"
	writeJSON(w, r, status, resp)
}

func writeOrdersAPIFailure(w http.ResponseWriter, r *http.Request, traceID string, err error, notices []string, logger *zap.Logger) {
	logger.Error("orders api failure", zap.Error(err))
	writeJSON(w, r, http.StatusBadGateway, dto.ErrorResponse{
		TraceID: traceID,
		Error:   "ORDERS_API_ERROR",
		Message: "orders service request failed",
		Notices: notices,
	})
}
