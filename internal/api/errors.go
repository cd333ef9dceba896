package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/vaultofgames/vault-server/internal/errors"
)

// APIError is the only error body the API writes: {"message": "..."}.
// It implements huma.StatusError.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Message string `json:"message" doc:"Human-readable error message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler makes huma build every error it generates (request
// validation, missing bodies, gate rejections) as an APIError.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = newAPIError
}

func newAPIError(status int, message string, errs ...error) huma.StatusError {
	for _, err := range errs {
		var mapper domainerrors.StatusMapper
		if errors.As(err, &mapper) {
			return &APIError{status: mapper.HTTPStatus(), Message: mapper.PublicMessage()}
		}
	}

	// Schema violations are client errors like any other validation failure.
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
		if len(errs) > 0 {
			message = detailMessage(errs[0])
		}
	}
	if status >= http.StatusInternalServerError {
		message = domainerrors.InternalMessage
	}

	return &APIError{status: status, Message: message}
}

// detailMessage renders a huma validation detail as "field: problem".
func detailMessage(err error) string {
	var detail *huma.ErrorDetail
	if !errors.As(err, &detail) {
		return err.Error()
	}
	field := strings.TrimPrefix(detail.Location, "body.")
	if field == "" || field == "body" {
		return detail.Message
	}
	return fmt.Sprintf("%s: %s", field, detail.Message)
}

// toAPIError maps any error through its HTTP status. Errors that do not
// know their status become a 500 with a fixed message.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var mapper domainerrors.StatusMapper
	if errors.As(err, &mapper) {
		return &APIError{status: mapper.HTTPStatus(), Message: mapper.PublicMessage()}
	}

	return &APIError{status: http.StatusInternalServerError, Message: domainerrors.InternalMessage}
}

// fail logs err with its operation and returns the client-facing error.
func (s *Server) fail(ctx context.Context, op string, err error) error {
	apiErr := toAPIError(err)
	if apiErr.status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx, "request failed", "operation", op, "status", apiErr.status, "error", err)
	} else {
		s.logger.WarnContext(ctx, "request rejected", "operation", op, "status", apiErr.status, "error", err)
	}
	return apiErr
}
