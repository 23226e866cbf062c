// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Notification service specific errors
var (
	ErrNoticeStorage      = errors.New("notice storage failed")
	ErrMissingUserContext = errors.New("missing user context")
)

// Error codes
const (
	CodeNoticeStorage      = "NOTICE_STORAGE_FAILED"
	CodeMissingUserContext = "MISSING_USER_CONTEXT"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleServiceError handles service errors and returns appropriate HTTP responses
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrNoticeStorage):
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    CodeNoticeStorage,
			Message: "Could not load notifications",
			Details: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
			Details: err.Error(),
		})
	}
}

// HandleUserContextError handles user context errors with 400 Bad Request
func HandleUserContextError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeMissingUserContext,
		Message: message,
		Details: message,
	})
}
