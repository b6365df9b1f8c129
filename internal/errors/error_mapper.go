package errors

import (
	"net/http"
	"strings"
)

// Sentinel application errors reused by the service layer.
var (
	// ErrAuthRequired is returned before any store access when an
	// unauthenticated caller attempts a protected mutation, e.g.
	// toggling a favorite while signed out.
	ErrAuthRequired = NewAppError("authentication required", MsgAuthRequired, ErrCodeAuthRequired, http.StatusUnauthorized, nil)

	// ErrNotReviewOwner is returned when a caller tries to delete a
	// review authored by another identity. The operation has no side
	// effect.
	ErrNotReviewOwner = NewAppError("acting identity is not the review author", MsgNotReviewOwner, ErrCodeForbidden, http.StatusForbidden, nil)
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	technicalMessage := err.Error()

	switch {
	case strings.Contains(technicalMessage, "property not found"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgPropertyNotFound,
			Code:             ErrCodePropertyNotFound,
			HTTPStatus:       http.StatusNotFound,
			OriginalError:    err,
		}
	case strings.Contains(technicalMessage, "review not found"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgReviewNotFound,
			Code:             ErrCodeReviewNotFound,
			HTTPStatus:       http.StatusNotFound,
			OriginalError:    err,
		}
	case strings.Contains(technicalMessage, "relay"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgRelayFailed,
			Code:             ErrCodeRelayFailed,
			HTTPStatus:       http.StatusBadGateway,
			OriginalError:    err,
		}
	case strings.Contains(technicalMessage, "database query failed"),
		strings.Contains(technicalMessage, "server selection error"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgServiceUnavailable,
			Code:             ErrCodeServiceUnavailable,
			HTTPStatus:       http.StatusServiceUnavailable,
			OriginalError:    err,
		}
	default:
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgInternalError,
			Code:             "INTERNAL_ERROR",
			HTTPStatus:       http.StatusInternalServerError,
			OriginalError:    err,
		}
	}
}
