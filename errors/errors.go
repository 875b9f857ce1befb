package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// AppError is the error type surfaced to HTTP and CLI callers
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrForbidden(message string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_FORBIDDEN,
		Message:  message,
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrProcessingFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_PROCESSING_FAILED,
		Message:  "Processing failed",
	}
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	}
}

// Meeting Errors
func ErrMeetingNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEETING_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("meeting_id", meetingID)
}

func ErrMeetingBusy(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_MEETING_BUSY,
		Message:  "Meeting is already being processed",
	}.WithDetail("meeting_id", meetingID)
}

func ErrAudioNotFound(path string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_AUDIO_NOT_FOUND,
		Message:  "Audio file not found",
	}.WithDetail("path", path)
}

func ErrUnsupportedAudio(ext string) AppError {
	return AppError{
		HTTPCode: http.StatusUnsupportedMediaType,
		Code:     ErrorCode_AUDIO_UNSUPPORTED_FORMAT,
		Message:  "Audio format not supported",
	}.WithDetail("extension", ext)
}

func ErrAudioTooLarge(maxMB int64) AppError {
	return AppError{
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     ErrorCode_AUDIO_TOO_LARGE,
		Message:  "Audio file exceeds the upload limit",
	}.WithDetail("max_mb", fmt.Sprintf("%d", maxMB))
}

// Export Errors
func ErrExportUnsupportedFormat(format string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_EXPORT_UNSUPPORTED_FORMAT,
		Message:  "Export format not supported",
	}.WithDetail("format", format)
}

func ErrExportFailed(format string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_EXPORT_FAILED,
		Message:  "Failed to export meeting",
	}.WithDetail("format", format)
}

// AI Errors
func ErrAITranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_AI_TRANSCRIPTION_FAILED,
		Message:  "Audio transcription failed",
	}
}

func ErrAISummaryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_SUMMARY_FAILED,
		Message:  "Failed to generate minutes",
	}
}

func ErrAIStructuralValidation(err error) AppError {
	appErr := AppError{
		Raw:      err,
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_AI_STRUCTURAL_VALIDATION,
		Message:  "Generated minutes failed structural validation",
	}
	var se *entities.StructuralError
	if stderrors.As(err, &se) {
		appErr = appErr.WithDetail("field", se.Field).
			WithDetail("index", fmt.Sprintf("%d", se.Index))
	}
	return appErr
}

func ErrAIServiceUnavailable(service string) AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_AI_SERVICE_UNAVAILABLE,
		Message:  "AI service temporarily unavailable",
	}.WithDetail("service", service)
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:  fmt.Sprintf("Cache operation failed: %s", operation),
	}
}

// Database Errors
func ErrDBConnectionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_CONNECTION_FAILED,
		Message:  "Database connection failed",
	}
}

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}

// HTTPStatusOK represents a successful HTTP response.
func HTTPStatusOK(message string) AppError {
	return AppError{
		HTTPCode: http.StatusOK,
		Code:     ErrorCode_HTTP_OK,
		Message:  message,
	}
}

// FromDomain maps domain sentinel errors onto their application error
func FromDomain(err error) AppError {
	var appErr AppError
	switch {
	case err == nil:
		return HTTPStatusOK("OK")
	case stderrors.As(err, &appErr):
		return appErr
	case stderrors.Is(err, entities.ErrMeetingNotFound):
		return AppError{Raw: err, HTTPCode: http.StatusNotFound, Code: ErrorCode_MEETING_NOT_FOUND, Message: "Meeting not found"}
	case stderrors.Is(err, entities.ErrMeetingBusy):
		return AppError{Raw: err, HTTPCode: http.StatusConflict, Code: ErrorCode_MEETING_BUSY, Message: "Meeting is already being processed"}
	case stderrors.Is(err, entities.ErrAudioNotFound):
		return AppError{Raw: err, HTTPCode: http.StatusNotFound, Code: ErrorCode_AUDIO_NOT_FOUND, Message: "Audio file not found"}
	case stderrors.Is(err, entities.ErrUnsupportedAudio):
		return AppError{Raw: err, HTTPCode: http.StatusUnsupportedMediaType, Code: ErrorCode_AUDIO_UNSUPPORTED_FORMAT, Message: "Audio format not supported"}
	case stderrors.Is(err, entities.ErrAudioTooLarge):
		return AppError{Raw: err, HTTPCode: http.StatusRequestEntityTooLarge, Code: ErrorCode_AUDIO_TOO_LARGE, Message: "Audio file exceeds the upload limit"}
	case stderrors.Is(err, entities.ErrStructuralValidation):
		return ErrAIStructuralValidation(err)
	case stderrors.Is(err, entities.ErrInvalidMeeting),
		stderrors.Is(err, entities.ErrEmptySegmentText),
		stderrors.Is(err, entities.ErrInvalidSegmentRange):
		return AppError{Raw: err, HTTPCode: http.StatusBadRequest, Code: ErrorCode_INVALID_ARGUMENT, Message: err.Error()}
	default:
		return ErrInternal(err)
	}
}
