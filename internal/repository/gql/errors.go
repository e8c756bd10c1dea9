package gql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrorCode is the machine readable code the API attaches to its errors
type ErrorCode string

const (
	CodeUnknown                ErrorCode = "UNKNOWN_ERROR"
	CodeServer                 ErrorCode = "SERVER_ERROR"
	CodeBadRequest             ErrorCode = "BAD_REQUEST"
	CodeInvalidCredentials     ErrorCode = "INVALID_CREDENTIALS"
	CodeForbidden              ErrorCode = "FORBIDDEN"
	CodeUnauthenticated        ErrorCode = "UNAUTHENTICATED"
	CodePreconditionRequired   ErrorCode = "PRECONDITION_REQUIRED"
	CodeUserCompletionNotGuest ErrorCode = "USER_COMPLETION_NOT_GUEST"
)

// knownCodes is ordered so that longer codes sharing a prefix are matched first
var knownCodes = []ErrorCode{
	CodeUserCompletionNotGuest,
	CodePreconditionRequired,
	CodeInvalidCredentials,
	CodeUnauthenticated,
	CodeForbidden,
	CodeBadRequest,
	CodeServer,
}

// ErrUnauthenticated matches any error that means the session is no longer valid and the user must log in again
var ErrUnauthenticated = errors.New("unauthenticated")

// Error is an error reported by the API
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrUnauthenticated) true for both UNAUTHENTICATED and FORBIDDEN
func (e *Error) Is(target error) bool {
	return target == ErrUnauthenticated && (e.Code == CodeUnauthenticated || e.Code == CodeForbidden)
}

// NetworkError means the API could not be reached at all
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

// CodeOf returns the API error code carried by err, or CodeUnknown
func CodeOf(err error) ErrorCode {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return CodeUnknown
}

// resolveError classifies the outcome of a request.  capturedCode is the extensions.code of the first error in the
// response body, if there was one, and status is the HTTP status, or 0 when no response arrived.
func resolveError(err error, capturedCode string, status int) error {
	failedStatus := status != 0 && (status < 200 || status > 299)

	if err == nil {
		if !failedStatus {
			return nil
		}
		code := ErrorCode(capturedCode)
		if code == "" {
			code = codeForStatus(status)
		}
		return &Error{Code: code, Message: fmt.Sprintf("%d %s", status, http.StatusText(status))}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
		return NetworkError{Err: err}
	}

	msg := strings.TrimPrefix(err.Error(), "graphql: ")

	if capturedCode != "" {
		return &Error{Code: ErrorCode(capturedCode), Message: msg, Err: err}
	}

	for _, code := range knownCodes {
		if strings.Contains(msg, string(code)) {
			return &Error{Code: code, Message: msg, Err: err}
		}
	}

	if failedStatus {
		return &Error{Code: codeForStatus(status), Message: msg, Err: err}
	}

	if strings.HasPrefix(err.Error(), "graphql: ") {
		return &Error{Code: CodeServer, Message: msg, Err: err}
	}

	return &Error{Code: CodeUnknown, Message: msg, Err: err}
}

func codeForStatus(status int) ErrorCode {
	switch {
	case status == 400:
		return CodeBadRequest
	case status == 401:
		return CodeUnauthenticated
	case status == 403:
		return CodeForbidden
	case status == 428:
		return CodePreconditionRequired
	case status >= 500:
		return CodeServer
	default:
		return CodeUnknown
	}
}
