package gql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		captured string
		status   int
		want     ErrorCode
	}{
		{"captured code wins", errors.New("graphql: nope"), "INVALID_CREDENTIALS", 200, CodeInvalidCredentials},
		{"captured code beats status", errors.New("graphql: nope"), "PRECONDITION_REQUIRED", 401, CodePreconditionRequired},
		{"code in message", errors.New("graphql: USER_COMPLETION_NOT_GUEST"), "", 200, CodeUserCompletionNotGuest},
		{"unauthorized status", errors.New("graphql: jwt expired"), "", 401, CodeUnauthenticated},
		{"forbidden status", errors.New("graphql: denied"), "", 403, CodeForbidden},
		{"bad request status", errors.New("graphql: bad"), "", 400, CodeBadRequest},
		{"html from a proxy", errors.New("decoding response: invalid character '<' looking for beginning of value"), "", 502, CodeServer},
		{"plain graphql error", errors.New("graphql: something broke"), "", 200, CodeServer},
		{"anything else", errors.New("decoding response: EOF"), "", 200, CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(resolveError(tt.err, tt.captured, tt.status)))
		})
	}
}

func TestResolveFailedStatusWithoutError(t *testing.T) {
	tests := []struct {
		name     string
		captured string
		status   int
		want     ErrorCode
	}{
		{"unauthorized", "", 401, CodeUnauthenticated},
		{"forbidden", "", 403, CodeForbidden},
		{"precondition", "", 428, CodePreconditionRequired},
		{"server", "", 503, CodeServer},
		{"not found", "", 404, CodeUnknown},
		{"captured code", "INVALID_CREDENTIALS", 400, CodeInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := resolveError(nil, tt.captured, tt.status)
			assert.Error(t, err)
			assert.Equal(t, tt.want, CodeOf(err))
		})
	}
}

func TestErrorIsUnauthenticated(t *testing.T) {
	assert.True(t, errors.Is(&Error{Code: CodeUnauthenticated}, ErrUnauthenticated))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", &Error{Code: CodeForbidden}), ErrUnauthenticated))
	assert.False(t, errors.Is(&Error{Code: CodeBadRequest}, ErrUnauthenticated))
}

func TestResolveNil(t *testing.T) {
	assert.NoError(t, resolveError(nil, "", 0))
	assert.NoError(t, resolveError(nil, "", 200))
	assert.NoError(t, resolveError(nil, "", 204))
}
