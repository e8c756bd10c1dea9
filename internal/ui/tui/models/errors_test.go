package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/PizzaHomicide/hookline/internal/repository/gql"
	"github.com/stretchr/testify/assert"
)

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"network", gql.NetworkError{Err: errors.New("refused")}, "Unable to reach the server.  Check your connection and try again."},
		{"wrapped network", fmt.Errorf("load: %w", gql.NetworkError{Err: errors.New("refused")}), "Unable to reach the server.  Check your connection and try again."},
		{"credentials", &gql.Error{Code: gql.CodeInvalidCredentials, Message: "bad"}, "Invalid email or password."},
		{"forbidden", &gql.Error{Code: gql.CodeForbidden}, sessionExpiredText},
		{"server", &gql.Error{Code: gql.CodeServer, Message: "panic at line 3"}, "Something went wrong."},
		{"other code keeps message", &gql.Error{Code: gql.CodeBadRequest, Message: "Name is too long"}, "Name is too long"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorText(tt.err))
		})
	}
}

func TestSessionExpired(t *testing.T) {
	assert.True(t, sessionExpired(fmt.Errorf("me: %w", &gql.Error{Code: gql.CodeUnauthenticated})))
	assert.False(t, sessionExpired(&gql.Error{Code: gql.CodeBadRequest}))
	assert.False(t, sessionExpired(nil))
}
