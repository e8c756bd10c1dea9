package models

import (
	"errors"

	"github.com/PizzaHomicide/hookline/internal/repository/gql"
)

const sessionExpiredText = "Your session has expired.  Please sign in again."

// errorText turns an API error into a line fit for the status bar
func errorText(err error) string {
	if err == nil {
		return ""
	}

	var netErr gql.NetworkError
	if errors.As(err, &netErr) {
		return "Unable to reach the server.  Check your connection and try again."
	}

	var apiErr *gql.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case gql.CodeInvalidCredentials:
			return "Invalid email or password."
		case gql.CodeUnauthenticated, gql.CodeForbidden:
			return sessionExpiredText
		case gql.CodeServer:
			return "Something went wrong."
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}

	return err.Error()
}

// sessionExpired reports whether err means the token is no longer accepted
func sessionExpired(err error) bool {
	return errors.Is(err, gql.ErrUnauthenticated)
}
