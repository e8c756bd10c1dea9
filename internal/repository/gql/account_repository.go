package gql

import (
	"context"
	"fmt"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/log"
)

type AccountRepository struct {
	client *Client
}

func NewAccountRepository(client *Client) domain.AccountRepository {
	return &AccountRepository{
		client: client,
	}
}

// Login exchanges credentials for a token.  The token is also set on the client so later calls are authenticated.
func (r *AccountRepository) Login(ctx context.Context, username, password string) (string, error) {
	query := `
        mutation Login($username: String!, $password: String) {
            login(username: $username, password: $password) {
                token
            }
        }
    `

	variables := map[string]interface{}{
		"username": username,
	}
	if password != "" {
		variables["password"] = password
	}

	var response struct {
		Login struct {
			Token string
		}
	}

	if err := r.client.Query(ctx, query, variables, &response); err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	if response.Login.Token == "" {
		return "", &Error{Code: CodeInvalidCredentials, Message: "no token returned"}
	}

	r.client.SetToken(response.Login.Token)
	log.Info("Logged in", "username", username)
	return response.Login.Token, nil
}

func (r *AccountRepository) Me(ctx context.Context) (*domain.User, error) {
	query := `
        query {
            me {
                id
                type
                name
                username
                tokens
            }
        }
    `

	var response struct {
		Me *struct {
			ID       string
			Type     string
			Name     string
			Username string
			Tokens   int
		}
	}

	if err := r.client.Query(ctx, query, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if response.Me == nil {
		return nil, &Error{Code: CodeUnauthenticated, Message: "not signed in", Err: ErrUnauthenticated}
	}

	return &domain.User{
		ID:       response.Me.ID,
		Type:     domain.UserType(response.Me.Type),
		Name:     response.Me.Name,
		Username: response.Me.Username,
		Tokens:   response.Me.Tokens,
	}, nil
}

func (r *AccountRepository) RefreshToken(ctx context.Context) (string, error) {
	query := `
        mutation RefreshToken {
            refreshAccessToken {
                token
            }
        }
    `

	var response struct {
		RefreshAccessToken struct {
			Token string
		} `json:"refreshAccessToken"`
	}

	if err := r.client.Query(ctx, query, nil, &response); err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	r.client.SetToken(response.RefreshAccessToken.Token)
	log.Debug("Refreshed access token")
	return response.RefreshAccessToken.Token, nil
}

func (r *AccountRepository) Complete(ctx context.Context, params domain.CompleteParams) error {
	query := `
        mutation Complete($params: CompleteParams!) {
            complete(params: $params)
        }
    `

	variables := map[string]interface{}{
		"params": params,
	}

	var response struct {
		Complete bool
	}

	if err := r.client.Query(ctx, query, variables, &response); err != nil {
		return fmt.Errorf("failed to complete account: %w", err)
	}
	return nil
}
