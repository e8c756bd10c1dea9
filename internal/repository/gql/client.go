package gql

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/version"
	"github.com/machinebox/graphql"
)

// Client is the generic client for making queries to the hookline GraphQL API
type Client struct {
	client *graphql.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for endpoint.  The token may be empty until the user has logged in.
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: &codeCapturingTransport{next: http.DefaultTransport},
	}

	client := graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient))
	client.Log = func(s string) {
		log.Trace("GraphQL client", "message", s)
	}

	return &Client{
		client: client,
		token:  token,
	}
}

// SetToken replaces the bearer token used for subsequent requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Query runs a query or mutation and decodes the data into result.  Errors, and any
// non-2xx response even when its body decoded cleanly, are resolved into *Error or NetworkError.
func (c *Client) Query(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	req := graphql.NewRequest(query)
	req.Header.Set("User-Agent", version.UserAgent())

	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	for key, value := range variables {
		req.Var(key, value)
	}

	ctx, codes := withCodeCapture(ctx)
	err := c.client.Run(ctx, req, result)
	return resolveError(err, codes.first(), codes.statusCode())
}
