package gql

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
)

// machinebox/graphql only surfaces the message of the first error and never looks at the HTTP status, so the
// transport peeks at the response to recover the status and extensions.code, the way the web client reads them.

type codeCaptureKey struct{}

type capturedCodes struct {
	mu     sync.Mutex
	status int
	codes  []string
}

func (c *capturedCodes) first() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.codes) == 0 {
		return ""
	}
	return c.codes[0]
}

// statusCode is the HTTP status of the response, or 0 if none arrived
func (c *capturedCodes) statusCode() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func withCodeCapture(ctx context.Context) (context.Context, *capturedCodes) {
	codes := &capturedCodes{}
	return context.WithValue(ctx, codeCaptureKey{}, codes), codes
}

type codeCapturingTransport struct {
	next http.RoundTripper
}

func (t *codeCapturingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	codes, ok := req.Context().Value(codeCaptureKey{}).(*capturedCodes)
	if !ok {
		return resp, nil
	}

	codes.mu.Lock()
	codes.status = resp.StatusCode
	codes.mu.Unlock()

	if resp.Body == nil {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	var envelope struct {
		Errors []struct {
			Extensions struct {
				Code string `json:"code"`
			} `json:"extensions"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		codes.mu.Lock()
		for _, e := range envelope.Errors {
			if e.Extensions.Code != "" {
				codes.codes = append(codes.codes, e.Extensions.Code)
			}
		}
		codes.mu.Unlock()
	}

	return resp, nil
}
