// Package media builds URLs for the audio served by the media endpoint and downloads speeches.
package media

import (
	"fmt"
	"net/url"
)

// URLs builds media URLs relative to a base endpoint
type URLs struct {
	base *url.URL
}

// NewURLs parses the media endpoint, e.g. https://media.hookline.app
func NewURLs(endpoint string) (*URLs, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid media endpoint %q: %w", endpoint, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid media endpoint %q: missing scheme or host", endpoint)
	}
	return &URLs{base: base}, nil
}

// Speech is the streaming URL of a generated speech
func (u *URLs) Speech(speechID string) string {
	return u.base.JoinPath("speeches", speechID).String()
}

// Sample is the streaming URL of a voice sample
func (u *URLs) Sample(voiceID string) string {
	return u.base.JoinPath("samples", voiceID).String()
}

// Download is the URL that serves a speech as an attachment
func (u *URLs) Download(speechID string) string {
	download := u.base.JoinPath("speeches", speechID)
	download.RawQuery = "download"
	return download.String()
}
