package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the values the application cannot run without
func (c *Config) Validate() error {
	var errs []error

	if err := validateEndpoint("api.graphql_endpoint", c.API.GraphQLEndpoint); err != nil {
		errs = append(errs, err)
	}
	if err := validateEndpoint("api.media_endpoint", c.API.MediaEndpoint); err != nil {
		errs = append(errs, err)
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout))
	}
	if c.Player.ProgressInterval <= 0 {
		errs = append(errs, fmt.Errorf("player.progress_interval must be positive, got %s", c.Player.ProgressInterval))
	}

	return errors.Join(errs...)
}

func validateEndpoint(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is empty", name)
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", name, value)
	}
	return nil
}
