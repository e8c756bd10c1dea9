package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// EnvVar documents a supported environment variable override
type EnvVar struct {
	Name  string
	Desc  string
	apply func(*Config, string) error
}

var supportedEnvVars = []EnvVar{
	{
		// Handled before the config is loaded, listed for documentation.
		Name:  "HOOKLINE_CONFIG_PATH",
		Desc:  "Sets the path to the config file.  Default: OS-specific config directory",
		apply: func(c *Config, s string) error { return nil },
	},
	{
		Name:  "HOOKLINE_CONFIG_AUTH_TOKEN",
		Desc:  "Sets the session token.  Default: None",
		apply: func(c *Config, s string) error { c.Auth.Token = s; return nil },
	},
	{
		Name:  "HOOKLINE_CONFIG_API_GRAPHQL_ENDPOINT",
		Desc:  "Sets the GraphQL API endpoint",
		apply: func(c *Config, s string) error { c.API.GraphQLEndpoint = s; return nil },
	},
	{
		Name:  "HOOKLINE_CONFIG_API_MEDIA_ENDPOINT",
		Desc:  "Sets the base URL that serves speeches and voice samples",
		apply: func(c *Config, s string) error { c.API.MediaEndpoint = s; return nil },
	},
	{
		Name:  "HOOKLINE_CONFIG_API_TIMEOUT",
		Desc:  "Sets the request timeout, e.g. 30s.  Default: 30s",
		apply: func(c *Config, s string) error { return setDuration(&c.API.Timeout, s) },
	},
	{
		Name:  "HOOKLINE_CONFIG_PLAYER_TYPE",
		Desc:  "Sets the media engine.  One of `mpv` or `fake`.  Default: mpv",
		apply: func(c *Config, s string) error { c.Player.Type = s; return nil },
	},
	{
		Name:  "HOOKLINE_CONFIG_PLAYER_PATH",
		Desc:  "Sets the path to the mpv binary.  Default: mpv",
		apply: func(c *Config, s string) error { c.Player.Path = s; return nil },
	},
	{
		Name:  "HOOKLINE_CONFIG_PLAYER_ARGS",
		Desc:  "Sets extra arguments passed to mpv.  Default: None",
		apply: func(c *Config, s string) error { c.Player.Args = s; return nil },
	},
	{
		Name:  "HOOKLINE_CONFIG_PLAYER_PROGRESS_INTERVAL",
		Desc:  "Sets how often playback progress is polled, e.g. 50ms.  Default: 50ms",
		apply: func(c *Config, s string) error { return setDuration(&c.Player.ProgressInterval, s) },
	},
	{
		Name:  "HOOKLINE_CONFIG_DOWNLOAD_DIR",
		Desc:  "Sets the directory speeches are downloaded into.  Default: ~/Downloads",
		apply: func(c *Config, s string) error { c.Download.Dir = s; return nil },
	},
	{
		Name:  "HOOKLINE_CONFIG_LOGGING_LEVEL",
		Desc:  "Sets the logging level.  One of: trace, debug, info, warn, error.  Default: info",
		apply: func(c *Config, s string) error { c.Logging.Level = s; return nil },
	},
	{
		Name:  "HOOKLINE_CONFIG_LOGGING_FILE_PATH",
		Desc:  "Sets the logging file path.  Default: OS-specific",
		apply: func(c *Config, s string) error { c.Logging.FilePath = s; return nil },
	},
}

// SupportedEnvVars returns the documented environment variable overrides
func SupportedEnvVars() []EnvVar {
	return supportedEnvVars
}

// applyEnvVarOverrides applies any set env vars.  Unparseable values are ignored so a typo can't stop startup;
// Validate catches the cases that matter.
func applyEnvVarOverrides(c *Config) {
	for _, envVar := range supportedEnvVars {
		if value := os.Getenv(envVar.Name); value != "" {
			if err := envVar.apply(c, value); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "ignoring %s: %v\n", envVar.Name, err)
			}
		}
	}
}

// loadDotEnv reads .env from the working directory.  Variables already in the environment win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to load .env file: %w", err)
	}
	return nil
}

func setDuration(target *time.Duration, s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*target = d
	return nil
}
