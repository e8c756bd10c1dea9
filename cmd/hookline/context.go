package main

import (
	"fmt"
	"sync"

	"github.com/PizzaHomicide/hookline/internal/app"
	"github.com/PizzaHomicide/hookline/internal/config"
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/spf13/cobra"
)

// commandContext loads the config, logger and services once, for whichever command runs
type commandContext struct {
	once     sync.Once
	config   *config.Config
	logger   *log.Logger
	services *app.Services
	err      error
}

func (c *commandContext) ensure() error {
	c.once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.err = fmt.Errorf("failed to load config: %w", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			c.err = fmt.Errorf("invalid config: %w", err)
			return
		}

		logger, err := log.New(log.Config{
			Level:    cfg.Logging.Level,
			FilePath: cfg.Logging.FilePath,
		})
		if err != nil {
			c.err = fmt.Errorf("failed to initialise logger: %w", err)
			return
		}
		log.SetDefaultLogger(logger)

		services, err := app.New(cfg)
		if err != nil {
			logger.Close()
			c.err = err
			return
		}

		c.config = cfg
		c.logger = logger
		c.services = services
	})
	return c.err
}

func (c *commandContext) close() {
	if c.logger != nil {
		c.logger.Close()
	}
}

// requireSignIn fails early for commands that need a session
func (c *commandContext) requireSignIn() error {
	if !c.services.SignedIn() {
		return fmt.Errorf("not signed in, run 'hookline login' first")
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
