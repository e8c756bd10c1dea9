package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const appName = "hookline"

// Config represents the application configuration
type Config struct {
	Auth     AuthConfig     `yaml:"auth,omitempty"`
	API      APIConfig      `yaml:"api,omitempty"`
	Player   PlayerConfig   `yaml:"player,omitempty"`
	Download DownloadConfig `yaml:"download,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// AuthConfig contains authentication settings
type AuthConfig struct {
	Token string `yaml:"token,omitempty"`
}

// APIConfig points at the backend services
type APIConfig struct {
	GraphQLEndpoint string        `yaml:"graphql_endpoint,omitempty"`
	MediaEndpoint   string        `yaml:"media_endpoint,omitempty"`
	Timeout         time.Duration `yaml:"timeout,omitempty"`
}

// PlayerConfig contains media engine settings
type PlayerConfig struct {
	Type             string        `yaml:"type,omitempty"` // "mpv", "fake"
	Path             string        `yaml:"path,omitempty"`
	Args             string        `yaml:"args,omitempty"`
	ProgressInterval time.Duration `yaml:"progress_interval,omitempty"`
}

// DownloadConfig contains settings for downloading generated speeches
type DownloadConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// LoggingConfig contains log related settings
type LoggingConfig struct {
	Level    string `yaml:"level,omitempty"`
	FilePath string `yaml:"file_path,omitempty"`
}

// Load builds a configuration struct from multiple sources using these steps:
// 1. Create a base config with default values
// 2. If no config file exists on disk, save the default config to that location
// 3. Apply 'dynamic' properties, which are determined at runtime (log file and download locations)
// 4. Load & merge the config file, overwriting any defaults with user-specified values
// 5. Load a .env file from the working directory if there is one
// 6. Apply environment variable overrides
func Load() (*Config, error) {
	cfg := createBaseDefaultConfig()

	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("unable to determine config file path: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		// Still start with the defaults if the default file can't be written.
		_ = save(cfg, configPath)
	}

	applyDynamicDefaults(cfg)

	fileConfig, err := loadFromDisk(configPath)
	if err != nil {
		return nil, err
	}
	if err = mergo.Merge(cfg, fileConfig, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging config loaded from disk: %w", err)
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	applyEnvVarOverrides(cfg)

	return cfg, nil
}

// applyDynamicDefaults sets runtime-determined default values.  These are never written to the config file.
func applyDynamicDefaults(cfg *Config) {
	cfg.Logging.FilePath = defaultLogFilePath()
	cfg.Download.Dir = defaultDownloadDir()
}

// loadFromDisk loads the YAML config from disk and returns the unmarshalled Config
func loadFromDisk(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	return cfg, nil
}

func save(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// UpdateConfig reads the config file, applies the update function, and saves it back to disk.
// Env overrides and dynamic defaults are not involved, so they never leak into the file.
func UpdateConfig(updateFn func(*Config)) error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("unable to determine config file path: %w", err)
	}

	cfg, err := loadFromDisk(configPath)
	if err != nil {
		return fmt.Errorf("error loading config file from disk: %w", err)
	}

	updateFn(cfg)

	return save(cfg, configPath)
}

// Path returns the location of the config file
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file.  Uses the environment variable override if present, else the
// OS config location.
func getConfigPath() (string, error) {
	if configPath := os.Getenv("HOOKLINE_CONFIG_PATH"); configPath != "" {
		return configPath, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, appName, "config.yaml"), nil
}

func createBaseDefaultConfig() *Config {
	return &Config{
		Auth: AuthConfig{},
		API: APIConfig{
			GraphQLEndpoint: "https://api.hookline.app/graphql",
			MediaEndpoint:   "https://media.hookline.app",
			Timeout:         30 * time.Second,
		},
		Player: PlayerConfig{
			Type:             "mpv",
			Path:             "mpv",
			ProgressInterval: 50 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// defaultLogFilePath returns the path to the log file, following OS conventions.
func defaultLogFilePath() string {
	var basePath string
	homedir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", appName+".log")
	}

	switch runtime.GOOS {
	case "windows":
		// %LOCALAPPDATA%\hookline\logs
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			basePath = filepath.Join(appData, appName, "logs")
		} else {
			basePath = filepath.Join(homedir, "AppData", "Local", appName, "logs")
		}
	case "darwin":
		basePath = filepath.Join(homedir, "Library", "Logs", appName)
	default:
		if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
			basePath = filepath.Join(xdgState, appName, "logs")
		} else {
			basePath = filepath.Join(homedir, ".local", "state", appName, "logs")
		}
	}

	if err := os.MkdirAll(basePath, 0700); err != nil {
		return filepath.Join(".", appName+".log")
	}
	return filepath.Join(basePath, appName+".log")
}

// defaultDownloadDir is ~/Downloads, or the working directory when there is no home directory.
func defaultDownloadDir() string {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homedir, "Downloads")
}

// TokenStore persists the auth token to the config file and mirrors it into a loaded Config
type TokenStore struct {
	cfg *Config
}

func NewTokenStore(cfg *Config) *TokenStore {
	return &TokenStore{cfg: cfg}
}

// SaveToken writes token to the config file.  An empty token logs the user out.
func (s *TokenStore) SaveToken(token string) error {
	if err := UpdateConfig(func(c *Config) {
		c.Auth.Token = token
	}); err != nil {
		return fmt.Errorf("failed to save auth token: %w", err)
	}
	if s.cfg != nil {
		s.cfg.Auth.Token = token
	}
	return nil
}
