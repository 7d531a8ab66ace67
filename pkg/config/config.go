package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Name         string        `json:"name"`
	OpenAIAPIKey string        `json:"openai_api_key"`
	DataDir      string        `json:"data_dir"`
	TemplatePath string        `json:"template_path"`
	Models       ModelsConfig  `json:"models,omitempty"`
	Defaults     DefaultConfig `json:"defaults"`
}

// ModelsConfig holds model selection for content picking.
type ModelsConfig struct {
	Selection string `json:"selection,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
}

// GetSelectionModel returns the selection model or default if not specified.
func (c *Config) GetSelectionModel() (model string) {
	if c.Models.Selection != "" {
		model = c.Models.Selection
		return model
	}
	model = "gpt-5.1"
	return model
}

// JobsPath returns the location of the jobs catalog.
func (c *Config) JobsPath() (path string) {
	path = filepath.Join(c.DataDir, "jobs.json")
	return path
}

// ProjectsPath returns the location of the projects catalog.
func (c *Config) ProjectsPath() (path string) {
	path = filepath.Join(c.DataDir, "projects.json")
	return path
}

// PersonalPath returns the location of the personal record.
func (c *Config) PersonalPath() (path string) {
	path = filepath.Join(c.DataDir, "personal.json")
	return path
}

// Load reads configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return cfg, err
		}
		path = filepath.Join(homeDir, ".resume-builder", "config.json")
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'resume-builder init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Parse JSON
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	// Override with environment variable if set
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAIAPIKey = apiKey
	}

	// Validate required fields
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	if c.Name == "" {
		err = errors.New("name is required in config")
		return err
	}

	if c.OpenAIAPIKey == "" {
		err = errors.New("openai_api_key is required (set in config or OPENAI_API_KEY env var)")
		return err
	}

	if c.DataDir == "" {
		err = errors.New("data_dir is required in config")
		return err
	}

	// Check data directory exists
	_, err = os.Stat(c.DataDir)
	if os.IsNotExist(err) {
		err = errors.Errorf("data directory not found: %s", c.DataDir)
		return err
	}

	if c.TemplatePath == "" {
		err = errors.New("template_path is required in config")
		return err
	}

	// Set default output_dir if not specified
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "./applications"
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		path = filepath.Join(homeDir, ".resume-builder", "config.json")
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	// Create default config
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return err
	}

	defaultConfig := Config{
		Name:         "your-name",
		OpenAIAPIKey: "sk-...",
		DataDir:      filepath.Join(homeDir, ".resume-builder", "data"),
		TemplatePath: filepath.Join(homeDir, ".resume-builder", "resume-template.tex"),
		Defaults: DefaultConfig{
			OutputDir: filepath.Join(homeDir, "Documents", "Applications"),
		},
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
