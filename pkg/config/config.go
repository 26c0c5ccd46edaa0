package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rubiojr/sieve/pkg/discovery"
	"github.com/rubiojr/sieve/pkg/profiles"
)

//go:embed config.toml.sample
var configTemplate string

const (
	DefaultLocale = "zh"
	DefaultListen = "127.0.0.1:8420"
)

type Config struct {
	DataFile          string            `toml:"data_file"`
	Locale            string            `toml:"locale"`
	Listen            string            `toml:"listen"`
	DynamicCategories bool              `toml:"dynamic_categories"`
	Labels            map[string]string `toml:"labels,omitempty"`
}

func GetDefaultConfig() (*Config, error) {
	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return nil, fmt.Errorf("getting default data directory: %w", err)
	}
	return &Config{
		DataFile: filepath.Join(dataDir, "data.json"),
		Locale:   DefaultLocale,
		Listen:   DefaultListen,
		Labels:   make(map[string]string),
	}, nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.DataFile == "" {
		dataDir, err := GetDefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("getting default data directory: %w", err)
		}
		config.DataFile = filepath.Join(dataDir, "data.json")
	}

	if config.Locale == "" {
		config.Locale = DefaultLocale
	}

	if config.Listen == "" {
		config.Listen = DefaultListen
	}

	if config.Labels == nil {
		config.Labels = make(map[string]string)
	}

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	template, err := c.generateConfigTemplate()
	if err != nil {
		return fmt.Errorf("generating config template: %w", err)
	}
	return os.WriteFile(configPath, []byte(template), 0644)
}

func (c *Config) generateConfigTemplate() (string, error) {
	dataFile := c.DataFile
	if dataFile == "" {
		dataDir, err := GetDefaultDataDir()
		if err != nil {
			return "", fmt.Errorf("getting default data directory: %w", err)
		}
		dataFile = filepath.Join(dataDir, "data.json")
	}

	// Replace the placeholder data_file with the actual path
	template := strings.Replace(configTemplate, "/home/user/.local/share/sieve/data.json", dataFile, 1)
	return template, nil
}

// CategoryLabels returns the default category labels overlaid with the
// configured ones.
func (c *Config) CategoryLabels() discovery.Labels {
	return discovery.Merge(c.Labels)
}

// ProfileMode returns the posts page profile mode selected by
// dynamic_categories.
func (c *Config) ProfileMode() profiles.Mode {
	if c.DynamicCategories {
		return profiles.Dynamic
	}
	return profiles.Static
}

// GetDefaultDataDir returns the default directory holding datasets
func GetDefaultDataDir() (string, error) {
	// Use XDG_DATA_HOME if set, otherwise use ~/.local/share
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	sieveDir := filepath.Join(dataDir, "sieve")

	if err := os.MkdirAll(sieveDir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory %s: %w", sieveDir, err)
	}

	return sieveDir, nil
}

// GetConfigDir returns the configuration directory for sieve
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	sieveConfigDir := filepath.Join(configDir, "sieve")

	if err := os.MkdirAll(sieveConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", sieveConfigDir, err)
	}

	return sieveConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
