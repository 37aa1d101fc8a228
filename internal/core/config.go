package core

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jo-hoe/gocollage/internal/backend/registry"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort        = 8000
	DefaultUploadDir   = "uploads"
	DefaultOrigin      = "http://localhost:5173"
	DefaultMaxBodySize = "64M"
	DefaultRegistryTTL = 24 * time.Hour
)

type NameRegistry struct {
	Type             string        `yaml:"type"`
	ConnectionString string        `yaml:"connectionString"`
	TTL              time.Duration `yaml:"ttl"`
}

type ServiceConfig struct {
	Port           int          `yaml:"port"`
	UploadDir      string       `yaml:"uploadDir"`
	AllowedOrigins []string     `yaml:"allowedOrigins"`
	MaxBodySize    string       `yaml:"maxBodySize"`
	Compression    bool         `yaml:"compression"`
	NameRegistry   NameRegistry `yaml:"nameRegistry"`
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() *ServiceConfig {
	return &ServiceConfig{
		Port:           DefaultPort,
		UploadDir:      DefaultUploadDir,
		AllowedOrigins: []string{DefaultOrigin},
		MaxBodySize:    DefaultMaxBodySize,
		Compression:    true,
		NameRegistry: NameRegistry{
			Type: registry.TypeMemory,
			TTL:  DefaultRegistryTTL,
		},
	}
}

// LoadConfig loads configuration from the specified YAML file.
// Keys missing from the file keep their default values.
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Parse YAML on top of the defaults
	config := DefaultConfig()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return config, nil
}

// Validate ensures all configuration values are usable
func (c *ServiceConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return fmt.Errorf("uploadDir cannot be empty")
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin is required")
	}
	for i, origin := range c.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("allowed origin at index %d is empty", i)
		}
	}
	if c.NameRegistry.Type != "" && !registry.IsSupported(c.NameRegistry.Type) {
		return fmt.Errorf("unsupported name registry type: %s", c.NameRegistry.Type)
	}
	if c.NameRegistry.TTL < 0 {
		return fmt.Errorf("name registry ttl cannot be negative")
	}
	return nil
}
