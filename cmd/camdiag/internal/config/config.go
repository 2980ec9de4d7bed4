// Package config loads the optional camdiag.yaml configuration and status
// files for the camdiag CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/diagnostic/pkg/permission"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "camdiag.yaml"

// Defaults applied by Resolve.
const (
	DefaultSDKInt    = 34
	DefaultLogLevel  = "info"
	DefaultLogFormat = "auto"
)

// Config represents the optional camdiag.yaml configuration.
type Config struct {
	Device DeviceConfig `yaml:"device"`
	Log    LogConfig    `yaml:"log"`
}

// DeviceConfig describes the simulated host device.
type DeviceConfig struct {
	SDKInt         int  `yaml:"sdk_int,omitempty"`
	IncludeStorage bool `yaml:"include_storage,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Resolved contains configuration with defaults applied.
type Resolved struct {
	Path           string
	SDKInt         int
	IncludeStorage bool
	LogLevel       string
	LogFormat      string
}

// LoadOptional reads the config file at path if present.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve loads the config at path (if present), applies defaults, and
// validates the result.
func Resolve(path string) (*Resolved, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}

	sdk := cfg.Device.SDKInt
	if sdk == 0 {
		sdk = DefaultSDKInt
	}
	if sdk < 1 {
		return nil, fmt.Errorf("invalid device.sdk_int %d: must be positive", sdk)
	}

	level := strings.TrimSpace(cfg.Log.Level)
	if level == "" {
		level = DefaultLogLevel
	}
	format := strings.TrimSpace(cfg.Log.Format)
	if format == "" {
		format = DefaultLogFormat
	}

	return &Resolved{
		Path:           path,
		SDKInt:         sdk,
		IncludeStorage: cfg.Device.IncludeStorage,
		LogLevel:       level,
		LogFormat:      format,
	}, nil
}

// LoadStatusFile reads a YAML (or JSON) mapping of permission name to status
// name, e.g.
//
//	CAMERA: GRANTED
//	READ_MEDIA_IMAGES: DENIED
//
// Status names are kept verbatim.
func LoadStatusFile(path string) (permission.StatusMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse status file %s: %w", path, err)
	}

	statuses := make(permission.StatusMap, len(raw))
	for id, status := range raw {
		statuses[permission.ID(strings.TrimSpace(id))] = permission.Status(strings.TrimSpace(status))
	}
	return statuses, nil
}

// ParseAssignment parses an "ID=STATUS" flag value.
func ParseAssignment(s string) (permission.ID, permission.Status, error) {
	id, status, ok := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return "", "", fmt.Errorf("invalid assignment %q: expected PERMISSION=STATUS", s)
	}
	return permission.ID(id), permission.Status(strings.TrimSpace(status)), nil
}
