package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"thingsd/internal/common/fsutil"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are filled from Defaults by Merge.
type Config struct {
	Addr                   string   `json:"addr" yaml:"addr" toml:"addr" koanf:"addr" validate:"required"`
	MaxBodyBytes           int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" koanf:"max_body_bytes" validate:"gte=0"`
	ActionTimeoutSeconds   int64    `json:"action_timeout_seconds" yaml:"action_timeout_seconds" toml:"action_timeout_seconds" koanf:"action_timeout_seconds" validate:"gte=0"`
	ShutdownTimeoutSeconds int64    `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds" toml:"shutdown_timeout_seconds" koanf:"shutdown_timeout_seconds" validate:"gt=0"`
	LogLevel               string   `json:"log_level" yaml:"log_level" toml:"log_level" koanf:"log_level" validate:"omitempty,oneof=off error info debug"`
	LogFormat              string   `json:"log_format" yaml:"log_format" toml:"log_format" koanf:"log_format" validate:"omitempty,oneof=json console"`
	CORSEnabled            bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled" koanf:"cors_enabled"`
	TraceExporter          string   `json:"trace_exporter" yaml:"trace_exporter" toml:"trace_exporter" koanf:"trace_exporter" validate:"omitempty,oneof=none stdout"`
	CORSOrigins            []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" koanf:"cors_origins" validate:"required_if=CORSEnabled true"`
}

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		Addr:                   ":8000",
		MaxBodyBytes:           1 << 20,
		ShutdownTimeoutSeconds: 5,
		LogLevel:               "info",
		LogFormat:              "json",
		TraceExporter:          "none",
	}
}

// Merge returns c with every non-zero field of o applied on top.
func (c Config) Merge(o Config) Config {
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	if o.MaxBodyBytes != 0 {
		c.MaxBodyBytes = o.MaxBodyBytes
	}
	if o.ActionTimeoutSeconds != 0 {
		c.ActionTimeoutSeconds = o.ActionTimeoutSeconds
	}
	if o.ShutdownTimeoutSeconds != 0 {
		c.ShutdownTimeoutSeconds = o.ShutdownTimeoutSeconds
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.TraceExporter != "" {
		c.TraceExporter = o.TraceExporter
	}
	if o.CORSEnabled {
		c.CORSEnabled = true
	}
	if len(o.CORSOrigins) > 0 {
		c.CORSOrigins = append([]string(nil), o.CORSOrigins...)
	}
	return c
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. A leading ~ is expanded.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
