package config

import (
	"fmt"
	"time"
)

// EnvProduction enables static bundle hosting and JSON logs.
const EnvProduction = "production"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	Port              int           `mapstructure:"port" yaml:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	AllowedOrigin     string        `mapstructure:"allowed_origin" yaml:"allowed_origin"`
	Env               string        `mapstructure:"env" yaml:"env"`
	StaticDir         string        `mapstructure:"static_dir" yaml:"static_dir"`
	MaxMessageBytes   int64         `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	ClientBuffer      int           `mapstructure:"client_buffer" yaml:"client_buffer"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":4001",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		AllowedOrigin:     "*",
		Env:               "development",
		StaticDir:         "build",
		MaxMessageBytes:   1 << 20,
		ClientBuffer:      256,
		LogLevel:          "info",
	}
}

// ListenAddr returns the address the HTTP server binds to. A non-zero Port wins over Addr.
func (c *Config) ListenAddr() string {
	if c.Port != 0 {
		return fmt.Sprintf(":%d", c.Port)
	}
	return c.Addr
}

// Production reports whether the server runs in production mode.
func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
		c.Port = 0
	}
	if other.Port != 0 {
		c.Port = other.Port
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.AllowedOrigin != "" {
		c.AllowedOrigin = other.AllowedOrigin
	}
	if other.Env != "" {
		c.Env = other.Env
	}
	if other.StaticDir != "" {
		c.StaticDir = other.StaticDir
	}
	if other.MaxMessageBytes != 0 {
		c.MaxMessageBytes = other.MaxMessageBytes
	}
	if other.ClientBuffer != 0 {
		c.ClientBuffer = other.ClientBuffer
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}
