package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProfilesPath   string // directory of registry documents + override siblings
	RemoteRegistry string // base URL of a hosted registry, optional

	Port         int // 0 disables the profile server
	Watch        bool
	ValidateOnly bool

	DefaultHandedness string
	StatePath         string // selection persistence file, empty keeps it in memory

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProfilesPath == "" && cfg.RemoteRegistry == "" {
		return nil, errors.New("a profiles directory or a remote registry URL is required")
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 0 and 65535", cfg.Port)
	}
	if cfg.Watch && cfg.ProfilesPath == "" {
		return nil, errors.New("watch mode requires a local profiles directory")
	}
	if cfg.Watch && cfg.Port == 0 {
		return nil, errors.New("watch mode requires the profile server: set a port")
	}
	if cfg.ValidateOnly && cfg.Watch {
		return nil, errors.New("validate-only and watch mode are mutually exclusive")
	}

	return &cfg, nil
}
