package config

import "errors"

// Configuration loading errors
var (
	ErrConfigFileRead     = errors.New("failed to read config file")
	ErrConfigUnmarshal    = errors.New("failed to unmarshal config")
	ErrConfigFileNotFound = errors.New("config file not found")
)
