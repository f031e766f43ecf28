package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DesignPath string // hcl manifest file or directory
	OutputPath string // directory export artifacts land in

	LogFormat   string
	LogLevel    string
	WorkerCount int
	// Strict fails a design whose elaboration leaves unresolved ends at
	// the root. A manifest may override it per design.
	Strict bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DesignPath == "" {
		return nil, errors.New("DesignPath is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	return &cfg, nil
}
