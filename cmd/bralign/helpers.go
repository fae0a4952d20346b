package main

import (
	"os"

	"bralign/internal/config"
	"bralign/internal/errors"
	"bralign/internal/logging"
)

// setup loads the working-directory config and builds the logger from it.
// --verbose overrides the configured level.
func setup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	if verboseFlag {
		level = logging.DebugLevel
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  level,
	})
	return cfg, logger, nil
}

// requireFiles fails fast with FILE_NOT_FOUND before any parsing happens.
func requireFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return errors.Errorf(errors.FileNotFound, "file not found: %s", p)
		}
	}
	return nil
}
