package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports every missing or unusable setting at once.
func (c Config) Validate() error {
	var errs []error
	if len(c.JWTSecret) == 0 {
		errs = append(errs, errors.New("missing required env JWT_SECRET"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("missing required env DATABASE_URL"))
	} else if path, ok := strings.CutPrefix(c.DatabaseURL, "sqlite://"); ok && path == "" {
		errs = append(errs, errors.New("DATABASE_URL: sqlite:// needs a file path or :memory:"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC must be set when KAFKA_BROKERS is"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ValidateStore checks only what commands that touch the database need.
func (c Config) ValidateStore() error {
	if c.DatabaseURL == "" {
		return errors.New("config: missing required env DATABASE_URL")
	}
	return nil
}
