// SPDX-License-Identifier: EPL-2.0

// Package config loads command line defaults from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the settings shared by every subcommand. Command line flags
// override them.
type Config struct {
	Env       string `validate:"oneof=development production"`
	LogLevel  string `validate:"oneof=debug info warn warning error"`
	LogFormat string `validate:"omitempty,oneof=json pretty"`
	Format    string `validate:"oneof=wav aiff"`
	OutDir    string `validate:"required"`
}

// Load reads envFile if it exists, then the environment:
//
//	AUPSTREAM_ENV         development | production (default development)
//	AUPSTREAM_LOG_LEVEL   debug | info | warn | error (default info)
//	AUPSTREAM_LOG_FORMAT  json | pretty (default by environment)
//	AUPSTREAM_FORMAT      wav | aiff (default wav)
//	AUPSTREAM_OUT         output directory (default ".")
//
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Env:       getenv("AUPSTREAM_ENV", "development"),
		LogLevel:  strings.ToLower(getenv("AUPSTREAM_LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getenv("AUPSTREAM_LOG_FORMAT", "")),
		Format:    strings.ToLower(getenv("AUPSTREAM_FORMAT", "wav")),
		OutDir:    getenv("AUPSTREAM_OUT", "."),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field against its allowed values.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if e.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %q is not one of [%s]", e.Field(), e.Value(), e.Param()))
	}

	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
