// Package config provides functionality for managing configuration options
// for the client and the sandbox server using files, command-line flags and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/atinyakov/mouthpiecer/internal/models"
	"github.com/atinyakov/mouthpiecer/internal/wire"
)

// Options holds the configuration values of the terminal client.
type Options struct {
	// AppID identifies the hosted application.
	AppID string `yaml:"app_id" validate:"required"`
	// APIKey authenticates account-scoped calls (user creation, schema).
	APIKey string `yaml:"api_key"`
	// BaseURL is the API root, e.g. https://api.knack.com/v1.
	BaseURL string `yaml:"base_url" validate:"required,url"`

	Scene            string `yaml:"scene" validate:"required"`
	View             string `yaml:"view" validate:"required"`
	UserObject       string `yaml:"user_object" validate:"required"`
	MouthpieceObject string `yaml:"mouthpiece_object" validate:"required"`
	UserRole         string `yaml:"user_role" validate:"required"`

	Fields wire.FieldMap `yaml:"fields"`

	// CAFile is an optional PEM bundle trusted in addition to the system roots.
	CAFile string `yaml:"ca_file"`
	// Timeout bounds each request. Zero leaves the transport default (none).
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error off"`
	// LogFile receives log output. Empty means stderr.
	LogFile string `yaml:"log_file"`
}

// DefaultAppID is the hosted application the client talks to out of the box.
const DefaultAppID = "60241522a16be4001b611249"

// Default returns the built-in client configuration.
func Default() Options {
	return Options{
		AppID:            DefaultAppID,
		BaseURL:          "https://api.knack.com/v1",
		Scene:            "scene_18",
		View:             "view_18",
		UserObject:       "object_1",
		MouthpieceObject: "object_2",
		UserRole:         models.DefaultRole,
		Fields:           wire.DefaultFieldMap(),
		LogLevel:         "error",
	}
}

// Load builds the client configuration. Defaults are overlaid with the file at
// path (YAML or JSON; skipped when missing), then with environment variables:
// KNACK_APP_ID, KNACK_API_KEY, KNACK_BASE_URL and LOG_LEVEL. When path is
// empty MOUTHPIECER_CONFIG is consulted.
func Load(path string) (*Options, error) {
	opts := Default()

	optional := path == ""
	if optional {
		path = os.Getenv("MOUTHPIECER_CONFIG")
	}
	if err := readFile(path, optional, &opts); err != nil {
		return nil, err
	}

	if v := os.Getenv("KNACK_APP_ID"); v != "" {
		opts.AppID = v
	}
	if v := os.Getenv("KNACK_API_KEY"); v != "" {
		opts.APIKey = v
	}
	if v := os.Getenv("KNACK_BASE_URL"); v != "" {
		opts.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		opts.LogLevel = v
	}

	if err := validator.New().Struct(opts); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &opts, nil
}

// readFile unmarshals the file at path over out. A missing file is only
// tolerated when optional is set.
func readFile(path string, optional bool, out any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error while reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}
	return nil
}
