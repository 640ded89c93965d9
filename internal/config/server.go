package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/atinyakov/mouthpiecer/internal/wire"
)

// ServerOptions holds the configuration values of the sandbox server.
type ServerOptions struct {
	// Port defines the server's listening address (ip:port).
	Port string `yaml:"address" validate:"required"`

	// DatabaseDSN holds the Postgres connection string. Empty keeps data in memory.
	DatabaseDSN string `yaml:"database_dsn"`

	// Config is the path to the Config file.
	Config string `yaml:"-"`

	AppID            string `yaml:"app_id" validate:"required"`
	APIKey           string `yaml:"api_key" validate:"required"`
	Scene            string `yaml:"scene" validate:"required"`
	View             string `yaml:"view" validate:"required"`
	UserObject       string `yaml:"user_object" validate:"required"`
	MouthpieceObject string `yaml:"mouthpiece_object" validate:"required"`

	Fields wire.FieldMap `yaml:"fields"`

	// Makes lists the options of the make field.
	Makes []string `yaml:"makes" validate:"min=1,dive,required"`

	SessionTTL  time.Duration `yaml:"session_ttl" validate:"gt=0"`
	RowsPerPage int           `yaml:"rows_per_page" validate:"gt=0"`
	RateLimit   float64       `yaml:"rate_limit" validate:"gte=0"`
	RateBurst   int           `yaml:"rate_burst" validate:"gte=0"`
	CertFile    string        `yaml:"cert_file"`
	KeyFile     string        `yaml:"key_file"`
	LogLevel    string        `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// DefaultServer returns the built-in sandbox configuration. It mirrors the
// client defaults so both work together without a config file.
func DefaultServer() ServerOptions {
	return ServerOptions{
		Port:             "localhost:8080",
		Config:           "sandbox.json",
		AppID:            DefaultAppID,
		APIKey:           "sandbox",
		Scene:            "scene_18",
		View:             "view_18",
		UserObject:       "object_1",
		MouthpieceObject: "object_2",
		Fields:           wire.DefaultFieldMap(),
		Makes:            []string{"Bach", "Yamaha", "Schilke", "Denis Wick", "Monette", "Stork", "Greg Black", "Conn"},
		SessionTTL:       48 * time.Hour,
		RowsPerPage:      25,
		RateLimit:        10,
		RateBurst:        20,
		LogLevel:         "info",
	}
}

// ParseServer parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the ServerOptions containing
// the parsed configuration values.
func ParseServer(args []string) (*ServerOptions, error) {
	options := DefaultServer()

	fs := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", options.Port, "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.Config, "config", options.Config, "path to config file")
	fs.StringVar(&options.Config, "c", options.Config, "path to config file (shorthand)")
	fs.StringVar(&options.CertFile, "cert", "", "TLS certificate (enables HTTPS)")
	fs.StringVar(&options.KeyFile, "key", "", "TLS private key")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Flags given explicitly win over the config file.
	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

	// Override flags with environment variables if set
	_, named := explicit["config"]
	if _, ok := explicit["c"]; ok {
		named = true
	}
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
		named = true
	}
	if err := readFile(options.Config, !named, &options); err != nil {
		return nil, err
	}
	if v, ok := explicit["a"]; ok {
		options.Port = v
	}
	if v, ok := explicit["d"]; ok {
		options.DatabaseDSN = v
	}
	if v, ok := explicit["cert"]; ok {
		options.CertFile = v
	}
	if v, ok := explicit["key"]; ok {
		options.KeyFile = v
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if v := os.Getenv("KNACK_APP_ID"); v != "" {
		options.AppID = v
	}
	if v := os.Getenv("KNACK_API_KEY"); v != "" {
		options.APIKey = v
	}

	if err := validator.New().Struct(options); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	if (options.CertFile == "") != (options.KeyFile == "") {
		return nil, fmt.Errorf("config validation error: cert and key must be set together")
	}
	return &options, nil
}

// TLS reports whether the server should serve HTTPS.
func (o *ServerOptions) TLS() bool {
	return o.CertFile != "" && o.KeyFile != ""
}
