// Package config provides configuration management for the canvas engine.
//
// Configuration is layered: defaults in code, then base, environment and
// local files (YAML, TOML or JSON), then IMPACTMAP_* environment variables.
// The result is validated with struct tags before use.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	domainconfig "github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/config"
	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

// Environment is the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
	Test        Environment = "test"
)

// Config is the complete application configuration.
type Config struct {
	Environment Environment               `yaml:"environment" toml:"environment" json:"environment" validate:"oneof=development staging production test"`
	Domain      domainconfig.DomainConfig `yaml:"domain" toml:"domain" json:"domain"`
	Server      Server                    `yaml:"server" toml:"server" json:"server"`
	Logging     Logging                   `yaml:"logging" toml:"logging" json:"logging"`
	Metrics     Metrics                   `yaml:"metrics" toml:"metrics" json:"metrics"`
	Tracing     Tracing                   `yaml:"tracing" toml:"tracing" json:"tracing"`
	Seed        Seed                      `yaml:"seed" toml:"seed" json:"seed"`

	// LoadedFrom lists the sources applied, lowest priority first.
	LoadedFrom []string `yaml:"-" toml:"-" json:"-"`
}

// Server configures the HTTP adapter.
type Server struct {
	Host            string        `yaml:"host" toml:"host" json:"host" validate:"required"`
	Port            int           `yaml:"port" toml:"port" json:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" toml:"read_timeout" json:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" toml:"write_timeout" json:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout" json:"shutdown_timeout" validate:"gt=0"`
	AllowedOrigins  []string      `yaml:"allowed_origins" toml:"allowed_origins" json:"allowed_origins"`
}

// Address returns host:port.
func (s Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Logging configures the zap logger.
type Logging struct {
	Level  string `yaml:"level" toml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" json:"format" validate:"oneof=json console"`
}

// Metrics configures the Prometheus collector.
type Metrics struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace" toml:"namespace" json:"namespace" validate:"required_if=Enabled true"`
	Path      string `yaml:"path" toml:"path" json:"path" validate:"required_if=Enabled true"`
}

// Tracing configures OpenTelemetry spans around command dispatch.
type Tracing struct {
	Enabled     bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
	ServiceName string `yaml:"service_name" toml:"service_name" json:"service_name" validate:"required_if=Enabled true"`
}

// Seed selects the initial canvas and id strategy.
type Seed struct {
	LoadTutorial bool   `yaml:"load_tutorial" toml:"load_tutorial" json:"load_tutorial"`
	IDStrategy   string `yaml:"id_strategy" toml:"id_strategy" json:"id_strategy" validate:"oneof=sequential uuid"`
}

// Default returns a configuration that runs without any files.
func Default(env Environment) *Config {
	if env == "" {
		env = Development
	}
	cfg := &Config{
		Environment: env,
		Domain:      domainconfig.DefaultDomainConfig(),
		Server: Server{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"http://localhost:3000"},
		},
		Logging: Logging{Level: "info", Format: "json"},
		Metrics: Metrics{Enabled: true, Namespace: "impactmap", Path: "/metrics"},
		Tracing: Tracing{Enabled: true, ServiceName: "impactmap"},
		Seed:    Seed{LoadTutorial: true, IDStrategy: "uuid"},
	}
	cfg.applyEnvironmentDefaults()
	return cfg
}

// applyEnvironmentDefaults adjusts defaults that differ per environment.
func (c *Config) applyEnvironmentDefaults() {
	switch c.Environment {
	case Development:
		c.Logging.Format = "console"
		c.Logging.Level = "debug"
	case Test:
		c.Seed.IDStrategy = "sequential"
		c.Metrics.Enabled = false
		c.Tracing.Enabled = false
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks every struct tag rule and reports all violations at once.
func (c *Config) Validate() error {
	err := structValidator().Struct(c)
	if err == nil {
		return nil
	}
	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
	} else {
		fields = append(fields, err.Error())
	}
	return apperrors.Validation(apperrors.CodeConfigInvalid, "configuration validation failed").
		WithDetails(strings.Join(fields, "; ")).
		WithCause(err).
		Build()
}
