package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/NewJerseyStyle/TheBlueprint-Project/internal/errors"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "IMPACTMAP_"

// ============================================================================
// CONFIGURATION LOADER
// ============================================================================

// Loader layers configuration from files and the environment.
type Loader struct {
	basePath    string
	environment Environment
	sources     []string

	// fileLoaders is ordered; the first extension found for a layer wins.
	fileLoaders []FileLoader
	lookupEnv   func(string) (string, bool)
}

// FileLoader decodes one configuration file format.
type FileLoader interface {
	Load(reader io.Reader, target interface{}) error
	Extension() string
}

// NewLoader creates a loader rooted at basePath ("config" when empty).
func NewLoader(basePath string, env Environment) *Loader {
	if basePath == "" {
		basePath = "config"
	}
	if env == "" {
		env = Development
	}
	l := &Loader{
		basePath:    basePath,
		environment: env,
		lookupEnv:   os.LookupEnv,
	}
	l.RegisterLoader(&YAMLLoader{})
	l.RegisterLoader(&TOMLLoader{})
	l.RegisterLoader(&JSONLoader{})
	return l
}

// RegisterLoader adds a format, replacing any loader for the same extension.
func (l *Loader) RegisterLoader(loader FileLoader) {
	for i, existing := range l.fileLoaders {
		if existing.Extension() == loader.Extension() {
			l.fileLoaders[i] = loader
			return
		}
	}
	l.fileLoaders = append(l.fileLoaders, loader)
}

// BasePath returns the directory the loader reads from.
func (l *Loader) BasePath() string { return l.basePath }

// Environment returns the environment the loader targets.
func (l *Loader) Environment() Environment { return l.environment }

// Load builds the configuration. Priority, lowest first:
//  1. defaults in code
//  2. base.{yaml,toml,json}
//  3. <environment>.{yaml,toml,json}
//  4. local.{yaml,toml,json} (development only)
//  5. IMPACTMAP_* environment variables
func (l *Loader) Load() (*Config, error) {
	l.sources = []string{"defaults"}
	cfg := Default(l.environment)

	for _, layer := range l.layers() {
		if err := l.loadFile(layer, cfg); err != nil && !os.IsNotExist(err) {
			return nil, apperrors.Internal(apperrors.CodeConfigLoad, fmt.Sprintf("failed to load %s config", layer)).
				WithOperation("config.Load").
				WithCause(err).
				Build()
		}
	}

	if err := l.loadEnvironmentVariables(cfg); err != nil {
		return nil, err
	}
	l.sources = append(l.sources, "environment")
	cfg.LoadedFrom = append([]string(nil), l.sources...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) layers() []string {
	layers := []string{"base", strings.ToLower(string(l.environment))}
	if l.environment == Development {
		layers = append(layers, "local")
	}
	return layers
}

// Files returns every candidate file path, existing or not.
func (l *Loader) Files() []string {
	var files []string
	for _, layer := range l.layers() {
		for _, fl := range l.fileLoaders {
			files = append(files, filepath.Join(l.basePath, layer+"."+fl.Extension()))
		}
	}
	return files
}

func (l *Loader) loadFile(name string, cfg *Config) error {
	for _, loader := range l.fileLoaders {
		path := filepath.Join(l.basePath, fmt.Sprintf("%s.%s", name, loader.Extension()))
		file, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		err = loader.Load(file, cfg)
		file.Close()
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		l.sources = append(l.sources, path)
		return nil
	}
	return os.ErrNotExist
}

// loadEnvironmentVariables overlays IMPACTMAP_* variables.
func (l *Loader) loadEnvironmentVariables(cfg *Config) error {
	var bad []string
	str := func(key string, dst *string) {
		if v, ok := l.lookupEnv(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := l.lookupEnv(EnvPrefix + key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				bad = append(bad, EnvPrefix+key)
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := l.lookupEnv(EnvPrefix + key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				bad = append(bad, EnvPrefix+key)
				return
			}
			*dst = b
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := l.lookupEnv(EnvPrefix + key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				bad = append(bad, EnvPrefix+key)
				return
			}
			*dst = d
		}
	}

	str("SERVER_HOST", &cfg.Server.Host)
	num("SERVER_PORT", &cfg.Server.Port)
	dur("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	dur("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	dur("SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	if v, ok := l.lookupEnv(EnvPrefix + "SERVER_ALLOWED_ORIGINS"); ok && v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FORMAT", &cfg.Logging.Format)

	flag("METRICS_ENABLED", &cfg.Metrics.Enabled)
	str("METRICS_NAMESPACE", &cfg.Metrics.Namespace)
	str("METRICS_PATH", &cfg.Metrics.Path)

	flag("TRACING_ENABLED", &cfg.Tracing.Enabled)
	str("TRACING_SERVICE_NAME", &cfg.Tracing.ServiceName)

	flag("SEED_TUTORIAL", &cfg.Seed.LoadTutorial)
	str("SEED_ID_STRATEGY", &cfg.Seed.IDStrategy)

	num("LOOKAHEAD_MAX_DEPTH", &cfg.Domain.Lookahead.MaxDepth)

	if len(bad) > 0 {
		return apperrors.Validation(apperrors.CodeConfigInvalid, "malformed environment variables").
			WithDetails(strings.Join(bad, ", ")).
			WithOperation("config.Load").
			Build()
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ============================================================================
// FILE LOADERS
// ============================================================================

// YAMLLoader loads YAML files.
type YAMLLoader struct{}

func (y *YAMLLoader) Load(reader io.Reader, target interface{}) error {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (y *YAMLLoader) Extension() string { return "yaml" }

// TOMLLoader loads TOML files.
type TOMLLoader struct{}

func (t *TOMLLoader) Load(reader io.Reader, target interface{}) error {
	meta, err := toml.NewDecoder(reader).Decode(target)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}
	return nil
}

func (t *TOMLLoader) Extension() string { return "toml" }

// JSONLoader loads JSON files. Durations are given in nanoseconds.
type JSONLoader struct{}

func (j *JSONLoader) Load(reader io.Reader, target interface{}) error {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (j *JSONLoader) Extension() string { return "json" }
