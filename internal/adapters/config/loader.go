// Package config provides the configuration loader for margin.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader with a YAML file and MARGIN_* variables.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load builds the configuration from defaults, the YAML file, a .env file next to
// it and the environment, in increasing precedence.
func (l *Loader) Load(path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = domain.ConfigFileName
	}

	var file File
	switch err := readAndUnmarshalYAML(path, &file); {
	case err == nil:
		file.apply(cfg)
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, zerr.With(err, "file", path)
	}

	dotenv := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.Logger.Warn("ignoring unreadable " + dotenv)
	}

	var overrides envOverrides
	if err := env.ParseWithOptions(&overrides, env.Options{Prefix: domain.EnvPrefix}); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	overrides.apply(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the operator
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

func (f *File) apply(cfg *domain.Config) {
	setString(&cfg.Server.Addr, f.Server.Addr)
	setString(&cfg.Server.APIEndpoint, f.Server.APIEndpoint)
	if f.Server.Inject != nil {
		cfg.Server.Inject = *f.Server.Inject
	}
	setString(&cfg.Server.Upstream, f.Server.Upstream)
	setString(&cfg.Server.StaticDir, f.Server.StaticDir)

	setString(&cfg.Storage.Driver, f.Storage.Driver)
	setString(&cfg.Storage.Path, f.Storage.Path)
	setString(&cfg.Storage.RedisAddr, f.Storage.RedisAddr)
	if f.Storage.RedisDB != nil {
		cfg.Storage.RedisDB = *f.Storage.RedisDB
	}

	setString(&cfg.Telemetry.OTLPEndpoint, f.Telemetry.OTLPEndpoint)
	setString(&cfg.Telemetry.ServiceName, f.Telemetry.ServiceName)

	if f.Log.JSON != nil {
		cfg.Log.JSON = *f.Log.JSON
	}
}

func (o *envOverrides) apply(cfg *domain.Config) {
	override(&cfg.Server.Addr, o.Addr)
	override(&cfg.Server.APIEndpoint, o.APIEndpoint)
	override(&cfg.Server.Inject, o.Inject)
	override(&cfg.Server.Upstream, o.Upstream)
	override(&cfg.Server.StaticDir, o.StaticDir)
	override(&cfg.Storage.Driver, o.Driver)
	override(&cfg.Storage.Path, o.Path)
	override(&cfg.Storage.RedisAddr, o.RedisAddr)
	override(&cfg.Storage.RedisDB, o.RedisDB)
	override(&cfg.Telemetry.OTLPEndpoint, o.OTLPEndpoint)
	override(&cfg.Telemetry.ServiceName, o.ServiceName)
	override(&cfg.Log.JSON, o.LogJSON)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func validate(cfg *domain.Config) error {
	switch cfg.Storage.Driver {
	case domain.DriverMemory, domain.DriverSQLite, domain.DriverRedis:
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownStorageDriver, "invalid configuration"), "driver", cfg.Storage.Driver)
	}
	return domain.ValidateEndpoint(cfg.Server.APIEndpoint)
}
