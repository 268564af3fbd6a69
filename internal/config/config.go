// Package config defines the logger configuration model, its defaults
// resolution and the YAML file loading used by the CLI and the
// ingestion server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration: the base path log
// file paths are resolved against, the ingestion server settings and
// the named logger blocks.
type Config struct {
	BasePath string `yaml:"base_path"`

	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port" validate:"min=1,max=65535"`
		Mode string `yaml:"mode" validate:"omitempty,oneof=debug release"`
	} `yaml:"server"`

	Loggers map[string]Options `yaml:"loggers" validate:"dive"`
}

// Load reads and validates the configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	// Defaults applied before unmarshalling
	cfg.BasePath = "."
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Mode = "release"

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file '%s': %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate performs struct-tag validation followed by the semantic
// checks struct tags cannot express. Driver and output names are
// deliberately not validated: unknown values degrade to documented
// fallbacks at build time instead of erroring here.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, verr := range verrs {
				msgs = append(msgs, fmt.Sprintf("field '%s' failed on the '%s' tag", verr.Field(), verr.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	if len(cfg.Loggers) == 0 {
		return errors.New("at least one logger must be configured")
	}

	for name, opts := range cfg.Loggers {
		if err := validateLogger(name, opts); err != nil {
			return err
		}
	}
	return nil
}

func validateLogger(name string, opts Options) error {
	for driverName, drv := range opts.Drivers {
		path := fmt.Sprintf("loggers[%s].drivers[%s]", name, driverName)

		if strings.EqualFold(driverName, "gelf") {
			if drv.Host == "" {
				return fmt.Errorf("%s: host is required for the gelf driver", path)
			}
			if drv.Port <= 0 {
				return fmt.Errorf("%s: valid port is required for the gelf driver", path)
			}
		}

		for i, pattern := range drv.Suppress {
			if _, err := glob.Compile(pattern); err != nil {
				return fmt.Errorf("%s: invalid suppress pattern [%d] '%s': %w", path, i, pattern, err)
			}
		}
	}
	return nil
}
