// Package config loads the YAML run configuration of the lensing pipeline.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-lensing/pkg/params"
	"github.com/askiada/go-lensing/pkg/pipeline/model"
)

const (
	EnvOutdir   = "LENSING_OUTDIR"
	EnvLogLevel = "LENSING_LOG_LEVEL"
)

// Config is a pipeline run configuration.
type Config struct {
	RunName    string         `yaml:"run_name"`
	RunOptions map[string]any `yaml:"run_options"`
	Modules    []Module       `yaml:"modules"`
	// Shear holds the shear type under "type" and its parameters.
	Shear   map[string]any `yaml:"shear"`
	Objects []Object       `yaml:"objects"`
	Logging LoggingConfig  `yaml:"logging"`
}

// Module is a pipeline stage.
type Module struct {
	Name        string         `yaml:"name"`
	Diagnostics map[string]any `yaml:"diagnostics"`
	// DependsOn defaults to the previous module. An explicit empty list makes
	// the module independent.
	DependsOn []string `yaml:"depends_on"`
}

// Object is a Gaussian galaxy to lens. Positions are in arcsec.
type Object struct {
	Flux    float64  `yaml:"flux"`
	HLR     float64  `yaml:"hlr"`
	X       float64  `yaml:"x"`
	Y       float64  `yaml:"y"`
	ZSource *float64 `yaml:"z_source"`
}

// LoggingConfig selects the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		RunName:    "lensing",
		RunOptions: map[string]any{},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)

	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrap(err, "failed to read config")
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}

	if cfg.RunOptions == nil {
		cfg.RunOptions = map[string]any{}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if outdir := os.Getenv(EnvOutdir); outdir != "" {
		c.RunOptions["outdir"] = outdir
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks module names are set and unique and that dependencies
// refer to earlier modules.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Modules))

	for i, m := range c.Modules {
		if strings.TrimSpace(m.Name) == "" {
			return errors.Wrapf(params.ErrConfig, "module %d has no name", i)
		}

		if model.IsReserved(m.Name) {
			return errors.Wrapf(params.ErrConfig, "module name %q is reserved", m.Name)
		}

		if _, ok := seen[m.Name]; ok {
			return errors.Wrapf(params.ErrConfig, "module %q is declared twice", m.Name)
		}

		for _, dep := range m.DependsOn {
			if _, ok := seen[dep]; !ok {
				return errors.Wrapf(params.ErrConfig, "module %q depends on %q which is not declared before it", m.Name, dep)
			}
		}

		seen[m.Name] = struct{}{}
	}

	for i, o := range c.Objects {
		if o.Flux <= 0 || o.HLR <= 0 {
			return errors.Wrapf(params.ErrConfig, "object %d needs a positive flux and hlr", i)
		}
	}

	return nil
}

// Parents returns the stages module i waits for.
func (c *Config) Parents(i int) []string {
	m := c.Modules[i]
	if m.DependsOn != nil || i == 0 {
		return m.DependsOn
	}

	return []string{c.Modules[i-1].Name}
}

// RunConfig returns the run options handed to every diagnostics.
func (c *Config) RunConfig() params.Config {
	return params.Config(c.RunOptions).Clone()
}

// ShearConfig splits the shear section into its type and parameters.
func (c *Config) ShearConfig() (string, params.Config, error) {
	shearType, ok := c.Shear["type"].(string)
	if !ok || shearType == "" {
		return "", nil, errors.Wrap(params.ErrConfig, "shear: missing required field \"type\"")
	}

	cfg := params.Config(c.Shear).Clone()
	delete(cfg, "type")

	return shearType, cfg, nil
}
