package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lensing/internal/config"
	"github.com/askiada/go-lensing/pkg/params"
)

const sample = `
run_name: cosmos
run_options:
  outdir: /data/run
modules:
  - name: galsim
    diagnostics:
      outdir: /data/galsim
  - name: medsmaker
  - name: metacal
    depends_on: [galsim]
  - name: ngmix_fit
    depends_on: []
shear:
  type: nfw
  mass: 1.0e15
  concentration: 4
  z: 0.3
  halo_x: 0
  halo_y: 0
objects:
  - flux: 1000
    hlr: 0.5
    x: 30
    y: 0
    z_source: 1.2
logging:
  level: debug
  format: console
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sample))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "cosmos", cfg.RunName)
	assert.Equal(t, "/data/run", cfg.RunOptions["outdir"])
	assert.Equal(t, config.LoggingConfig{Level: "debug", Format: "console"}, cfg.Logging)

	names := make([]string, 0, len(cfg.Modules))
	for _, m := range cfg.Modules {
		names = append(names, m.Name)
	}

	assert.Equal(t, []string{"galsim", "medsmaker", "metacal", "ngmix_fit"}, names)
	assert.Equal(t, "/data/galsim", cfg.Modules[0].Diagnostics["outdir"])

	z := 1.2
	want := []config.Object{{Flux: 1000, HLR: 0.5, X: 30, Y: 0, ZSource: &z}}

	if diff := cmp.Diff(want, cfg.Objects); diff != "" {
		t.Errorf("objects mismatch (-want +got):\n%s", diff)
	}
}

func TestParents(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Empty(t, cfg.Parents(0))
	assert.Equal(t, []string{"galsim"}, cfg.Parents(1))
	assert.Equal(t, []string{"galsim"}, cfg.Parents(2))
	assert.Empty(t, cfg.Parents(3))
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	if diff := cmp.Diff(config.DefaultConfig(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := config.Load(writeConfig(t, "modules: [:"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvOutdir, "/scratch/out")
	t.Setenv(config.EnvLogLevel, "warn")

	cfg, err := config.Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "/scratch/out", cfg.RunOptions["outdir"])
	assert.Equal(t, "warn", cfg.Logging.Level)

	run := cfg.RunConfig()
	run["outdir"] = "changed"
	assert.Equal(t, "/scratch/out", cfg.RunOptions["outdir"])
}

func TestEnvOverridesWithoutRunOptions(t *testing.T) {
	t.Setenv(config.EnvOutdir, "/scratch/out")

	cfg, err := config.Load(writeConfig(t, "run_name: bare\n"))
	require.NoError(t, err)
	assert.Equal(t, "/scratch/out", cfg.RunOptions["outdir"])
}

func TestValidate(t *testing.T) {
	tcs := map[string]struct {
		cfg     config.Config
		message string
	}{
		"empty name": {
			cfg:     config.Config{Modules: []config.Module{{Name: " "}}},
			message: "module 0 has no name",
		},
		"duplicate": {
			cfg:     config.Config{Modules: []config.Module{{Name: "a"}, {Name: "a"}}},
			message: `module "a" is declared twice`,
		},
		"forward dependency": {
			cfg: config.Config{Modules: []config.Module{
				{Name: "a", DependsOn: []string{"b"}},
				{Name: "b"},
			}},
			message: `module "a" depends on "b"`,
		},
		"reserved start": {
			cfg:     config.Config{Modules: []config.Module{{Name: "start"}}},
			message: `module name "start" is reserved`,
		},
		"reserved end": {
			cfg:     config.Config{Modules: []config.Module{{Name: "galsim"}, {Name: "end"}}},
			message: `module name "end" is reserved`,
		},
		"bad object": {
			cfg:     config.Config{Objects: []config.Object{{Flux: 1}}},
			message: "object 0 needs a positive flux and hlr",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			err := tc.cfg.Validate()
			require.ErrorIs(t, err, params.ErrConfig)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestShearConfig(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sample))
	require.NoError(t, err)

	shearType, shearCfg, err := cfg.ShearConfig()
	require.NoError(t, err)
	assert.Equal(t, "nfw", shearType)
	assert.NotContains(t, shearCfg, "type")
	assert.Equal(t, []string{"concentration", "halo_x", "halo_y", "mass", "z"}, shearCfg.Keys())
	assert.Equal(t, "nfw", cfg.Shear["type"])

	_, _, err = config.DefaultConfig().ShearConfig()
	require.ErrorIs(t, err, params.ErrConfig)
}
