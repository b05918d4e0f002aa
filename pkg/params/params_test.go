package params_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lensing/pkg/params"
)

var (
	testRequired = []string{"mass", "z"}
	testOptional = map[string]any{"mu": 1.0, "g1": nil}
)

func TestParseMissingRequired(t *testing.T) {
	t.Parallel()

	for _, missing := range testRequired {
		missing := missing
		t.Run(missing, func(t *testing.T) {
			t.Parallel()

			cfg := params.Config{"mass": 1e14, "z": 0.3}
			delete(cfg, missing)

			_, err := params.Parse(cfg, testRequired, testOptional, "nfw")
			require.ErrorIs(t, err, params.ErrConfig)
			assert.Contains(t, err.Error(), missing)
			assert.Contains(t, err.Error(), "nfw")
		})
	}
}

func TestParseFillsDefaults(t *testing.T) {
	t.Parallel()

	got, err := params.Parse(params.Config{"g1": 0.02}, nil, testOptional, "constant")
	require.NoError(t, err)

	want := params.Config{"g1": 0.02, "mu": 1.0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOnlyOptionalKeys(t *testing.T) {
	t.Parallel()

	got, err := params.Parse(nil, nil, testOptional, "constant")
	require.NoError(t, err)
	require.Len(t, got, len(testOptional))

	for key, def := range testOptional {
		v, ok := got[key]
		assert.True(t, ok, "missing %s", key)
		assert.Equal(t, def, v)
	}
}

func TestParseDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := params.Config{"mass": 1e14, "z": 0.3}
	_, err := params.Parse(in, testRequired, testOptional, "nfw")
	require.NoError(t, err)
	assert.Len(t, in, 2)
}

func TestParseUnknownKey(t *testing.T) {
	t.Parallel()

	cfg := params.Config{"mass": 1e14, "z": 0.3, "colour": "red"}

	_, err := params.Parse(cfg, testRequired, testOptional, "nfw")
	require.ErrorIs(t, err, params.ErrConfig)
	assert.Contains(t, err.Error(), "colour")

	got, err := params.Parse(cfg, testRequired, testOptional, "nfw", params.AllowUnregistered())
	require.NoError(t, err)
	assert.Equal(t, "red", got["colour"])
}

func TestConfigFloat(t *testing.T) {
	t.Parallel()

	cfg := params.Config{
		"f64":  0.5,
		"f32":  float32(0.25),
		"int":  3,
		"i64":  int64(4),
		"str":  "x",
		"none": nil,
	}

	tests := []struct {
		key     string
		want    float64
		wantErr bool
	}{
		{key: "f64", want: 0.5},
		{key: "f32", want: 0.25},
		{key: "int", want: 3},
		{key: "i64", want: 4},
		{key: "str", wantErr: true},
		{key: "none", wantErr: true},
		{key: "missing", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			got, err := cfg.Float(tt.key)
			if tt.wantErr {
				require.ErrorIs(t, err, params.ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestConfigIsSet(t *testing.T) {
	t.Parallel()

	cfg := params.Config{"a": 1, "b": nil}
	assert.True(t, cfg.IsSet("a"))
	assert.False(t, cfg.IsSet("b"))
	assert.False(t, cfg.IsSet("c"))

	var empty params.Config
	assert.False(t, empty.IsSet("a"))
	assert.NotNil(t, empty.Clone())
}

func TestConfigStringAndBool(t *testing.T) {
	t.Parallel()

	cfg := params.Config{"outdir": "/tmp/x", "verbose": true, "n": 2}

	s, err := cfg.String("outdir")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", s)

	_, err = cfg.String("n")
	require.ErrorIs(t, err, params.ErrConfig)

	b, err := cfg.Bool("verbose")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = cfg.Bool("outdir")
	require.ErrorIs(t, err, params.ErrConfig)
}
