package profile_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lensing/pkg/profile"
)

const eps = 1e-9

func TestNewReducedShearBounds(t *testing.T) {
	t.Parallel()

	_, err := profile.NewReducedShear(0.6, 0.8)
	require.ErrorIs(t, err, profile.ErrInvalidShear)

	s, err := profile.NewReducedShear(0.03, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, 0.03, s.G1(), eps)
	assert.InDelta(t, 0.01, s.G2(), eps)
}

func TestDistortionRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := profile.NewDistortion(0.1, 0)
	require.NoError(t, err)

	// g = e / (1 + sqrt(1 - e^2))
	assert.InDelta(t, 0.1/(1+math.Sqrt(0.99)), s.G1(), eps)
	assert.InDelta(t, 0, s.G2(), eps)
	assert.InDelta(t, 0.1, s.E1(), eps)

	_, err = profile.NewDistortion(1, 0)
	require.ErrorIs(t, err, profile.ErrInvalidShear)

	zero, err := profile.NewDistortion(0, 0)
	require.NoError(t, err)
	assert.Zero(t, zero.G())
}

func TestGaussianShearRecoversEllipticity(t *testing.T) {
	t.Parallel()

	g, err := profile.NewGaussian(100, 0.5)
	require.NoError(t, err)

	s, err := profile.NewReducedShear(0.03, 0.01)
	require.NoError(t, err)

	sheared, ok := g.Shear(s).(*profile.Gaussian)
	require.True(t, ok)

	got := sheared.Ellipticity()
	assert.InDelta(t, 0.03, got.G1(), 1e-9)
	assert.InDelta(t, 0.01, got.G2(), 1e-9)
	assert.InDelta(t, 0.5, sheared.HalfLightRadius(), 1e-9, "shear preserves area")
	assert.InDelta(t, 100, sheared.Flux(), eps)

	assert.Zero(t, g.Ellipticity().G(), "original profile is untouched")
}

func TestGaussianMagnify(t *testing.T) {
	t.Parallel()

	g, err := profile.NewGaussian(100, 0.5)
	require.NoError(t, err)

	p, err := g.Magnify(1.21)
	require.NoError(t, err)

	m := p.(*profile.Gaussian)
	assert.InDelta(t, 121, m.Flux(), 1e-9)
	assert.InDelta(t, 0.55, m.HalfLightRadius(), 1e-9)

	_, err = g.Magnify(0)
	require.ErrorIs(t, err, profile.ErrInvalidMagnification)
	_, err = g.Magnify(-2)
	require.ErrorIs(t, err, profile.ErrInvalidMagnification)
}

func TestLens(t *testing.T) {
	t.Parallel()

	g, err := profile.NewGaussian(10, 1)
	require.NoError(t, err)

	s, err := profile.NewReducedShear(-0.05, 0.02)
	require.NoError(t, err)

	p, err := profile.Lens(g, s, 1.1)
	require.NoError(t, err)

	l := p.(*profile.Gaussian)
	assert.InDelta(t, 11, l.Flux(), 1e-9)
	assert.InDelta(t, -0.05, l.Ellipticity().G1(), 1e-9)
	assert.InDelta(t, 0.02, l.Ellipticity().G2(), 1e-9)
}

func TestNewGaussianInvalidRadius(t *testing.T) {
	t.Parallel()

	_, err := profile.NewGaussian(1, 0)
	require.Error(t, err)
}
