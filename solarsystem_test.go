package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSolarSystem(t *testing.T) {
	sys := generateSolarSystem(13)
	require.Len(t, sys.Planets, len(planetCatalog))

	t.Run("anchor in the annulus", func(t *testing.T) {
		r := math.Hypot(sys.CenterX, sys.CenterZ)
		assert.GreaterOrEqual(t, r, systemMinRadius)
		assert.LessOrEqual(t, r, systemMinRadius+systemRadiusSpan)
		assert.LessOrEqual(t, math.Abs(sys.CenterY), systemVerticalJitter/2)
	})
	t.Run("sun sits on the anchor", func(t *testing.T) {
		assert.Equal(t, sys.CenterX, sys.Sun.X)
		assert.Equal(t, sys.CenterY, sys.Sun.Y)
		assert.Equal(t, sys.CenterZ, sys.Sun.Z)
		assert.Equal(t, sunRadius, sys.Sun.Radius)
	})
	t.Run("keplerian-like speeds", func(t *testing.T) {
		for i, p := range sys.Planets {
			assert.Equal(t, planetSpeedConstant/math.Sqrt(p.OrbitRadius), p.OrbitalSpeed, "planet %d", i)
		}
		// inner planets orbit faster
		for i := 1; i < len(sys.Planets); i++ {
			assert.Greater(t, sys.Planets[i-1].OrbitalSpeed, sys.Planets[i].OrbitalSpeed)
		}
	})
	t.Run("catalog scaling", func(t *testing.T) {
		for i, p := range sys.Planets {
			assert.Equal(t, planetCatalog[i].orbitAU*planetOrbitScale, p.OrbitRadius)
			assert.Equal(t, planetCatalog[i].size*planetSizeScale, p.Radius)
		}
	})
	t.Run("planets on their orbits", func(t *testing.T) {
		for i, p := range sys.Planets {
			d := math.Hypot(p.X-sys.Sun.X, p.Z-sys.Sun.Z)
			assert.InDelta(t, p.OrbitRadius, d, 1e-12, "planet %d", i)
			assert.Equal(t, sys.Sun.Y, p.Y)
		}
	})
}

func TestGenerateSolarSystemDeterminism(t *testing.T) {
	a := generateSolarSystem(13)
	b := generateSolarSystem(13)
	require.Equal(t, a, b)

	c := generateSolarSystem(14)
	assert.NotEqual(t, a.CenterX, c.CenterX)
}

func TestUpdatePlanets(t *testing.T) {
	sys := generateSolarSystem(13)
	anchor := [3]float64{sys.CenterX, sys.CenterY, sys.CenterZ}

	for _, dt := range []float64{0.016, 1000, -99999} {
		sys.updatePlanets(dt)
		assert.Equal(t, anchor, [3]float64{sys.CenterX, sys.CenterY, sys.CenterZ})
		for i, p := range sys.Planets {
			require.GreaterOrEqual(t, p.Angle, 0.0)
			require.Less(t, p.Angle, 2*math.Pi)
			d := math.Hypot(p.X-sys.Sun.X, p.Z-sys.Sun.Z)
			require.InDelta(t, p.OrbitRadius, d, 1e-12, "planet %d", i)
		}
	}
}

func TestCalculateRenderZone(t *testing.T) {
	sys := generateSolarSystem(13)

	tests := []struct {
		name       string
		zoom       float64
		wantScale  float64
		wantOrbits bool
	}{
		{"galaxy wide", 0.05, 1.0, false},
		{"at galaxy threshold", galaxyZoomMax, 1.0, false}, // ease starts at 0
		{"system local", systemZoomMin, systemScaleMultiplier, true},
		{"deep system", 5000, systemScaleMultiplier, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone := calculateRenderZone(&Camera{ZoomLevel: tt.zoom}, sys)
			assert.Equal(t, tt.zoom, zone.ZoomLevel)
			assert.InDelta(t, tt.wantScale, zone.SolarSystemScaleMult, 1e-9)
			assert.Equal(t, tt.wantOrbits, zone.RenderOrbits)
			assert.Equal(t, 1.0, zone.StarBrightnessFade)
		})
	}

	t.Run("cubic ease is monotone across the band", func(t *testing.T) {
		prev := 1.0
		for zoom := 1.0; zoom < systemZoomMin; zoom += 7 {
			zone := calculateRenderZone(&Camera{ZoomLevel: zoom}, sys)
			require.GreaterOrEqual(t, zone.SolarSystemScaleMult, prev)
			require.LessOrEqual(t, zone.SolarSystemScaleMult, systemScaleMultiplier)
			require.False(t, zone.RenderOrbits)
			prev = zone.SolarSystemScaleMult
		}
	})
	t.Run("distance from system", func(t *testing.T) {
		cam := &Camera{PosX: sys.CenterX, PosY: sys.CenterY + 3, PosZ: sys.CenterZ + 4, ZoomLevel: 1}
		zone := calculateRenderZone(cam, sys)
		assert.InDelta(t, 5.0, zone.DistanceFromSystem, 1e-12)
	})
}
