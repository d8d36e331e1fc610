package main

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exponential-disk radial CDF the sampler must reproduce
func diskCDF(r, rd float64) float64 {
	t := r / rd
	return 1 - (1+t)*math.Exp(-t)
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"in range", 1.5, 1.5},
		{"exactly 2pi", 2 * math.Pi, 0},
		{"just above 2pi", 2*math.Pi + 0.25, 0.25},
		{"negative", -0.25, 2*math.Pi - 0.25},
		{"tiny negative rounds up to 2pi", -1e-30, 0},
		{"negative ulp", -5e-324, 0},
		{"large positive", 1000 * math.Pi, 0},
		{"large negative", -999.75 * math.Pi, 0.25 * math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapAngle(tt.in)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 2*math.Pi)
		})
	}
}

func TestInvertDiskCDF(t *testing.T) {
	const rd = 200.0
	for _, u := range []float64{0.01, 0.1, 0.25, 0.5, 0.75, 0.9, 0.99} {
		r, converged := invertDiskCDF(u, rd)
		assert.True(t, converged, "u=%v", u)
		assert.InDelta(t, u, diskCDF(r, rd), 1e-5, "u=%v", u)
	}

	t.Run("clamps to zero", func(t *testing.T) {
		r, _ := invertDiskCDF(0, rd)
		assert.GreaterOrEqual(t, r, 0.0)
	})
}

func TestDiskRadiusSamplerMatchesCDF(t *testing.T) {
	const (
		n  = 10000
		rd = 200.0
	)
	rng := rand.New(rand.NewSource(1))
	samples := make([]float64, n)
	for i := range samples {
		r, _ := sampleDiskRadius(rng, rd)
		samples[i] = r
	}
	sort.Float64s(samples)

	// Kolmogorov-Smirnov statistic against the analytic CDF
	ks := 0.0
	for i, r := range samples {
		f := diskCDF(r, rd)
		ks = math.Max(ks, math.Abs(f-float64(i)/n))
		ks = math.Max(ks, math.Abs(f-float64(i+1)/n))
	}
	assert.Less(t, ks, 0.02, "KS statistic")
}

func TestBulgeSamplerUniformInVolume(t *testing.T) {
	const (
		n = 10000
		R = 150.0
	)
	rng := rand.New(rand.NewSource(2))

	// three equal-volume shells must hold equal counts
	r1 := R * math.Cbrt(1.0/3.0)
	r2 := R * math.Cbrt(2.0/3.0)
	var counts [3]int
	for i := 0; i < n; i++ {
		x, y, z := sampleBulgePosition(rng, R)
		d := math.Sqrt(x*x + y*y + z*z)
		require.LessOrEqual(t, d, R)
		switch {
		case d < r1:
			counts[0]++
		case d < r2:
			counts[1]++
		default:
			counts[2]++
		}
	}
	for shell, c := range counts {
		assert.InDelta(t, n/3, c, 250, "shell %d", shell)
	}
}

func TestArmAcceptance(t *testing.T) {
	t.Run("no boost accepts everything", func(t *testing.T) {
		for _, proximity := range []float64{0, 0.1, 0.29, 0.5, 1} {
			assert.Equal(t, 1.0, armAcceptance(proximity, 0))
		}
	})
	t.Run("monotone in proximity", func(t *testing.T) {
		const boost = 10.0
		prev := -1.0
		for _, proximity := range []float64{0.31, 0.5, 0.8, 1} {
			p := armAcceptance(proximity, boost)
			assert.Greater(t, p, prev)
			prev = p
		}
	})
	t.Run("inter-arm penalty", func(t *testing.T) {
		const boost = 10.0
		near := armAcceptance(0.31, boost)
		far := armAcceptance(0.29, boost)
		assert.Less(t, far, near*0.25)
	})
	t.Run("on-ridge is certain", func(t *testing.T) {
		assert.InDelta(t, 1.0, armAcceptance(1, 10), 1e-12)
	})
}

func TestMinArmDistance(t *testing.T) {
	cfg := DefaultSimConfig().Galaxy

	t.Run("zero on the arm ridge", func(t *testing.T) {
		// place the probe exactly on arm 0 at a chosen radius
		r := 400.0
		theta := wrapAngle(math.Log(r/cfg.BulgeRadius) / cfg.SpiralTightness)
		assert.InDelta(t, 0, minArmDistance(r, theta, &cfg), 1e-6)
	})
	t.Run("between two arms", func(t *testing.T) {
		r := 400.0
		onArm := wrapAngle(math.Log(r/cfg.BulgeRadius) / cfg.SpiralTightness)
		between := wrapAngle(onArm + math.Pi/2) // two arms sit pi apart
		got := minArmDistance(r, between, &cfg)
		assert.InDelta(t, math.Pi/2*r, got, 1e-6)
	})
	t.Run("degenerate radius", func(t *testing.T) {
		assert.Equal(t, math.MaxFloat64, minArmDistance(0, 1, &cfg))
	})
}

func TestDiskPlacement(t *testing.T) {
	cfg := DefaultSimConfig().Galaxy
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 2000; i++ {
		p := sampleDiskPlacement(rng, &cfg, cfg.DiskRadius, true)
		assert.LessOrEqual(t, p.radius, cfg.DiskRadius)
		assert.GreaterOrEqual(t, p.radius, 0.0)
		assert.GreaterOrEqual(t, p.theta, 0.0)
		assert.Less(t, p.theta, 2*math.Pi)
	}

	t.Run("extended clamp", func(t *testing.T) {
		for i := 0; i < 2000; i++ {
			p := sampleDiskPlacement(rng, &cfg, cfg.DiskRadius*1.5, false)
			assert.LessOrEqual(t, p.radius, cfg.DiskRadius*1.5)
		}
	})
}
