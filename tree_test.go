package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStarAt(x, y, z, brightness float64) Star {
	s := Star{R: 1, G: 1, B: 1, Brightness: brightness}
	s.X, s.Y, s.Z = x, y, z
	s.Radius = math.Hypot(x, z)
	return s
}

func TestClusterTreeConservation(t *testing.T) {
	cfg := testGalaxyConfig()
	cfg.NumStars = 5000
	stars := generateStarField(&cfg)
	root := buildClusterTree(stars, galaxyBound(&cfg))

	total := 0.0
	for i := range stars {
		total += stars[i].Brightness
	}

	for _, maxExtent := range []float64{0, 10, 100, 1e9} {
		gotLum := 0.0
		gotCount := 0
		root.aggregate(maxExtent, func(_ mgl64.Vec3, lum float64, _ mgl64.Vec3, count int) {
			gotLum += lum
			gotCount += count
		})
		assert.InDelta(t, total, gotLum, 1e-6, "maxExtent=%v", maxExtent)
		assert.Equal(t, len(stars), gotCount, "maxExtent=%v", maxExtent)
	}
}

func TestClusterTreeCollapses(t *testing.T) {
	cfg := testGalaxyConfig()
	cfg.NumStars = 5000
	stars := generateStarField(&cfg)
	root := buildClusterTree(stars, galaxyBound(&cfg))

	emits := func(maxExtent float64) int {
		n := 0
		root.aggregate(maxExtent, func(mgl64.Vec3, float64, mgl64.Vec3, int) { n++ })
		return n
	}

	fine := emits(0)
	coarse := emits(cfg.DiskRadius)
	whole := emits(1e12)

	assert.Equal(t, len(stars), fine, "zero extent emits every leaf")
	assert.Less(t, coarse, fine/4)
	assert.Equal(t, 1, whole, "huge extent collapses to the root")
}

func TestClusterTreeCentroid(t *testing.T) {
	bound := nodebound{width: mgl64.Vec3{100, 100, 100}}
	stars := []Star{
		testStarAt(-10, 0, 0, 1),
		testStarAt(30, 0, 0, 3),
	}
	root := buildClusterTree(stars, bound)

	var pos mgl64.Vec3
	var lum float64
	var count int
	root.aggregate(1e9, func(p mgl64.Vec3, l float64, _ mgl64.Vec3, c int) {
		pos, lum, count = p, l, c
	})

	assert.Equal(t, 2, count)
	assert.InDelta(t, 4.0, lum, 1e-12)
	// luminance-weighted: (-10*1 + 30*3) / 4 = 20
	assert.InDelta(t, 20.0, pos.X(), 1e-9)
	assert.InDelta(t, 0.0, pos.Y(), 1e-9)
}

func TestClusterTreeDropsOutOfBounds(t *testing.T) {
	bound := nodebound{width: mgl64.Vec3{10, 10, 10}}
	stars := []Star{
		testStarAt(1, 1, 1, 1),
		testStarAt(500, 0, 0, 1), // outside
	}
	root := buildClusterTree(stars, bound)

	count := 0
	root.aggregate(1e9, func(_ mgl64.Vec3, _ float64, _ mgl64.Vec3, c int) { count += c })
	assert.Equal(t, 1, count)
}

func TestOctantBound(t *testing.T) {
	parent := nodebound{center: mgl64.Vec3{0, 0, 0}, width: mgl64.Vec3{8, 8, 8}}
	tests := []struct {
		oct  octant
		want mgl64.Vec3
	}{
		{LLL, mgl64.Vec3{-2, -2, -2}},
		{LLH, mgl64.Vec3{2, -2, -2}},
		{LHL, mgl64.Vec3{-2, 2, -2}},
		{HLL, mgl64.Vec3{-2, -2, 2}},
		{HHH, mgl64.Vec3{2, 2, 2}},
	}
	for _, tt := range tests {
		got := octantBound(parent, tt.oct)
		assert.Equal(t, tt.want, got.center, "octant %03b", tt.oct)
		assert.Equal(t, mgl64.Vec3{4, 4, 4}, got.width)
	}

	t.Run("points land in their octant", func(t *testing.T) {
		p := mgl64.Vec3{1, -1, 3}
		oct := octantBits(parent.center, p)
		require.True(t, octantBound(parent, oct).contains(p))
	})
}
