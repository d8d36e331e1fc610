package main

import (
	"math"
	"math/rand"
)

// starClass is one row of the stellar classification table
// (O, B, A, F, G, K, M).
type starClass struct {
	R, G, B     float64
	Probability float64
}

// probabilities sum to 1; cumulative selection falls through to M.
var starClasses = [7]starClass{
	{0.6, 0.7, 1.0, 0.05}, // O - blue, very hot, rare
	{0.7, 0.8, 1.0, 0.10}, // B - blue-white
	{0.9, 0.9, 1.0, 0.15}, // A - white
	{1.0, 1.0, 0.9, 0.20}, // F - yellow-white
	{1.0, 1.0, 0.7, 0.25}, // G - yellow
	{1.0, 0.8, 0.6, 0.15}, // K - orange
	{1.0, 0.6, 0.5, 0.10}, // M - red, cool, common
}

// Star is one point entity of the star field.
type Star struct {
	orbit
	R, G, B    float64
	Brightness float64
}

// probability that a star is placed in the bulge rather than the disk.
const starBulgeProbability = 0.15

// generateStarField produces exactly cfg.NumStars stars, deterministically
// for a fixed seed. Disk stars run the spiral-arm rejection loop and get a
// small Gaussian radial jitter; bulge stars are drawn uniformly by volume.
func generateStarField(cfg *GalaxyConfig) []Star {
	rng := rand.New(rand.NewSource(cfg.Seed))
	stars := make([]Star, 0, cfg.NumStars)

	for i := 0; i < cfg.NumStars; i++ {
		var star Star

		if rng.Float64() < starBulgeProbability {
			x, y, z := sampleBulgePosition(rng, cfg.BulgeRadius)
			star.X, star.Y, star.Z = x, y, z
			star.Radius = math.Hypot(x, z)
			star.Angle = wrapAngle(math.Atan2(z, x))
			star.AngularVelocity = bulgeAngularVelocity(cfg.BulgeRadius, cfg.RotationSpeed)
		} else {
			p := sampleDiskPlacement(rng, cfg, cfg.DiskRadius, true)

			// radial jitter folded into the orbital radius so the
			// radius/position invariant holds from creation on
			radius := p.radius + rng.NormFloat64()*15.0*0.3
			if radius < minOrbitRadius {
				radius = minOrbitRadius
			}

			star.Radius = radius
			star.Angle = p.theta
			star.X = radius * math.Cos(p.theta)
			star.Z = radius * math.Sin(p.theta)
			star.Y = rng.NormFloat64() * diskHeightScale(radius, cfg)
			star.AngularVelocity = diskAngularVelocity(radius, cfg.BulgeRadius, cfg.RotationSpeed)
		}

		star.R, star.G, star.B = pickStarClass(rng.Float64())
		star.Brightness = starBrightness(rng, &star, cfg)

		stars = append(stars, star)
	}
	return stars
}

// pickStarClass selects a classification row by cumulative probability,
// defaulting to M if round-off leaves no match.
func pickStarClass(roll float64) (r, g, b float64) {
	cumulative := 0.0
	selected := len(starClasses) - 1
	for i := range starClasses {
		cumulative += starClasses[i].Probability
		if roll <= cumulative {
			selected = i
			break
		}
	}
	c := starClasses[selected]
	return c.R, c.G, c.B
}

// starBrightness draws the base brightness range by region and boosts disk
// stars sitting near a spiral arm (young, hot populations) by up to 30%,
// clamped to 1.
func starBrightness(rng *rand.Rand, star *Star, cfg *GalaxyConfig) float64 {
	distFromCenter := math.Sqrt(star.X*star.X + star.Y*star.Y + star.Z*star.Z)
	if distFromCenter < cfg.BulgeRadius {
		// bulge stars are older and dimmer
		return 0.4 + rng.Float64()*0.4
	}

	brightness := 0.3 + rng.Float64()*0.7
	dist := minArmDistance(star.Radius, star.Angle, cfg)
	brightness += armProximity(dist, cfg.ArmWidth, 2) * 0.3
	if brightness > 1 {
		brightness = 1
	}
	return brightness
}

// updateStars advances every star's orbital angle by its angular velocity.
func updateStars(stars []Star, dt float64) {
	for i := range stars {
		stars[i].advance(dt)
	}
}
