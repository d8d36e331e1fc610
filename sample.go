package main

import (
	"math"
	"math/rand"
)

/*

sampling kernels shared by the population generators

*/

// per-candidate cap on placement retries during spiral-arm rejection
// sampling. when exhausted the last candidate is accepted, so generation
// always terminates and output counts are exact.
const maxPlacementRetries = 1000

// wrapAngle wraps a into [0, 2*pi).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
		// adding 2*pi to a tiny negative rounds to exactly 2*pi
		if a >= 2*math.Pi {
			a = 0
		}
	}
	return a
}

// sampleBulgePosition draws a point uniformly (by volume) from a sphere of
// the given radius. Azimuth is uniform, the polar angle uses acos(2u-1) for
// uniform solid-angle coverage, and the radial distance uses the cube-root
// inversion of the r^2 dr volume element.
func sampleBulgePosition(rng *rand.Rand, bulgeRadius float64) (x, y, z float64) {
	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(2*rng.Float64() - 1)
	r := math.Cbrt(rng.Float64()) * bulgeRadius

	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	x = r * sinPhi * cosTheta
	y = r * sinPhi * sinTheta
	z = r * cosPhi
	return
}

// invertDiskCDF solves F(r) = u for the exponential-disk radial CDF
//
//	F(r) = 1 - (1 + r/rd) * exp(-r/rd)
//
// which follows from the surface density Sigma(r) ~ exp(-r/rd) weighted by
// the r dr area element. Newton's method starts from the closed-form inverse
// of a plain exponential and stops early if the derivative underflows,
// keeping the last estimate. The second return reports convergence.
func invertDiskCDF(u, diskScale float64) (float64, bool) {
	// the 1e-8 keeps the log finite at u=1 but turns tiny u slightly
	// negative, so clamp
	r := -diskScale * math.Log(1-u+1e-8)
	if r < 0 {
		r = 0
	}
	for it := 0; it < 10; it++ {
		t := r / diskScale
		expNegT := math.Exp(-t)
		g := 1 - (1+t)*expNegT - u
		if math.Abs(g) < 1e-6 {
			return r, true
		}
		// dF/dr = (r / rd^2) * exp(-r/rd)
		dFdr := r / (diskScale * diskScale) * expNegT
		if dFdr <= 1e-12 {
			return r, false
		}
		r -= g / dFdr
		if r < 0 {
			return 0, false
		}
	}
	return r, false
}

// sampleDiskRadius draws an orbital radius from the exponential disk with
// scale length diskScale.
func sampleDiskRadius(rng *rand.Rand, diskScale float64) (float64, bool) {
	return invertDiskCDF(rng.Float64(), diskScale)
}

// minArmDistance returns the linear distance from the polar point
// (radius, theta) to the nearest spiral arm. Each of the arms follows the
// logarithmic spiral r = bulgeRadius * e^(tightness*(theta-armOffset)),
// inverted here to find the arm azimuth at the given radius.
func minArmDistance(radius, theta float64, cfg *GalaxyConfig) float64 {
	if radius <= 0 {
		return math.MaxFloat64
	}
	minDist := math.MaxFloat64
	for arm := 0; arm < cfg.NumSpiralArms; arm++ {
		armOffset := float64(arm) * 2 * math.Pi / float64(cfg.NumSpiralArms)
		spiralTheta := math.Log(radius/cfg.BulgeRadius)/cfg.SpiralTightness + armOffset

		// signed angular difference wrapped into [-pi, pi]
		diff := math.Mod(theta-spiralTheta, 2*math.Pi)
		if diff > math.Pi {
			diff -= 2 * math.Pi
		} else if diff < -math.Pi {
			diff += 2 * math.Pi
		}

		dist := math.Abs(diff * radius)
		minDist = math.Min(minDist, dist)
	}
	return minDist
}

// armProximity maps an arm distance to a weight in (0,1], 1 on the arm
// ridge. widthScale widens the falloff (the brightness boost uses 2x).
func armProximity(armDistance, armWidth, widthScale float64) float64 {
	w := armWidth * widthScale
	return math.Exp(-armDistance * armDistance / (w * w))
}

// armAcceptance is the rejection-sampling acceptance probability for a disk
// candidate with the given arm proximity. With no density boost every
// candidate is accepted. Proximities under 0.3 take an extra 0.2 factor,
// which deepens the inter-arm voids.
func armAcceptance(proximity, densityBoost float64) float64 {
	if densityBoost == 0 {
		return 1
	}
	p := (1 + proximity*densityBoost) / (1 + densityBoost)
	if proximity < 0.3 {
		p *= 0.2
	}
	return p
}

// diskPlacement is one accepted disk-population candidate.
type diskPlacement struct {
	radius, theta float64
	armDistance   float64
}

// sampleDiskPlacement draws radius/azimuth candidates from the exponential
// disk until the spiral-arm rejection test accepts one, up to
// maxPlacementRetries, after which the last candidate is accepted. maxRadius
// clamps the exponential tail. With withArms false the spiral field is
// skipped entirely (black holes are not spiral tracers).
func sampleDiskPlacement(rng *rand.Rand, cfg *GalaxyConfig, maxRadius float64, withArms bool) diskPlacement {
	diskScale := cfg.DiskRadius * 0.25
	for try := 0; ; try++ {
		r, _ := sampleDiskRadius(rng, diskScale)
		if r > maxRadius {
			r = maxRadius
		}
		theta := rng.Float64() * 2 * math.Pi
		if !withArms {
			return diskPlacement{radius: r, theta: theta}
		}
		dist := minArmDistance(r, theta, cfg)
		proximity := armProximity(dist, cfg.ArmWidth, 1)
		if try >= maxPlacementRetries || rng.Float64() <= armAcceptance(proximity, cfg.ArmDensityBoost) {
			return diskPlacement{radius: r, theta: theta, armDistance: dist}
		}
	}
}

// diskAngularVelocity is the differential (Keplerian-like) rotation curve of
// the disk: outer entities rotate slower.
func diskAngularVelocity(radius, bulgeRadius, speed float64) float64 {
	if radius < minOrbitRadius {
		radius = minOrbitRadius
	}
	return speed / (math.Sqrt(radius/bulgeRadius) * (radius + 1))
}

// bulgeAngularVelocity is the slow, roughly rigid rotation of the bulge.
func bulgeAngularVelocity(bulgeRadius, speed float64) float64 {
	return speed * 0.5 / (bulgeRadius + 1)
}

// minOrbitRadius keeps a degenerate zero radius from blowing up the
// rotation curve.
const minOrbitRadius = 1e-6

// diskHeightScale tapers the vertical scatter so the disk thins toward the
// rim.
func diskHeightScale(radius float64, cfg *GalaxyConfig) float64 {
	return cfg.DiskHeight * (1 - 0.5*radius/cfg.DiskRadius)
}
