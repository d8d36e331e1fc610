package main

import (
	"math"
	"math/rand"
)

type blackHoleKind uint8

const (
	supermassive blackHoleKind = iota
	stellar
)

const (
	// Schwarzschild radius in km per solar mass: r_s = 2GM/c^2.
	schwarzschildKmPerSolarMass = 2.95
	kmToSimUnits                = 1.0e-8
	// event horizons are far too small to see at galactic scale
	visualScaleFactor = 3.0

	supermassiveMass = 4.3e6 // solar masses

	// probability that a stellar hole sits in the bulge (denser remnant
	// population than the star field's 15%)
	blackHoleBulgeProbability = 0.2

	// vertical scatter of disk-population holes
	blackHoleDiskScatter = 30.0
)

// BlackHole is a supermassive or stellar-mass black hole.
type BlackHole struct {
	orbit
	Kind blackHoleKind

	Mass               float64 // solar masses
	EventHorizonRadius float64 // sim units

	HasAccretionDisk         bool
	AccretionDiskInnerRadius float64
	AccretionDiskOuterRadius float64
	DiskRotationAngle        float64 // visual-only phase, wrapped to [0, 2*pi)
	DiskRotationSpeed        float64
}

// schwarzschildRadius returns the event-horizon radius in km. Linear in
// mass by definition.
func schwarzschildRadius(solarMasses float64) float64 {
	return schwarzschildKmPerSolarMass * solarMasses
}

// eventHorizonSimRadius scales the Schwarzschild radius into simulation
// units.
func eventHorizonSimRadius(solarMasses float64) float64 {
	return schwarzschildRadius(solarMasses) * kmToSimUnits * visualScaleFactor
}

// stellarMass maps a uniform roll to a mass in [5,100] solar masses. The
// convex curve biases the population toward low masses.
func stellarMass(roll float64) float64 {
	return 5 + roll*roll*95
}

// generateBlackHoles produces at most one supermassive hole at the galactic
// origin plus cfg.NumStellar stellar-mass holes, deterministically for a
// fixed seed. Stellar holes reuse the bulge/disk kernels without spiral-arm
// rejection.
func generateBlackHoles(cfg *BlackHoleConfig, galaxy *GalaxyConfig, seed int64) []BlackHole {
	rng := rand.New(rand.NewSource(seed))
	holes := make([]BlackHole, 0, cfg.NumStellar+1)

	if cfg.EnableSupermassive {
		smbh := BlackHole{
			Kind: supermassive,
			Mass: supermassiveMass,
		}
		smbh.EventHorizonRadius = eventHorizonSimRadius(smbh.Mass)
		smbh.HasAccretionDisk = true
		smbh.AccretionDiskInnerRadius = smbh.EventHorizonRadius * 3
		smbh.AccretionDiskOuterRadius = smbh.EventHorizonRadius * 20
		smbh.DiskRotationSpeed = 0.5
		holes = append(holes, smbh)
	}

	for i := 0; i < cfg.NumStellar; i++ {
		bh := BlackHole{Kind: stellar}
		bh.Mass = stellarMass(rng.Float64())
		bh.EventHorizonRadius = eventHorizonSimRadius(bh.Mass)

		bh.HasAccretionDisk = rng.Float64() < cfg.AccretionDiskFraction
		if bh.HasAccretionDisk {
			bh.AccretionDiskInnerRadius = bh.EventHorizonRadius * 3
			bh.AccretionDiskOuterRadius = bh.EventHorizonRadius * 15
			bh.DiskRotationSpeed = 2 + rng.Float64()*3
		}
		bh.DiskRotationAngle = rng.Float64() * 2 * math.Pi

		if rng.Float64() < blackHoleBulgeProbability {
			x, y, z := sampleBulgePosition(rng, galaxy.BulgeRadius)
			bh.X, bh.Y, bh.Z = x, y, z
			bh.Radius = math.Hypot(x, z)
			bh.Angle = wrapAngle(math.Atan2(z, x))
			bh.AngularVelocity = 0.3 / (galaxy.BulgeRadius + 1)
		} else {
			p := sampleDiskPlacement(rng, galaxy, galaxy.DiskRadius*1.5, false)
			bh.Radius = p.radius
			bh.Angle = p.theta
			bh.X = p.radius * math.Cos(p.theta)
			bh.Z = p.radius * math.Sin(p.theta)
			bh.Y = rng.NormFloat64() * blackHoleDiskScatter
			bh.AngularVelocity = diskAngularVelocity(p.radius, galaxy.BulgeRadius, 0.5)
		}

		holes = append(holes, bh)
	}
	return holes
}

// updateBlackHoles advances accretion-disk phases and, for stellar holes,
// the orbital angle. The supermassive hole never moves.
func updateBlackHoles(holes []BlackHole, dt float64) {
	for i := range holes {
		bh := &holes[i]
		if bh.HasAccretionDisk {
			bh.DiskRotationAngle = wrapAngle(bh.DiskRotationAngle + bh.DiskRotationSpeed*dt)
		}
		if bh.Kind == stellar {
			bh.advance(dt)
		}
	}
}
