package main

import (
	"math"
	"math/rand"
)

// nebula tints: H II red, reflection blue, dusty violet
var cloudTints = [3][3]float64{
	{0.90, 0.35, 0.35},
	{0.40, 0.55, 0.90},
	{0.75, 0.55, 0.85},
}

// GasCloud is a drifting extended cloud. Placement shares the star field's
// kernels; only the visual attributes differ.
type GasCloud struct {
	orbit
	Extent  float64 // characteristic size in sim units
	Opacity float64
	R, G, B float64
}

// clouds concentrate in the disk more strongly than stars do
const cloudBulgeProbability = 0.1

// generateGasClouds produces exactly cfg.NumClouds clouds, deterministically
// for a fixed seed. Clouds trace the spiral arms like stars.
func generateGasClouds(cfg *GasCloudConfig, galaxy *GalaxyConfig, seed int64) []GasCloud {
	rng := rand.New(rand.NewSource(seed))
	clouds := make([]GasCloud, 0, cfg.NumClouds)

	for i := 0; i < cfg.NumClouds; i++ {
		var cloud GasCloud

		if rng.Float64() < cloudBulgeProbability {
			x, y, z := sampleBulgePosition(rng, galaxy.BulgeRadius)
			cloud.X, cloud.Y, cloud.Z = x, y, z
			cloud.Radius = math.Hypot(x, z)
			cloud.Angle = wrapAngle(math.Atan2(z, x))
			cloud.AngularVelocity = bulgeAngularVelocity(galaxy.BulgeRadius, galaxy.RotationSpeed)
		} else {
			p := sampleDiskPlacement(rng, galaxy, galaxy.DiskRadius*1.5, true)
			cloud.Radius = p.radius
			cloud.Angle = p.theta
			cloud.X = p.radius * math.Cos(p.theta)
			cloud.Z = p.radius * math.Sin(p.theta)
			cloud.Y = rng.NormFloat64() * diskHeightScale(math.Min(p.radius, galaxy.DiskRadius), galaxy)
			cloud.AngularVelocity = diskAngularVelocity(p.radius, galaxy.BulgeRadius, galaxy.RotationSpeed)
		}

		cloud.Extent = cfg.MinExtent + rng.Float64()*(cfg.MaxExtent-cfg.MinExtent)
		cloud.Opacity = cfg.MinOpacity + rng.Float64()*(cfg.MaxOpacity-cfg.MinOpacity)
		tint := cloudTints[rng.Intn(len(cloudTints))]
		cloud.R, cloud.G, cloud.B = tint[0], tint[1], tint[2]

		clouds = append(clouds, cloud)
	}
	return clouds
}

// updateGasClouds advances every cloud's orbital angle.
func updateGasClouds(clouds []GasCloud, dt float64) {
	for i := range clouds {
		clouds[i].advance(dt)
	}
}
