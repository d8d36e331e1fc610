package main

import (
	"math"
	"math/rand"
)

// planetSpec is one row of the fixed planet catalog. Orbit radii and sizes
// are scaled from real solar-system values at generation time.
type planetSpec struct {
	name    string
	orbitAU float64 // semi-major axis in AU
	size    float64 // radius relative to Earth
	r, g, b float64
}

var planetCatalog = [8]planetSpec{
	{"Mercury", 0.39, 0.383, 0.7, 0.7, 0.7},
	{"Venus", 0.72, 0.949, 0.9, 0.8, 0.6},
	{"Earth", 1.00, 1.000, 0.3, 0.5, 0.8},
	{"Mars", 1.52, 0.532, 0.8, 0.4, 0.3},
	{"Jupiter", 5.20, 11.21, 0.9, 0.8, 0.6},
	{"Saturn", 9.54, 9.45, 0.9, 0.9, 0.7},
	{"Uranus", 19.2, 4.01, 0.6, 0.8, 0.9},
	{"Neptune", 30.1, 3.88, 0.4, 0.5, 0.9},
}

const (
	planetOrbitScale = 0.15
	planetSizeScale  = 0.01
	// k in the Keplerian-like speed k / sqrt(orbitRadius)
	planetSpeedConstant = 0.0005

	// anchor annulus, clear of the bulge and the disk edge
	systemMinRadius      = 200.0
	systemRadiusSpan     = 400.0
	systemVerticalJitter = 20.0

	sunRadius = 2.0
)

// Planet orbits the solar-system anchor on a circular orbit.
type Planet struct {
	X, Y, Z      float64
	OrbitRadius  float64
	Radius       float64
	Angle        float64 // radians in [0, 2*pi)
	OrbitalSpeed float64
	R, G, B      float64
}

// Sun is the anchor star of the generated system.
type Sun struct {
	X, Y, Z float64
	Radius  float64
}

// SolarSystem is the single planetary system embedded in the galaxy. The
// anchor point never moves after generation.
type SolarSystem struct {
	CenterX, CenterY, CenterZ float64
	Sun                       Sun
	Planets                   []Planet
}

// generateSolarSystem places the system at a random point in the disk
// annulus and lays out the planet catalog on circular orbits,
// deterministically for a fixed seed.
func generateSolarSystem(seed int64) *SolarSystem {
	rng := rand.New(rand.NewSource(seed))

	radius := systemMinRadius + rng.Float64()*systemRadiusSpan
	angle := rng.Float64() * 2 * math.Pi
	verticalOffset := (rng.Float64() - 0.5) * systemVerticalJitter

	sys := &SolarSystem{
		CenterX: radius * math.Cos(angle),
		CenterY: verticalOffset,
		CenterZ: radius * math.Sin(angle),
	}
	sys.Sun = Sun{X: sys.CenterX, Y: sys.CenterY, Z: sys.CenterZ, Radius: sunRadius}

	sys.Planets = make([]Planet, 0, len(planetCatalog))
	for _, spec := range planetCatalog {
		p := Planet{
			OrbitRadius: spec.orbitAU * planetOrbitScale,
			Radius:      spec.size * planetSizeScale,
			R:           spec.r,
			G:           spec.g,
			B:           spec.b,
			Angle:       rng.Float64() * 2 * math.Pi,
		}
		p.OrbitalSpeed = planetSpeedConstant / math.Sqrt(p.OrbitRadius)
		p.X = sys.Sun.X + p.OrbitRadius*math.Cos(p.Angle)
		p.Y = sys.Sun.Y
		p.Z = sys.Sun.Z + p.OrbitRadius*math.Sin(p.Angle)
		sys.Planets = append(sys.Planets, p)
	}
	return sys
}

// updatePlanets advances every planet around the (static) anchor.
func (sys *SolarSystem) updatePlanets(dt float64) {
	for i := range sys.Planets {
		p := &sys.Planets[i]
		p.Angle = wrapAngle(p.Angle + p.OrbitalSpeed*dt)
		p.X = sys.Sun.X + p.OrbitRadius*math.Cos(p.Angle)
		p.Z = sys.Sun.Z + p.OrbitRadius*math.Sin(p.Angle)
	}
}

/*

camera-derived render zone

*/

// Camera is the read-only view parameter set the renderer consumes each
// frame.
type Camera struct {
	PosX, PosY, PosZ float64
	Yaw, Pitch       float64
	ZoomLevel        float64
}

// RenderZone is the per-frame detail tier derived from camera zoom. It is
// recomputed every frame, never stored.
type RenderZone struct {
	ZoomLevel            float64
	DistanceFromSystem   float64
	SolarSystemScaleMult float64
	StarBrightnessFade   float64
	RenderOrbits         bool
}

const (
	galaxyZoomMax = 0.1
	systemZoomMin = 100.0
	// system-local scale blow-up so planets are visible at all
	systemScaleMultiplier = 50.0
)

// calculateRenderZone maps camera zoom to a detail tier: galaxy-wide below
// galaxyZoomMax, system-local above systemZoomMin, and a cubic ease across
// the transitional band.
func calculateRenderZone(cam *Camera, sys *SolarSystem) RenderZone {
	zone := RenderZone{
		ZoomLevel:          cam.ZoomLevel,
		StarBrightnessFade: 1.0,
	}
	if sys != nil {
		dx := cam.PosX - sys.CenterX
		dy := cam.PosY - sys.CenterY
		dz := cam.PosZ - sys.CenterZ
		zone.DistanceFromSystem = math.Sqrt(dx*dx + dy*dy + dz*dz)
	}

	switch {
	case cam.ZoomLevel < galaxyZoomMax:
		zone.SolarSystemScaleMult = 1.0
	case cam.ZoomLevel < systemZoomMin:
		t := (cam.ZoomLevel - galaxyZoomMax) / (systemZoomMin - galaxyZoomMax)
		t = t * t * t
		zone.SolarSystemScaleMult = 1.0 + (systemScaleMultiplier-1.0)*t
	default:
		zone.SolarSystemScaleMult = systemScaleMultiplier
		zone.RenderOrbits = true
	}
	return zone
}
