package main

import "math"

// orbit is the kinematic state shared by every orbiting point entity. The
// vertical offset Y is fixed at generation time; only the angle and the
// derived x/z change per frame.
type orbit struct {
	X, Y, Z         float64
	Radius          float64 // orbital radius in the x-z plane
	Angle           float64 // radians, wrapped to [0, 2*pi)
	AngularVelocity float64 // radians per time unit, sign = direction
}

// advance rotates the entity by one time step and rederives x/z from the
// polar state. O(1), no shared state.
func (o *orbit) advance(dt float64) {
	o.Angle = wrapAngle(o.Angle + o.AngularVelocity*dt)
	o.X = o.Radius * math.Cos(o.Angle)
	o.Z = o.Radius * math.Sin(o.Angle)
}

// GalaxyScene owns every generated population. It is created once from a
// seeded configuration and mutated each frame only through Update.
type GalaxyScene struct {
	Config SimConfig

	Stars      []Star
	BlackHoles []BlackHole
	GasClouds  []GasCloud
	System     *SolarSystem
}

// per-population seed offsets, so populations draw from independent
// deterministic streams
const (
	seedOffsetBlackHoles = 1
	seedOffsetGasClouds  = 2
	seedOffsetSystem     = 3
)

// NewGalaxyScene generates all populations from cfg in one blocking pass.
func NewGalaxyScene(cfg SimConfig) *GalaxyScene {
	s := &GalaxyScene{Config: cfg}
	s.Generate()
	return s
}

// Generate (re)builds every population from the configured seed, replacing
// any existing collections wholesale.
func (s *GalaxyScene) Generate() {
	seed := s.Config.Galaxy.Seed
	s.Stars = generateStarField(&s.Config.Galaxy)
	s.BlackHoles = generateBlackHoles(&s.Config.BlackHoles, &s.Config.Galaxy, seed+seedOffsetBlackHoles)
	s.GasClouds = generateGasClouds(&s.Config.GasClouds, &s.Config.Galaxy, seed+seedOffsetGasClouds)
	s.System = generateSolarSystem(seed + seedOffsetSystem)
}

// Update advances every population by dt. Populations are disjoint, so a
// caller may parallelize across them, never within one.
func (s *GalaxyScene) Update(dt float64) {
	updateStars(s.Stars, dt)
	updateBlackHoles(s.BlackHoles, dt)
	updateGasClouds(s.GasClouds, dt)
	s.System.updatePlanets(dt)
}
