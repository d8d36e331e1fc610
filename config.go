package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// GalaxyConfig holds the structural parameters of the galaxy. It is
// immutable for the lifetime of a generated scene.
type GalaxyConfig struct {
	NumStars        int     `toml:"num_stars"`
	NumSpiralArms   int     `toml:"num_spiral_arms"`
	SpiralTightness float64 `toml:"spiral_tightness"` // log-spiral pitch, divisor in the arm inversion
	ArmWidth        float64 `toml:"arm_width"`
	ArmDensityBoost float64 `toml:"arm_density_boost"`
	DiskRadius      float64 `toml:"disk_radius"`
	BulgeRadius     float64 `toml:"bulge_radius"`
	DiskHeight      float64 `toml:"disk_height"`
	BulgeHeight     float64 `toml:"bulge_height"`
	RotationSpeed   float64 `toml:"rotation_speed"`
	Seed            int64   `toml:"seed"`
}

// BlackHoleConfig holds the black hole population parameters.
type BlackHoleConfig struct {
	EnableSupermassive    bool    `toml:"enable_supermassive"`
	NumStellar            int     `toml:"num_stellar"`
	AccretionDiskFraction float64 `toml:"accretion_disk_fraction"`
}

// GasCloudConfig holds the gas cloud population parameters.
type GasCloudConfig struct {
	NumClouds  int     `toml:"num_clouds"`
	MinExtent  float64 `toml:"min_extent"`
	MaxExtent  float64 `toml:"max_extent"`
	MinOpacity float64 `toml:"min_opacity"`
	MaxOpacity float64 `toml:"max_opacity"`
}

// SimConfig is the full configuration for one run.
type SimConfig struct {
	Galaxy     GalaxyConfig    `toml:"galaxy"`
	BlackHoles BlackHoleConfig `toml:"black_holes"`
	GasClouds  GasCloudConfig  `toml:"gas_clouds"`
}

// DefaultSimConfig returns the documented defaults for every option.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Galaxy: GalaxyConfig{
			NumStars:        1000000,
			NumSpiralArms:   2,
			SpiralTightness: 0.3,
			ArmWidth:        60.0,
			ArmDensityBoost: 10.0,
			DiskRadius:      800.0,
			BulgeRadius:     150.0,
			DiskHeight:      50.0,
			BulgeHeight:     100.0,
			RotationSpeed:   1.0,
			Seed:            42,
		},
		BlackHoles: BlackHoleConfig{
			EnableSupermassive:    true,
			NumStellar:            50,
			AccretionDiskFraction: 0.3,
		},
		GasClouds: GasCloudConfig{
			NumClouds:  500,
			MinExtent:  5.0,
			MaxExtent:  40.0,
			MinOpacity: 0.1,
			MaxOpacity: 0.5,
		},
	}
}

// LoadSimConfig returns the defaults overlaid with values from the TOML file
// at path. An empty path returns the plain defaults.
func LoadSimConfig(path string) (SimConfig, error) {
	cfg := DefaultSimConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the structural invariants the sampling kernels rely on.
func (c *GalaxyConfig) Validate() error {
	switch {
	case c.NumStars < 0:
		return errors.New("num_stars must be >= 0")
	case c.NumSpiralArms < 1:
		return errors.New("num_spiral_arms must be >= 1")
	case c.SpiralTightness == 0:
		return errors.New("spiral_tightness must be nonzero")
	case c.ArmWidth <= 0:
		return errors.New("arm_width must be > 0")
	case c.ArmDensityBoost < 0:
		return errors.New("arm_density_boost must be >= 0")
	case c.DiskRadius <= 0:
		return errors.New("disk_radius must be > 0")
	case c.BulgeRadius <= 0:
		return errors.New("bulge_radius must be > 0")
	case c.DiskHeight <= 0:
		return errors.New("disk_height must be > 0")
	case c.BulgeHeight <= 0:
		return errors.New("bulge_height must be > 0")
	}
	return nil
}

func (c *BlackHoleConfig) Validate() error {
	switch {
	case c.NumStellar < 0:
		return errors.New("num_stellar must be >= 0")
	case c.AccretionDiskFraction < 0 || c.AccretionDiskFraction > 1:
		return errors.New("accretion_disk_fraction must be in [0,1]")
	}
	return nil
}

func (c *GasCloudConfig) Validate() error {
	switch {
	case c.NumClouds < 0:
		return errors.New("num_clouds must be >= 0")
	case c.MinExtent <= 0 || c.MaxExtent < c.MinExtent:
		return errors.New("cloud extent range is invalid")
	case c.MinOpacity < 0 || c.MaxOpacity > 1 || c.MaxOpacity < c.MinOpacity:
		return errors.New("cloud opacity range is invalid")
	}
	return nil
}

// Validate checks every section.
func (c *SimConfig) Validate() error {
	if err := c.Galaxy.Validate(); err != nil {
		return err
	}
	if err := c.BlackHoles.Validate(); err != nil {
		return err
	}
	return c.GasClouds.Validate()
}
