// Package config provides YAML-based tuning for the lane runner, with
// embedded defaults, named presets and environment overrides.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-lanes/internal/runner"
)

// ErrInvalidTuning is wrapped by every validation failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// LanesConfig contains all configuration for the lane runner.
type LanesConfig struct {
	Simulation LanesSimulation `yaml:"simulation"`
	Player     LanesPlayer     `yaml:"player"`
}

// LanesSimulation defines the obstacle stream and scoring parameters.
type LanesSimulation struct {
	Speed           int     `yaml:"speed"            env:"LANES_SPEED"`
	SpawnChance     float64 `yaml:"spawn_chance"     env:"LANES_SPAWN_CHANCE"`
	SpawnDistance   int     `yaml:"spawn_distance"`
	SpawnGuard      int     `yaml:"spawn_guard"`
	PruneBuffer     int     `yaml:"prune_buffer"`
	ClearanceHeight int     `yaml:"clearance_height"`
	TrackWrap       float64 `yaml:"track_wrap"`
	TrackScroll     float64 `yaml:"track_scroll"`
}

// LanesPlayer defines jump physics and the starting lane.
type LanesPlayer struct {
	LaunchVelocity int `yaml:"launch_velocity" env:"LANES_LAUNCH_VELOCITY"`
	FallFloor      int `yaml:"fall_floor"      env:"LANES_FALL_FLOOR"`
	StartLane      int `yaml:"start_lane"`
}

// Tuning converts the config into simulation constants.
func (c LanesConfig) Tuning() runner.Tuning {
	return runner.Tuning{
		Speed:           c.Simulation.Speed,
		SpawnChance:     c.Simulation.SpawnChance,
		SpawnDistance:   c.Simulation.SpawnDistance,
		SpawnGuard:      c.Simulation.SpawnGuard,
		PruneBuffer:     c.Simulation.PruneBuffer,
		ClearanceHeight: c.Simulation.ClearanceHeight,
		TrackWrap:       c.Simulation.TrackWrap,
		TrackScroll:     c.Simulation.TrackScroll,
		LaunchVelocity:  c.Player.LaunchVelocity,
		FallFloor:       c.Player.FallFloor,
		StartLane:       runner.Lane(c.Player.StartLane),
	}
}

// Validate rejects configurations the simulation cannot run sensibly.
func (c LanesConfig) Validate() error {
	sim, p := c.Simulation, c.Player
	switch {
	case sim.Speed <= 0:
		return fmt.Errorf("%w: speed must be positive, got %d", ErrInvalidTuning, sim.Speed)
	case sim.SpawnChance < 0 || sim.SpawnChance > 1:
		return fmt.Errorf("%w: spawn_chance must be in [0, 1], got %g", ErrInvalidTuning, sim.SpawnChance)
	case sim.SpawnDistance <= 0:
		return fmt.Errorf("%w: spawn_distance must be positive, got %d", ErrInvalidTuning, sim.SpawnDistance)
	case sim.SpawnGuard < 0 || sim.SpawnGuard >= sim.SpawnDistance:
		return fmt.Errorf("%w: spawn_guard must be in [0, spawn_distance), got %d", ErrInvalidTuning, sim.SpawnGuard)
	case sim.PruneBuffer < 0:
		return fmt.Errorf("%w: prune_buffer must not be negative, got %d", ErrInvalidTuning, sim.PruneBuffer)
	case sim.ClearanceHeight < 0:
		return fmt.Errorf("%w: clearance_height must not be negative, got %d", ErrInvalidTuning, sim.ClearanceHeight)
	case sim.TrackWrap <= 0:
		return fmt.Errorf("%w: track_wrap must be positive, got %g", ErrInvalidTuning, sim.TrackWrap)
	case p.LaunchVelocity <= 0:
		return fmt.Errorf("%w: launch_velocity must be positive, got %d", ErrInvalidTuning, p.LaunchVelocity)
	case p.FallFloor < p.LaunchVelocity:
		// A lower floor freezes the player mid-air.
		return fmt.Errorf("%w: fall_floor must be at least launch_velocity, got %d < %d", ErrInvalidTuning, p.FallFloor, p.LaunchVelocity)
	case !runner.Lane(p.StartLane).Valid():
		return fmt.Errorf("%w: start_lane must be 0, 1 or 2, got %d", ErrInvalidTuning, p.StartLane)
	}
	return nil
}

// Preset names one of the two shipped tunings.
type Preset string

const (
	PresetClassic Preset = "classic"
	PresetTight   Preset = "tight"
)

// ParsePreset resolves a preset name. An empty name means no preset.
func ParsePreset(name string) (Preset, error) {
	switch Preset(name) {
	case "", PresetClassic, PresetTight:
		return Preset(name), nil
	default:
		return "", fmt.Errorf("config: unknown preset %q (want classic or tight)", name)
	}
}

// ApplyPreset overwrites the speed, spawn chance and jump physics with the
// preset's values. Other fields are left alone.
func ApplyPreset(cfg *LanesConfig, preset Preset) {
	var t runner.Tuning
	switch preset {
	case PresetClassic:
		t = runner.ClassicTuning()
	case PresetTight:
		t = runner.TightTuning()
	default:
		return
	}
	cfg.Simulation.Speed = t.Speed
	cfg.Simulation.SpawnChance = t.SpawnChance
	cfg.Player.LaunchVelocity = t.LaunchVelocity
	cfg.Player.FallFloor = t.FallFloor
}
