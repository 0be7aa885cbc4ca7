package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-lanes/internal/runner"
)

//go:embed defaults/lanes.yaml
var defaultLanesYAML []byte

// DefaultLanesConfig returns the hardcoded classic configuration.
func DefaultLanesConfig() LanesConfig {
	t := runner.ClassicTuning()
	return LanesConfig{
		Simulation: LanesSimulation{
			Speed:           t.Speed,
			SpawnChance:     t.SpawnChance,
			SpawnDistance:   t.SpawnDistance,
			SpawnGuard:      t.SpawnGuard,
			PruneBuffer:     t.PruneBuffer,
			ClearanceHeight: t.ClearanceHeight,
			TrackWrap:       t.TrackWrap,
			TrackScroll:     t.TrackScroll,
		},
		Player: LanesPlayer{
			LaunchVelocity: t.LaunchVelocity,
			FallFloor:      t.FallFloor,
			StartLane:      int(t.StartLane),
		},
	}
}

// DefaultYAML returns the embedded default config file. `lanes config
// --defaults` prints it as a template for user files.
func DefaultYAML() []byte {
	return defaultLanesYAML
}
