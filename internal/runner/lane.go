// Package runner implements the lane-runner simulation: a player on one of
// three lanes dodging obstacles that stream toward them at constant speed.
//
// The package is pure logic. It owns no timers and performs no I/O; a driver
// calls Session.Tick once per simulation step and feeds discrete commands in
// between. Everything random goes through an injectable Source so a run can be
// replayed exactly from its seed and input journal.
package runner

// Lane is one of the three parallel tracks. Lane 1 is the center.
type Lane int

// Lane bounds.
const (
	LaneLeft   Lane = 0
	LaneCenter Lane = 1
	LaneRight  Lane = 2

	LaneCount = 3
)

// Valid reports whether l is one of the three lanes.
func (l Lane) Valid() bool {
	return l >= LaneLeft && l <= LaneRight
}

// Direction is a lateral move request.
type Direction int

const (
	Left Direction = iota
	Right
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	if d == Right {
		return "Right"
	}
	return "Left"
}

// delta returns the lane offset for a move in this direction.
func (d Direction) delta() int {
	if d == Right {
		return 1
	}
	return -1
}

// ObstacleKind distinguishes full-height boxes from half-height ones.
type ObstacleKind int

const (
	// Box blocks the lane regardless of jump height.
	Box ObstacleKind = iota
	// HalfBox can be cleared by jumping above the clearance height.
	HalfBox

	kindCount = 2
)

// String returns a human-readable name for the kind.
func (k ObstacleKind) String() string {
	switch k {
	case Box:
		return "Box"
	case HalfBox:
		return "HalfBox"
	default:
		return "Unknown"
	}
}

// Obstacle is a single hazard travelling toward the player.
// Distance shrinks by the session speed every tick; negative values mean the
// obstacle has reached or passed the player's position.
type Obstacle struct {
	Lane     Lane         `msgpack:"lane"`
	Distance int          `msgpack:"distance"`
	Kind     ObstacleKind `msgpack:"kind"`
}
