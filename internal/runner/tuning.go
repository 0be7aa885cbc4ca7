package runner

// Tuning holds the constants that shape a session. They stay fixed for the
// lifetime of a run; Session.SetTuning only takes effect on the next Start.
type Tuning struct {
	Speed           int     // distance units per tick, also score per tick
	SpawnChance     float64 // per-tick spawn probability in [0, 1]
	SpawnDistance   int     // distance at which new obstacles enter
	SpawnGuard      int     // no spawn while the lane holds an obstacle beyond this distance
	PruneBuffer     int     // obstacles are dropped once distance <= -PruneBuffer - Speed
	ClearanceHeight int     // jump height needed to pass over a HalfBox
	TrackWrap       float64 // track offset modulus
	TrackScroll     float64 // track offset advance per unit of speed
	LaunchVelocity  int     // vertical velocity set by a jump
	FallFloor       int     // jump physics stop once velocity drops below -FallFloor
	StartLane       Lane
}

// ClassicTuning returns the gentler first-generation tuning: speed 1, 1% spawn
// chance and a launch velocity of 15.
func ClassicTuning() Tuning {
	return Tuning{
		Speed:           1,
		SpawnChance:     0.01,
		SpawnDistance:   500,
		SpawnGuard:      450,
		PruneBuffer:     2,
		ClearanceHeight: 100,
		TrackWrap:       1080,
		TrackScroll:     2.5,
		LaunchVelocity:  15,
		FallFloor:       15,
		StartLane:       LaneCenter,
	}
}

// TightTuning returns the later, denser tuning: speed 2, 3% spawn chance and
// a launch velocity of 25.
func TightTuning() Tuning {
	t := ClassicTuning()
	t.Speed = 2
	t.SpawnChance = 0.03
	t.LaunchVelocity = 25
	t.FallFloor = 25
	return t
}

// AirTime returns the number of ticks a jump launched from the ground takes
// to land again.
func (t Tuning) AirTime() int {
	p := NewPlayer(t)
	p.Jump()
	for i := 1; ; i++ {
		p.Advance()
		if p.jumpHeight == 0 {
			return i
		}
		if p.velocity < -t.FallFloor {
			return i
		}
	}
}
