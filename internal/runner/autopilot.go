package runner

import "math"

// Autopilot is a simple lane-dodging policy used for headless runs and demos.
// It looks at the obstacle nearest ahead in the player's lane and either
// jumps over it (half boxes only, when the timing works out) or sidesteps to
// the adjacent lane whose nearest obstacle is farthest away.
type Autopilot struct {
	tuning    Tuning
	lookahead int
	heights   []int // jump height after k ticks of a jump launched at tick 0
}

// NewAutopilot builds a policy for sessions running with t.
func NewAutopilot(t Tuning) *Autopilot {
	speed := t.Speed
	if speed < 1 {
		speed = 1
	}
	air := t.AirTime()
	a := &Autopilot{
		tuning:    t,
		lookahead: speed * (air + 4),
	}

	// Enough samples to cover an obstacle from the lookahead edge until it
	// is pruned.
	n := a.lookahead/speed + t.PruneBuffer + 2
	p := NewPlayer(t)
	p.Jump()
	a.heights = make([]int, n)
	for k := range a.heights {
		a.heights[k] = p.JumpHeight()
		p.Advance()
	}
	return a
}

// Lookahead returns the distance within which obstacles are treated as threats.
func (a *Autopilot) Lookahead() int {
	return a.lookahead
}

// Decide returns the command to submit for the next step, if any.
func (a *Autopilot) Decide(s Snapshot) (Command, bool) {
	if s.Phase == NotStarted {
		return CommandStart, true
	}
	if s.Phase != Running {
		return 0, false
	}

	threat, ok := a.nearest(s.Obstacles, s.Player.Lane)
	if !ok {
		return 0, false
	}

	if threat.Kind == HalfBox && s.Player.JumpHeight == 0 && a.clears(threat.Distance) {
		return CommandJump, true
	}

	best, bestGap := s.Player.Lane, threat.Distance
	for _, dir := range []Direction{Left, Right} {
		lane := Lane(int(s.Player.Lane) + dir.delta())
		if !lane.Valid() {
			continue
		}
		if gap := a.gap(s.Obstacles, lane); gap > bestGap {
			best, bestGap = lane, gap
		}
	}

	switch {
	case best < s.Player.Lane:
		return CommandMoveLeft, true
	case best > s.Player.Lane:
		return CommandMoveRight, true
	}

	// Nowhere better to go; a jump is the only chance against a half box.
	if threat.Kind == HalfBox && s.Player.JumpHeight == 0 {
		return CommandJump, true
	}
	return 0, false
}

// nearest returns the closest obstacle ahead in lane within the lookahead.
func (a *Autopilot) nearest(obstacles []Obstacle, lane Lane) (Obstacle, bool) {
	var found Obstacle
	ok := false
	for _, o := range obstacles {
		if o.Lane != lane || o.Distance < 0 || o.Distance >= a.lookahead {
			continue
		}
		if !ok || o.Distance < found.Distance {
			found, ok = o, true
		}
	}
	return found, ok
}

// gap returns the distance to the nearest obstacle in lane, including ones
// already at negative distance. An empty lane has an unbounded gap.
func (a *Autopilot) gap(obstacles []Obstacle, lane Lane) int {
	gap := math.MaxInt
	for _, o := range obstacles {
		if o.Lane == lane && o.Distance < gap {
			gap = o.Distance
		}
	}
	return gap
}

// clears reports whether a jump started now passes a half box that is
// currently d units away. The collision test in a tick sees the height
// reached after the previous tick, while the obstacle is at negative distance
// and not yet pruned.
func (a *Autopilot) clears(d int) bool {
	speed := a.tuning.Speed
	if speed < 1 {
		return false
	}
	limit := -a.tuning.PruneBuffer - speed
	for k := 0; ; k++ {
		dist := d - k*speed
		if dist <= limit {
			return true
		}
		if dist >= 0 {
			continue
		}
		if k >= len(a.heights) || a.heights[k] <= a.tuning.ClearanceHeight {
			return false
		}
	}
}
