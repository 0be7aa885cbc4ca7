package runner

// Player owns the lane position and the vertical jump state.
//
// Vertical motion is discrete: a jump sets the velocity to the launch value,
// and every tick adds the velocity to the height and then subtracts one from
// the velocity. Height is clamped at zero. Once the velocity falls below
// -fallFloor the physics stop updating until the next jump.
type Player struct {
	lane       Lane
	jumpHeight int
	velocity   int
	launch     int
	fallFloor  int
	startLane  Lane
}

// NewPlayer creates a grounded player in the tuning's start lane.
func NewPlayer(t Tuning) Player {
	p := Player{
		launch:    t.LaunchVelocity,
		fallFloor: t.FallFloor,
		startLane: t.StartLane,
	}
	p.Reset()
	return p
}

// Reset puts the player back in the start lane, grounded and at rest.
func (p *Player) Reset() {
	p.lane = p.startLane
	p.jumpHeight = 0
	p.velocity = 0
}

// Lane returns the current lane.
func (p *Player) Lane() Lane {
	return p.lane
}

// JumpHeight returns the height above ground (0 when grounded).
func (p *Player) JumpHeight() int {
	return p.jumpHeight
}

// Velocity returns the current vertical velocity.
func (p *Player) Velocity() int {
	return p.velocity
}

// Grounded reports whether a new jump may start.
func (p *Player) Grounded() bool {
	return p.jumpHeight <= 0
}

// MoveLane shifts the player one lane in the given direction, clamped to the
// outer lanes.
func (p *Player) MoveLane(dir Direction) {
	next := int(p.lane) + dir.delta()
	if next < int(LaneLeft) {
		next = int(LaneLeft)
	}
	if next > int(LaneRight) {
		next = int(LaneRight)
	}
	p.lane = Lane(next)
}

// Jump launches the player if grounded. Returns whether the jump started.
func (p *Player) Jump() bool {
	if !p.Grounded() {
		return false
	}
	p.velocity = p.launch
	return true
}

// Advance applies one tick of jump physics.
func (p *Player) Advance() {
	if p.velocity < -p.fallFloor {
		return
	}
	p.jumpHeight += p.velocity
	if p.jumpHeight < 0 {
		p.jumpHeight = 0
	}
	p.velocity--
}

// View returns the externally visible player state.
func (p *Player) View() PlayerView {
	return PlayerView{Lane: p.lane, JumpHeight: p.jumpHeight}
}

// PlayerView is the read-only player portion of a Snapshot.
type PlayerView struct {
	Lane       Lane `msgpack:"lane"`
	JumpHeight int  `msgpack:"jump_height"`
}
