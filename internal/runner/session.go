package runner

import "math"

// Phase is the session state. The zero value is NotStarted.
type Phase int

const (
	NotStarted Phase = iota
	Running
	GameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// ScoreUnit is the number of raw score points per displayed point.
const ScoreUnit = 10

// Snapshot is the read-only view of a session handed to the presentation
// layer once per tick.
type Snapshot struct {
	Phase       Phase      `msgpack:"phase"`
	Score       int        `msgpack:"score"`
	TrackOffset float64    `msgpack:"track_offset"`
	Ticks       int        `msgpack:"ticks"`
	Player      PlayerView `msgpack:"player"`
	Obstacles   []Obstacle `msgpack:"obstacles"`
}

// DisplayScore returns the score in displayed points.
func (s Snapshot) DisplayScore() int {
	return s.Score / ScoreUnit
}

// Session ties the player and the obstacle field together. It owns the score
// and track offset, runs the per-tick update and decides when the run ends.
//
// A Session is not safe for concurrent use; see Loop for a guarded wrapper.
type Session struct {
	tuning  Tuning
	pending *Tuning
	rng     Source

	phase       Phase
	score       int
	trackOffset float64
	ticks       int

	player Player
	field  ObstacleField
}

// NewSession creates a session in the NotStarted phase.
func NewSession(t Tuning, rng Source) *Session {
	return &Session{
		tuning: t,
		rng:    rng,
		player: NewPlayer(t),
		field:  NewObstacleField(t, rng),
	}
}

// Tuning returns the constants in effect for the current run.
func (s *Session) Tuning() Tuning {
	return s.tuning
}

// SetTuning replaces the tuning. The change is applied on the next Start so
// a run in progress keeps fixed constants.
func (s *Session) SetTuning(t Tuning) {
	s.pending = &t
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Start resets score, track, obstacles and player and enters Running.
// Valid from any phase.
func (s *Session) Start() {
	if s.pending != nil {
		s.tuning = *s.pending
		s.pending = nil
		s.player = NewPlayer(s.tuning)
		s.field = NewObstacleField(s.tuning, s.rng)
	}

	s.score = 0
	s.trackOffset = 0
	s.ticks = 0
	s.field.Clear()
	s.player.Reset()
	s.phase = Running
}

// MoveLeft shifts the player one lane left. Ignored unless Running.
func (s *Session) MoveLeft() {
	s.move(Left)
}

// MoveRight shifts the player one lane right. Ignored unless Running.
func (s *Session) MoveRight() {
	s.move(Right)
}

func (s *Session) move(dir Direction) {
	if s.phase != Running {
		return
	}
	s.player.MoveLane(dir)
}

// Jump launches the player if Running and grounded.
func (s *Session) Jump() {
	if s.phase != Running {
		return
	}
	s.player.Jump()
}

// Tick advances the simulation by one step and returns the new snapshot.
// Outside Running it does nothing.
//
// Collision is tested first against the previous tick's state; when it hits,
// the session ends without mutating anything else.
func (s *Session) Tick() Snapshot {
	if s.phase != Running {
		return s.Snapshot()
	}

	if s.field.CollidesWith(s.player.Lane(), s.player.JumpHeight()) {
		s.phase = GameOver
		return s.Snapshot()
	}

	speed := s.tuning.Speed
	s.field.MaybeSpawn()
	s.field.Advance(speed)
	s.trackOffset += float64(speed) * s.tuning.TrackScroll
	if s.tuning.TrackWrap > 0 {
		s.trackOffset = math.Mod(s.trackOffset, s.tuning.TrackWrap)
	}
	s.score += speed
	s.player.Advance()
	s.ticks++

	return s.Snapshot()
}

// Snapshot returns the current state. The obstacle slice is a copy.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:       s.phase,
		Score:       s.score,
		TrackOffset: s.trackOffset,
		Ticks:       s.ticks,
		Player:      s.player.View(),
		Obstacles:   s.field.Obstacles(),
	}
}
