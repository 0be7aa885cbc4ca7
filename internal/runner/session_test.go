package runner

import (
	"reflect"
	"testing"
)

func runningSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(ClassicTuning(), neverSpawn())
	s.Start()
	return s
}

func TestSessionStartsNotStarted(t *testing.T) {
	s := NewSession(ClassicTuning(), neverSpawn())

	if s.Phase() != NotStarted {
		t.Fatalf("new session phase = %s, expected NotStarted", s.Phase())
	}

	// Ticks and inputs are ignored before start.
	s.MoveLeft()
	s.Jump()
	snap := s.Tick()
	if snap.Phase != NotStarted || snap.Score != 0 || snap.Ticks != 0 {
		t.Errorf("tick before start mutated state: %+v", snap)
	}
	if snap.Player.Lane != LaneCenter {
		t.Errorf("move before start changed lane to %d", snap.Player.Lane)
	}
	if s.player.Velocity() != 0 {
		t.Errorf("jump before start set velocity %d", s.player.Velocity())
	}
}

func TestSessionStartIsIdempotent(t *testing.T) {
	once := NewSession(ClassicTuning(), neverSpawn())
	once.Start()

	twice := NewSession(ClassicTuning(), neverSpawn())
	twice.Start()
	twice.Start()

	if !reflect.DeepEqual(once.Snapshot(), twice.Snapshot()) {
		t.Errorf("double start differs:\n once  %+v\n twice %+v", once.Snapshot(), twice.Snapshot())
	}

	snap := twice.Snapshot()
	if snap.Phase != Running || snap.Score != 0 || snap.Player.Lane != LaneCenter || len(snap.Obstacles) != 0 {
		t.Errorf("start did not produce a fresh run: %+v", snap)
	}
}

func TestSessionStartResetsRun(t *testing.T) {
	s := runningSession(t)
	s.MoveRight()
	s.Jump()
	s.field.obstacles = append(s.field.obstacles, Obstacle{Lane: LaneLeft, Distance: 40, Kind: Box})
	for i := 0; i < 20; i++ {
		s.Tick()
	}

	s.Start()

	snap := s.Snapshot()
	if snap.Score != 0 || snap.TrackOffset != 0 || snap.Ticks != 0 {
		t.Errorf("start left score=%d track=%f ticks=%d", snap.Score, snap.TrackOffset, snap.Ticks)
	}
	if snap.Player != (PlayerView{Lane: LaneCenter, JumpHeight: 0}) {
		t.Errorf("start left player %+v", snap.Player)
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("start left %d obstacles", len(snap.Obstacles))
	}
}

func TestSessionMovementClampsWhileRunning(t *testing.T) {
	s := runningSession(t)

	s.MoveLeft()
	s.MoveLeft()
	s.MoveLeft()
	if s.Snapshot().Player.Lane != LaneLeft {
		t.Errorf("lane after three lefts = %d, expected 0", s.Snapshot().Player.Lane)
	}

	for i := 0; i < 5; i++ {
		s.MoveRight()
	}
	if s.Snapshot().Player.Lane != LaneRight {
		t.Errorf("lane after five rights = %d, expected 2", s.Snapshot().Player.Lane)
	}
}

func TestSessionCollisionEndsRunWithoutMutation(t *testing.T) {
	s := runningSession(t)
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	s.field.obstacles = append(s.field.obstacles, Obstacle{Lane: LaneCenter, Distance: -1, Kind: Box})
	before := s.Snapshot()

	after := s.Tick()

	if after.Phase != GameOver {
		t.Fatalf("phase = %s, expected GameOver", after.Phase)
	}
	if after.Score != before.Score || after.TrackOffset != before.TrackOffset || after.Ticks != before.Ticks {
		t.Errorf("collision tick mutated counters: before %+v after %+v", before, after)
	}
	if !reflect.DeepEqual(after.Obstacles, before.Obstacles) {
		t.Errorf("collision tick mutated obstacles: before %+v after %+v", before.Obstacles, after.Obstacles)
	}

	// GameOver is terminal until the next start.
	s.MoveLeft()
	again := s.Tick()
	if !reflect.DeepEqual(again, after) {
		t.Errorf("tick after game over changed state: %+v", again)
	}

	s.Start()
	if s.Phase() != Running {
		t.Errorf("start after game over left phase %s", s.Phase())
	}
}

func TestSessionLongRunWithoutSpawns(t *testing.T) {
	s := runningSession(t)

	var snap Snapshot
	for i := 0; i < 500; i++ {
		snap = s.Tick()
		if len(snap.Obstacles) != 0 {
			t.Fatalf("obstacle appeared at tick %d", i)
		}
	}

	if snap.Phase != Running {
		t.Errorf("phase = %s, expected Running", snap.Phase)
	}
	if snap.DisplayScore() != 50 {
		t.Errorf("displayed score = %d, expected 50", snap.DisplayScore())
	}
	if snap.Ticks != 500 {
		t.Errorf("ticks = %d, expected 500", snap.Ticks)
	}
}

func TestSessionTrackOffsetWraps(t *testing.T) {
	s := runningSession(t)

	for i := 0; i < 432; i++ {
		s.Tick()
	}
	if got := s.Snapshot().TrackOffset; got != 0 {
		t.Errorf("track offset after a full wrap = %f, expected 0", got)
	}

	s.Tick()
	if got := s.Snapshot().TrackOffset; got != 2.5 {
		t.Errorf("track offset = %f, expected 2.5", got)
	}
}

func TestSessionJumpClearsHalfBox(t *testing.T) {
	s := runningSession(t)
	s.Jump()
	for i := 0; i < 12; i++ {
		s.Tick()
	}
	if h := s.Snapshot().Player.JumpHeight; h <= 100 {
		t.Fatalf("expected to be above clearance, height %d", h)
	}

	s.field.obstacles = append(s.field.obstacles, Obstacle{Lane: LaneCenter, Distance: -1, Kind: HalfBox})
	if snap := s.Tick(); snap.Phase != Running {
		t.Error("half box should be cleared mid-jump")
	}
}

func TestSessionSetTuningAppliesOnStart(t *testing.T) {
	s := runningSession(t)
	s.SetTuning(TightTuning())

	s.Tick()
	if s.Snapshot().Score != 1 {
		t.Errorf("tuning changed mid-run: score %d after one tick", s.Snapshot().Score)
	}

	s.Start()
	s.Tick()
	if s.Snapshot().Score != 2 {
		t.Errorf("new tuning not applied on start: score %d after one tick", s.Snapshot().Score)
	}
	if s.Tuning().LaunchVelocity != 25 {
		t.Errorf("launch velocity = %d, expected 25", s.Tuning().LaunchVelocity)
	}
}

func TestSessionApplyCommands(t *testing.T) {
	s := NewSession(ClassicTuning(), neverSpawn())

	s.Apply(CommandStart)
	s.Apply(CommandMoveRight)
	s.Apply(CommandJump)
	s.Apply(Command(99))

	if s.Phase() != Running {
		t.Fatalf("phase = %s, expected Running", s.Phase())
	}
	if s.player.Lane() != LaneRight {
		t.Errorf("lane = %d, expected 2", s.player.Lane())
	}
	if s.player.Velocity() != 15 {
		t.Errorf("velocity = %d, expected 15", s.player.Velocity())
	}

	s.Apply(CommandMoveLeft)
	if s.player.Lane() != LaneCenter {
		t.Errorf("lane = %d, expected 1", s.player.Lane())
	}
}

func TestSessionSnapshotIsCopy(t *testing.T) {
	s := runningSession(t)
	s.field.obstacles = append(s.field.obstacles, Obstacle{Lane: LaneLeft, Distance: 10, Kind: Box})

	snap := s.Snapshot()
	snap.Obstacles[0].Distance = 999

	if s.field.obstacles[0].Distance != 10 {
		t.Error("mutating a snapshot changed the session")
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() Snapshot {
		tuning := TightTuning()
		s := NewSession(tuning, NewSource(2024))
		s.Start()
		var snap Snapshot
		for i := 0; i < 400; i++ {
			if i%37 == 0 {
				s.MoveLeft()
			}
			if i%53 == 0 {
				s.MoveRight()
			}
			snap = s.Tick()
		}
		return snap
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", a, b)
	}
}
