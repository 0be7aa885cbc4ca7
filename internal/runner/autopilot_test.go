package runner

import "testing"

func running(lane Lane, height int, obstacles ...Obstacle) Snapshot {
	return Snapshot{
		Phase:     Running,
		Player:    PlayerView{Lane: lane, JumpHeight: height},
		Obstacles: obstacles,
	}
}

func TestAutopilotDecide(t *testing.T) {
	a := NewAutopilot(ClassicTuning())

	tests := []struct {
		name   string
		snap   Snapshot
		cmd    Command
		issued bool
	}{
		{
			name:   "starts a new session",
			snap:   Snapshot{Phase: NotStarted},
			cmd:    CommandStart,
			issued: true,
		},
		{
			name:   "idle after game over",
			snap:   Snapshot{Phase: GameOver},
			issued: false,
		},
		{
			name:   "clear lane",
			snap:   running(LaneCenter, 0, Obstacle{LaneLeft, 5, Box}),
			issued: false,
		},
		{
			name:   "far obstacle ignored",
			snap:   running(LaneCenter, 0, Obstacle{LaneCenter, 400, Box}),
			issued: false,
		},
		{
			name:   "box sidesteps to the emptier lane",
			snap:   running(LaneCenter, 0, Obstacle{LaneCenter, 10, Box}, Obstacle{LaneLeft, 30, Box}),
			cmd:    CommandMoveRight,
			issued: true,
		},
		{
			name:   "box at edge moves inward",
			snap:   running(LaneLeft, 0, Obstacle{LaneLeft, 10, Box}),
			cmd:    CommandMoveRight,
			issued: true,
		},
		{
			name:   "half box in jump window",
			snap:   running(LaneCenter, 0, Obstacle{LaneCenter, 11, HalfBox}),
			cmd:    CommandJump,
			issued: true,
		},
		{
			name:   "half box boxed in",
			snap:   running(LaneCenter, 0, Obstacle{LaneCenter, 30, HalfBox}, Obstacle{LaneLeft, 20, Box}, Obstacle{LaneRight, 20, Box}),
			cmd:    CommandJump,
			issued: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, ok := a.Decide(tc.snap)
			if ok != tc.issued {
				t.Fatalf("Decide() issued = %v, expected %v (cmd %s)", ok, tc.issued, cmd)
			}
			if ok && cmd != tc.cmd {
				t.Errorf("Decide() = %s, expected %s", cmd, tc.cmd)
			}
		})
	}
}

func TestAutopilotJumpWindowClearsHalfBox(t *testing.T) {
	tuning := ClassicTuning()
	a := NewAutopilot(tuning)

	for d := 0; d < a.Lookahead(); d++ {
		if !a.clears(d) {
			continue
		}

		s := NewSession(tuning, neverSpawn())
		s.Start()
		s.field.obstacles = append(s.field.obstacles, Obstacle{Lane: LaneCenter, Distance: d, Kind: HalfBox})
		s.Jump()
		for i := 0; i < tuning.AirTime()+d+5; i++ {
			if snap := s.Tick(); snap.Phase == GameOver {
				t.Fatalf("jump at distance %d predicted to clear but collided at tick %d", d, i)
			}
		}
	}

	if !a.clears(11) {
		t.Error("a jump 11 units out should clear a half box")
	}
	if a.clears(0) {
		t.Error("a jump at distance 0 cannot clear in time")
	}
}
