package runner

import "fmt"

// Input is one journaled command and the step it was applied before.
type Input struct {
	Step    int     `msgpack:"s"`
	Command Command `msgpack:"c"`
}

// Recording is everything needed to re-run a session exactly: the tuning, the
// RNG seed, the applied inputs and how many steps were taken.
type Recording struct {
	Tuning Tuning   `msgpack:"tuning"`
	Seed   int64    `msgpack:"seed"`
	Inputs []Input  `msgpack:"inputs"`
	Steps  int      `msgpack:"steps"`
	Final  Snapshot `msgpack:"final"`
}

// Recorder collects inputs as a Loop drains them.
type Recorder struct {
	tuning Tuning
	seed   int64
	inputs []Input
}

// NewRecorder starts a journal for a session created with t and seed.
func NewRecorder(t Tuning, seed int64) *Recorder {
	return &Recorder{tuning: t, seed: seed}
}

// Record appends cmd applied before the given step.
func (r *Recorder) Record(step int, cmd Command) {
	r.inputs = append(r.inputs, Input{Step: step, Command: cmd})
}

// Len returns the number of journaled inputs.
func (r *Recorder) Len() int {
	return len(r.inputs)
}

// Finish seals the journal with the step count and final snapshot.
func (r *Recorder) Finish(steps int, final Snapshot) Recording {
	inputs := make([]Input, len(r.inputs))
	copy(inputs, r.inputs)
	return Recording{
		Tuning: r.tuning,
		Seed:   r.seed,
		Inputs: inputs,
		Steps:  steps,
		Final:  final,
	}
}

// Replay re-simulates rec from its seed and returns the final snapshot.
func Replay(rec Recording) Snapshot {
	s := NewSession(rec.Tuning, NewSource(rec.Seed))
	next := 0
	snap := s.Snapshot()
	for step := 0; step < rec.Steps; step++ {
		for next < len(rec.Inputs) && rec.Inputs[next].Step == step {
			s.Apply(rec.Inputs[next].Command)
			next++
		}
		snap = s.Tick()
	}
	return snap
}

// Verify replays rec and reports the first divergence from its recorded
// final snapshot.
func Verify(rec Recording) error {
	got := Replay(rec)
	want := rec.Final
	switch {
	case got.Phase != want.Phase:
		return fmt.Errorf("runner: replay phase %s, recorded %s", got.Phase, want.Phase)
	case got.Score != want.Score:
		return fmt.Errorf("runner: replay score %d, recorded %d", got.Score, want.Score)
	case got.Ticks != want.Ticks:
		return fmt.Errorf("runner: replay ticks %d, recorded %d", got.Ticks, want.Ticks)
	case got.Player != want.Player:
		return fmt.Errorf("runner: replay player %+v, recorded %+v", got.Player, want.Player)
	case len(got.Obstacles) != len(want.Obstacles):
		return fmt.Errorf("runner: replay has %d obstacles, recorded %d", len(got.Obstacles), len(want.Obstacles))
	}
	for i := range got.Obstacles {
		if got.Obstacles[i] != want.Obstacles[i] {
			return fmt.Errorf("runner: replay obstacle %d is %+v, recorded %+v", i, got.Obstacles[i], want.Obstacles[i])
		}
	}
	return nil
}
