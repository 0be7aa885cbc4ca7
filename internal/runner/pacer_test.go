package runner

import (
	"testing"
	"time"
)

func TestPacerAdvance(t *testing.T) {
	p := NewPacer(60)
	start := time.Unix(1000, 0)

	if n := p.Advance(start); n != 1 {
		t.Fatalf("first Advance() = %d, expected 1", n)
	}

	step := p.Step()
	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"less than a step", step / 2, 0},
		{"completes the first step", step / 2, 1},
		{"three steps", 3 * step, 3},
		{"stall is capped", 10 * step, DefaultMaxCatchUp},
		{"accumulator dropped after cap", step / 2, 0},
	}

	now := start
	for _, tc := range tests {
		now = now.Add(tc.elapsed)
		if got := p.Advance(now); got != tc.want {
			t.Errorf("%s: Advance() = %d, expected %d", tc.name, got, tc.want)
		}
	}
}

func TestPacerClockGoingBackwards(t *testing.T) {
	p := NewPacer(30)
	now := time.Unix(50, 0)
	p.Advance(now)

	if n := p.Advance(now.Add(-time.Second)); n != 0 {
		t.Errorf("Advance() with earlier time = %d, expected 0", n)
	}
}

func TestPacerDefaults(t *testing.T) {
	p := NewPacer(0)
	if p.Step() != time.Second/60 {
		t.Errorf("Step() = %v, expected %v", p.Step(), time.Second/60)
	}

	p.SetMaxCatchUp(0)
	if p.maxCatchUp != DefaultMaxCatchUp {
		t.Errorf("SetMaxCatchUp(0) changed cap to %d", p.maxCatchUp)
	}

	p.Advance(time.Unix(1, 0))
	p.Reset()
	if n := p.Advance(time.Unix(100, 0)); n != 1 {
		t.Errorf("Advance() after Reset = %d, expected 1", n)
	}
}
