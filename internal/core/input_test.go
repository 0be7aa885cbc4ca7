package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionRight)
	f.Set(ActionNone)
	f.Set(ActionRight)
	f.Set(ActionJump)

	if got := f.Actions(); len(got) != 3 || got[0] != ActionRight || got[1] != ActionRight || got[2] != ActionJump {
		t.Errorf("Actions() = %v, expected [Right Right Jump]", got)
	}
	if !f.Has(ActionJump) || f.Has(ActionLeft) {
		t.Error("Has() reported wrong membership")
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionJump) {
		t.Error("Clear() should drop all actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionStart.String() != "Start" || Action(42).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
