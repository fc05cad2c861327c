// keypad_knobs_test.go - Quadrature decoder tests

package main

import "testing"

func TestKnobFullCycleUp(t *testing.T) {
	var k KnobDecoder

	// One full clockwise detent cycle: 00 -> 10 -> 11 -> 01 -> 00.
	seq := [][2]uint8{{1, 0}, {1, 1}, {0, 1}, {0, 0}}
	for _, ab := range seq {
		if d := k.Update(ab[0], ab[1]); d != 1 {
			t.Fatalf("transition to (%d,%d) = %d, want +1", ab[0], ab[1], d)
		}
	}
	if k.Pos() != 4 {
		t.Errorf("pos = %d after full cycle, want 4", k.Pos())
	}
	if !k.lastUp {
		t.Errorf("direction flag lost after up cycle")
	}
}

func TestKnobFullCycleDown(t *testing.T) {
	var k KnobDecoder

	seq := [][2]uint8{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	for _, ab := range seq {
		if d := k.Update(ab[0], ab[1]); d != -1 {
			t.Fatalf("transition to (%d,%d) = %d, want -1", ab[0], ab[1], d)
		}
	}
	if k.Pos() != 13 {
		t.Errorf("pos = %d after down cycle from 0, want 13", k.Pos())
	}
}

func TestKnobWrap(t *testing.T) {
	var k KnobDecoder

	// Decrement from 0 wraps to 16.
	k.Update(0, 1)
	if k.Pos() != KNOB_MAX {
		t.Errorf("pos = %d, want %d", k.Pos(), KNOB_MAX)
	}

	// Increment from 16 wraps to 0.
	k2 := KnobDecoder{pos: KNOB_MAX}
	k2.Update(1, 0) // 00 -> 10 is +1
	if k2.Pos() != 0 {
		t.Errorf("pos = %d after increment from 16, want 0", k2.Pos())
	}
}

func TestKnobSkipUsesLastDirection(t *testing.T) {
	var k KnobDecoder

	k.Update(1, 0) // +1, remember up
	if d := k.Update(0, 1); d != 2 {
		t.Errorf("skip after up = %+d, want +2", d)
	}
	if k.Pos() != 3 {
		t.Errorf("pos = %d, want 3", k.Pos())
	}

	var j KnobDecoder
	j.Update(0, 1) // -1, remember down
	if d := j.Update(1, 0); d != -2 {
		t.Errorf("skip after down = %+d, want -2", d)
	}
	if j.Pos() != 14 {
		t.Errorf("pos = %d, want 14", j.Pos())
	}
}

func TestKnobNoChange(t *testing.T) {
	var k KnobDecoder
	if d := k.Update(0, 0); d != 0 {
		t.Errorf("steady state = %+d, want 0", d)
	}
	k.Update(1, 0)
	if d := k.Update(1, 0); d != 0 {
		t.Errorf("repeated state = %+d, want 0", d)
	}
	if k.Pos() != 1 {
		t.Errorf("pos = %d, want 1", k.Pos())
	}
}
