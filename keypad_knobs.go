// keypad_knobs.go - Quadrature knob decoder

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

// KnobDecoder tracks one knob's (A,B) quadrature pair. Single-bit
// transitions give a definite direction; a transition where both bits flip
// means a missed intermediate state and counts double in the last
// remembered direction. The rotation counter wraps modulo 17 over [0,16].
type KnobDecoder struct {
	prev   uint8 // last (A<<1 | B)
	lastUp bool
	pos    int32
}

// Update feeds the current (A,B) bits and returns the signed increment
// applied to the rotation counter.
func (k *KnobDecoder) Update(a, b uint8) int {
	cur := (a&1)<<1 | (b & 1)
	prev := k.prev
	k.prev = cur
	if cur == prev {
		return 0
	}

	delta := 0
	switch {
	case prev == 0b00 && cur == 0b10,
		prev == 0b01 && cur == 0b00,
		prev == 0b10 && cur == 0b11,
		prev == 0b11 && cur == 0b01:
		delta = 1
		k.lastUp = true
	case prev == 0b00 && cur == 0b01,
		prev == 0b01 && cur == 0b11,
		prev == 0b10 && cur == 0b00,
		prev == 0b11 && cur == 0b10:
		delta = -1
		k.lastUp = false
	default:
		// Both bits flipped: a skipped state, two detents in the last
		// known direction.
		if k.lastUp {
			delta = 2
		} else {
			delta = -2
		}
	}

	k.pos = (k.pos + int32(delta) + KNOB_POSITIONS) % KNOB_POSITIONS
	return delta
}

// Pos returns the wrapped rotation counter in [0,16].
func (k *KnobDecoder) Pos() int32 {
	return k.pos
}
