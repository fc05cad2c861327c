// synth_tables.go - Lookup tables for the oscillator paths

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import "math"

// sineTable holds one unit-amplitude sine cycle quantized to [0,255].
var sineTable [SINE_TABLE_SIZE]byte

// sawStepTable holds the 32-bit phase increments for octave 4,
// round(freq * 2^32 / 22000) per semitone. The accumulator's high byte is
// the output sample.
var sawStepTable [NUM_KEYS]uint32

// sineStepTable holds the sine-table index increments for octave 4,
// round(freq * 5000 / 22000) per semitone. Small integers; pitch error at
// 22 kHz stays well inside equal-temperament tolerance.
var sineStepTable [NUM_KEYS]uint32

func init() {
	for i := 0; i < SINE_TABLE_SIZE; i++ {
		phase := 2 * math.Pi * float64(i) / SINE_TABLE_SIZE
		sineTable[i] = byte(math.Round(127.5 + 127.5*math.Sin(phase)))
	}

	for i, f := range semitoneFreqs {
		sawStepTable[i] = uint32(math.Round(f * math.Exp2(32) / SAMPLE_RATE))
		sineStepTable[i] = uint32(math.Round(f * SINE_TABLE_SIZE / SAMPLE_RATE))
	}
}

// shiftStep applies an octave shift to a base octave-4 step size. Left
// shifts double the frequency per octave; wrap-around arithmetic keeps the
// sawtooth path exact.
func shiftStep(base uint32, octaveShift int) uint32 {
	switch {
	case octaveShift > 0:
		return base << uint(octaveShift)
	case octaveShift < 0:
		return base >> uint(-octaveShift)
	}
	return base
}
