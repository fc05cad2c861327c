// synth_constants.go - Timing, buffer and filter constants for the keyboard module

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import "time"

const (
	SAMPLE_RATE = 22000 // DAC sample clock, Hz

	// Audio double buffer. The consumer wraps when its index reaches
	// AUDIO_BUF_LAST, so indices 0..218 are played back per pass.
	AUDIO_BUF_SIZE = 220
	AUDIO_BUF_LAST = 219

	NUM_VOICES          = 3   // polyphony limit
	VOICE_ROTATE_PERIOD = 750 // samples per voice turn in the multiplexer

	SINE_TABLE_SIZE = 5000 // one unit cycle, byte-quantized
)

const (
	MATRIX_ROWS = 7  // switch matrix rows, 4 column bits each
	NUM_KEYS    = 12 // piano keys on rows 0..2

	// Matrix layout. Column readings are inverted: 0 = pressed.
	ROW_BUTTONS_A = 5 // bit 1 wave-form toggle, bit 2 joystick-mode toggle
	ROW_BUTTONS_B = 6 // bit 0 reverb toggle
	ROW_KNOBS_32  = 3 // knobs 3 and 2 quadrature pairs
	ROW_KNOBS_10  = 4 // knobs 1 and 0 quadrature pairs
)

const (
	NUM_KNOBS      = 4
	KNOB_POSITIONS = 17 // rotation counter wraps modulo 17, range [0,16]
	KNOB_MAX       = 16

	KNOB_REVERB = 0 // wet amount
	KNOB_VOLUME = 3 // output volume, feeds the consumer's shift curve
)

const (
	VOLUME_MAX = 16 // byte is shifted right by 8 - volume/2
)

const (
	SCAN_PERIOD    = 50 * time.Millisecond  // key matrix scan
	INGEST_PERIOD  = 5 * time.Millisecond   // serial note-event drain
	COMPOSE_PERIOD = 100 * time.Millisecond // display snapshot refresh
	FILL_TIMEOUT   = 10 * time.Millisecond  // producer gives up and skips
)

const (
	OUTBOX_CAP = 8 // queued outgoing note events

	SERIAL_BAUD = 115200
)

// Joystick square-wave mapping: period = JOY_PERIOD_BASE + x/JOY_PERIOD_DIV
// samples, duty cycle = y/JOY_DUTY_RANGE. High/low times are published
// separately so the sample loop never divides.
const (
	JOY_PERIOD_BASE = 56
	JOY_PERIOD_DIV  = 50
	JOY_DUTY_RANGE  = 1024
	JOY_ADC_MAX     = 1023
)

// Schroeder reverberator geometry. Four parallel combs averaged, three
// allpass sections in series. Lengths are half the canonical published
// values; effective lengths scale with the time-scale knob at startup.
const (
	COMB_LEN_1 = 1730
	COMB_LEN_2 = 1494
	COMB_LEN_3 = 1941
	COMB_LEN_4 = 2156

	ALLPASS_LEN_1 = 240
	ALLPASS_LEN_2 = 80
	ALLPASS_LEN_3 = 23
)

const (
	COMB_GAIN_1 = 0.805
	COMB_GAIN_2 = 0.827
	COMB_GAIN_3 = 0.783
	COMB_GAIN_4 = 0.764

	ALLPASS_GAIN = 0.7

	// Comb gains sum near 3.2, so the network input is pre-attenuated by
	// two bits to keep the feedback loops bounded.
	REVERB_INPUT_SHIFT = 2
)

// Equal-temperament fundamentals for octave 4, semitones C..B. Other
// octaves derive from these by logical shifts of the step sizes.
var semitoneFreqs = [NUM_KEYS]float64{
	261.6256, // C4
	277.1826, // C#4
	293.6648, // D4
	311.1270, // D#4
	329.6276, // E4
	349.2282, // F4
	369.9944, // F#4
	391.9954, // G4
	415.3047, // G#4
	440.0000, // A4
	466.1638, // A#4
	493.8833, // B4
}

// Octave shift range accepted on the serial link: '0'..'8', '4' unshifted.
const (
	OCTAVE_SHIFT_MIN = -4
	OCTAVE_SHIFT_MAX = 4
)
