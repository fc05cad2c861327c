// synth_state.go - Published shared state between scanner, ingester and sample pipeline

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import (
	"sync"
	"sync/atomic"
)

// VoiceNote is one occupied slot of the voice table: a semitone index in
// [0,11] and an octave shift in [-4,+4] relative to octave 4.
type VoiceNote struct {
	Note   int8
	Octave int8
	Active bool
}

// SynthState carries every field shared across the periodic activities.
// Word-sized fields the sample path reads are atomics; the voice table and
// key-matrix snapshot sit behind their own short-hold locks. The consumer
// side of the audio pipeline reads only atomics and is wait-free.
type SynthState struct {
	// Per-voice step sizes. Zero means "voice inactive"; the producer
	// derives the active voice count from the highest non-zero slot.
	sawStep  [NUM_VOICES]atomic.Uint32
	sineStep [NUM_VOICES]atomic.Uint32

	// Mode flags, toggled by the scanner on button edges.
	waveSine     atomic.Bool // false = sawtooth, true = sine
	joystickMode atomic.Bool
	reverbOn     atomic.Bool

	// Volume in [0,16], mirrored from knob 3 by the scanner.
	volume atomic.Int32

	// Joystick square wave, published as separate high/low sample counts
	// so the sample loop never divides.
	joyHigh atomic.Int32
	joyLow  atomic.Int32

	// Knob rotation counters in [0,16], one per knob.
	knobPos [NUM_KNOBS]atomic.Int32

	voiceMu sync.Mutex
	voices  [NUM_VOICES]VoiceNote

	keysMu  sync.Mutex
	keyRows [MATRIX_ROWS]byte
}

func NewSynthState() *SynthState {
	st := &SynthState{}
	st.joyHigh.Store(JOY_PERIOD_BASE / 2)
	st.joyLow.Store(JOY_PERIOD_BASE / 2)
	st.volume.Store(VOLUME_MAX)
	for r := range st.keyRows {
		st.keyRows[r] = 0x0F // all released (active low)
	}
	return st
}

// voiceCount derives the number of multiplexed voices from the highest
// slot with a non-zero published step. A transient state where slot 1 is
// zero but slot 2 is not yields 3; the zero-step voice contributes no
// phase advance, which is tolerated.
func (st *SynthState) voiceCount(sine bool) int {
	steps := &st.sawStep
	if sine {
		steps = &st.sineStep
	}
	for i := NUM_VOICES - 1; i >= 0; i-- {
		if steps[i].Load() != 0 {
			return i + 1
		}
	}
	return 0
}

// PublishKeys stores the latest matrix snapshot for the display composer.
func (st *SynthState) PublishKeys(rows [MATRIX_ROWS]byte) {
	st.keysMu.Lock()
	st.keyRows = rows
	st.keysMu.Unlock()
}

// KeySnapshot returns a copy of the last published matrix scan.
func (st *SynthState) KeySnapshot() [MATRIX_ROWS]byte {
	st.keysMu.Lock()
	defer st.keysMu.Unlock()
	return st.keyRows
}

// VoiceSnapshot returns a copy of the voice table for the display composer.
func (st *SynthState) VoiceSnapshot() [NUM_VOICES]VoiceNote {
	st.voiceMu.Lock()
	defer st.voiceMu.Unlock()
	return st.voices
}
