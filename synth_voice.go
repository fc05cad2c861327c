// synth_voice.go - Voice table maintenance and step-size publication

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

// The voice table is a left-packed prefix of at most three occupied slots.
// Two writers exist: the key scanner replaces the whole assignment from the
// currently pressed keys, and the serial ingester fills or compacts single
// slots. Both publish step sizes after mutation so that an inactive slot
// always carries zero steps.

// publishStepsLocked pushes the step sizes matching the current voice
// table into the published atomics. Caller holds voiceMu.
func (st *SynthState) publishStepsLocked() {
	for i := 0; i < NUM_VOICES; i++ {
		v := st.voices[i]
		if v.Active {
			st.sawStep[i].Store(shiftStep(sawStepTable[v.Note], int(v.Octave)))
			st.sineStep[i].Store(shiftStep(sineStepTable[v.Note], int(v.Octave)))
		} else {
			st.sawStep[i].Store(0)
			st.sineStep[i].Store(0)
		}
	}
}

// SetLocalKeys replaces the whole voice assignment from pressed key
// indices in row-major order, octave 4. Used by the scanner whenever a key
// bit changed; keys beyond the third are ignored until a slot frees.
func (st *SynthState) SetLocalKeys(pressed []int) {
	st.voiceMu.Lock()
	defer st.voiceMu.Unlock()

	for i := 0; i < NUM_VOICES; i++ {
		if i < len(pressed) {
			st.voices[i] = VoiceNote{Note: int8(pressed[i]), Octave: 0, Active: true}
		} else {
			st.voices[i] = VoiceNote{}
		}
	}
	st.publishStepsLocked()
}

// PressNote records a remotely played note in the lowest empty slot.
// A duplicate of an already-held note is a silent no-op, as is a press
// while all three slots are occupied.
func (st *SynthState) PressNote(note, octave int) {
	st.voiceMu.Lock()
	defer st.voiceMu.Unlock()

	for i := 0; i < NUM_VOICES; i++ {
		v := st.voices[i]
		if v.Active && int(v.Note) == note && int(v.Octave) == octave {
			return
		}
	}
	for i := 0; i < NUM_VOICES; i++ {
		if !st.voices[i].Active {
			st.voices[i] = VoiceNote{Note: int8(note), Octave: int8(octave), Active: true}
			st.publishStepsLocked()
			return
		}
	}
}

// ReleaseNote drops the slot holding the matching note and compacts the
// table left so the occupied slots stay a prefix. Unknown notes are
// ignored.
func (st *SynthState) ReleaseNote(note, octave int) {
	st.voiceMu.Lock()
	defer st.voiceMu.Unlock()

	hit := -1
	for i := 0; i < NUM_VOICES; i++ {
		v := st.voices[i]
		if v.Active && int(v.Note) == note && int(v.Octave) == octave {
			hit = i
			break
		}
	}
	if hit < 0 {
		return
	}
	for i := hit; i < NUM_VOICES-1; i++ {
		st.voices[i] = st.voices[i+1]
	}
	st.voices[NUM_VOICES-1] = VoiceNote{}
	st.publishStepsLocked()
}
