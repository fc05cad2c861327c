// synth_voice_test.go - Voice table invariants

package main

import "testing"

// checkPacked asserts the occupied slots form a prefix and that every
// inactive slot publishes zero step sizes.
func checkPacked(t *testing.T, st *SynthState) {
	t.Helper()
	voices := st.VoiceSnapshot()
	seenEmpty := false
	for i, v := range voices {
		if v.Active {
			if seenEmpty {
				t.Fatalf("voice table not left-packed: %+v", voices)
			}
			continue
		}
		seenEmpty = true
		if st.sawStep[i].Load() != 0 || st.sineStep[i].Load() != 0 {
			t.Fatalf("inactive slot %d has non-zero steps (%d, %d)",
				i, st.sawStep[i].Load(), st.sineStep[i].Load())
		}
	}
}

func TestPressFillsLowestSlot(t *testing.T) {
	st := NewSynthState()

	st.PressNote(0, 0)
	st.PressNote(4, 0)
	st.PressNote(7, 0)
	checkPacked(t, st)

	voices := st.VoiceSnapshot()
	want := []int8{0, 4, 7}
	for i, n := range want {
		if !voices[i].Active || voices[i].Note != n {
			t.Fatalf("slot %d = %+v, want note %d", i, voices[i], n)
		}
	}

	for i := range want {
		if st.sawStep[i].Load() != sawStepTable[want[i]] {
			t.Errorf("slot %d saw step = %d, want %d", i, st.sawStep[i].Load(), sawStepTable[want[i]])
		}
		if st.sineStep[i].Load() != sineStepTable[want[i]] {
			t.Errorf("slot %d sine step = %d, want %d", i, st.sineStep[i].Load(), sineStepTable[want[i]])
		}
	}
}

func TestPressDuplicateIsNoOp(t *testing.T) {
	st := NewSynthState()
	st.PressNote(9, 0)
	st.PressNote(9, 0)

	voices := st.VoiceSnapshot()
	if !voices[0].Active || voices[1].Active {
		t.Fatalf("duplicate press changed the table: %+v", voices)
	}

	// Same semitone at another octave is a different note.
	st.PressNote(9, 1)
	voices = st.VoiceSnapshot()
	if !voices[1].Active || voices[1].Octave != 1 {
		t.Fatalf("octave-shifted press ignored: %+v", voices)
	}
}

func TestPressBeyondThreeIgnored(t *testing.T) {
	st := NewSynthState()
	for n := 0; n < 5; n++ {
		st.PressNote(n, 0)
	}
	voices := st.VoiceSnapshot()
	for i := 0; i < NUM_VOICES; i++ {
		if !voices[i].Active || int(voices[i].Note) != i {
			t.Fatalf("slot %d = %+v, want note %d", i, voices[i], i)
		}
	}
	checkPacked(t, st)
}

func TestReleaseCompactsLeft(t *testing.T) {
	st := NewSynthState()
	st.PressNote(0, 0)
	st.PressNote(4, 0)
	st.PressNote(7, 0)

	st.ReleaseNote(0, 0)
	checkPacked(t, st)

	voices := st.VoiceSnapshot()
	if voices[0].Note != 4 || voices[1].Note != 7 || voices[2].Active {
		t.Fatalf("compaction wrong: %+v", voices)
	}
	if st.sawStep[2].Load() != 0 {
		t.Errorf("slot 2 saw step = %d after release, want 0", st.sawStep[2].Load())
	}

	// Releasing a note nobody holds changes nothing.
	st.ReleaseNote(11, 0)
	voices = st.VoiceSnapshot()
	if voices[0].Note != 4 || voices[1].Note != 7 {
		t.Fatalf("spurious release changed the table: %+v", voices)
	}
}

func TestOctaveShiftScalesSteps(t *testing.T) {
	st := NewSynthState()

	// A at octave 0: the published step is the octave-4 step shifted
	// right four times, one sixteenth of the frequency.
	st.PressNote(9, -4)
	if got, want := st.sawStep[0].Load(), sawStepTable[9]>>4; got != want {
		t.Errorf("saw step = %d, want %d", got, want)
	}

	st.ReleaseNote(9, -4)
	st.PressNote(9, 4)
	if got, want := st.sawStep[0].Load(), sawStepTable[9]<<4; got != want {
		t.Errorf("saw step = %d, want %d", got, want)
	}
}

func TestSetLocalKeysReplacesAssignment(t *testing.T) {
	st := NewSynthState()
	st.SetLocalKeys([]int{0, 1, 2})
	checkPacked(t, st)

	if st.voiceCount(false) != 3 {
		t.Fatalf("voice count = %d, want 3", st.voiceCount(false))
	}

	st.SetLocalKeys([]int{5})
	checkPacked(t, st)
	voices := st.VoiceSnapshot()
	if voices[0].Note != 5 || voices[1].Active || voices[2].Active {
		t.Fatalf("replacement wrong: %+v", voices)
	}
	if st.voiceCount(false) != 1 {
		t.Fatalf("voice count = %d, want 1", st.voiceCount(false))
	}

	st.SetLocalKeys(nil)
	if st.voiceCount(false) != 0 {
		t.Fatalf("voice count = %d after clear, want 0", st.voiceCount(false))
	}
	checkPacked(t, st)
}
