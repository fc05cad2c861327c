// display_composer_test.go - OLED line composition tests

package main

import (
	"strings"
	"testing"
)

func TestComposeLines(t *testing.T) {
	st := NewSynthState()
	rv := NewReverbEngine(1.0)
	dc := NewDisplayComposer(st, rv, nil)

	st.volume.Store(12)
	st.waveSine.Store(true)
	st.reverbOn.Store(true)
	st.knobPos[KNOB_REVERB].Store(8)
	st.PressNote(0, 0)
	st.PressNote(9, -1)

	lines := dc.Compose()
	if !strings.Contains(lines[0], "VOL 12/16") || !strings.Contains(lines[0], "SINE") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "REV on") || !strings.Contains(lines[1], "WET  8/16") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if lines[3] != "C4 A3" {
		t.Errorf("line 3 = %q, want held notes C4 A3", lines[3])
	}
}

func TestComposeEmptyVoices(t *testing.T) {
	st := NewSynthState()
	dc := NewDisplayComposer(st, NewReverbEngine(1.0), nil)
	if lines := dc.Compose(); lines[3] != "--" {
		t.Errorf("line 3 = %q, want --", lines[3])
	}
}
