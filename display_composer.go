// display_composer.go - OLED text composition from published snapshots

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"strings"
	"time"
)

var noteNames = [NUM_KEYS]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// DisplayPanel receives the composed OLED lines. Implemented by the front
// panel backends.
type DisplayPanel interface {
	SetLines(lines [4]string)
}

// DisplayComposer renders the published state into four OLED text lines at
// roughly 10 Hz. Strictly read-only over the shared state: snapshots and
// atomics in, text out.
type DisplayComposer struct {
	state  *SynthState
	reverb *ReverbEngine
	panel  DisplayPanel
}

func NewDisplayComposer(state *SynthState, reverb *ReverbEngine, panel DisplayPanel) *DisplayComposer {
	return &DisplayComposer{state: state, reverb: reverb, panel: panel}
}

// Compose builds the current four lines.
func (dc *DisplayComposer) Compose() [4]string {
	st := dc.state

	wave := "SAW"
	if st.waveSine.Load() {
		wave = "SINE"
	}
	rev := "off"
	if st.reverbOn.Load() {
		rev = "on"
	}
	joy := "off"
	if st.joystickMode.Load() {
		joy = "on"
	}

	var lines [4]string
	lines[0] = fmt.Sprintf("VOL %2d/%d  WAVE %s", st.volume.Load(), VOLUME_MAX, wave)
	lines[1] = fmt.Sprintf("REV %-3s  WET %2d/%d", rev, st.knobPos[KNOB_REVERB].Load(), KNOB_MAX)
	lines[2] = fmt.Sprintf("JOY %-3s  HI %d LO %d", joy, st.joyHigh.Load(), st.joyLow.Load())

	var held []string
	for _, v := range st.VoiceSnapshot() {
		if v.Active {
			held = append(held, fmt.Sprintf("%s%d", noteNames[v.Note], 4+int(v.Octave)))
		}
	}
	if len(held) == 0 {
		lines[3] = "--"
	} else {
		lines[3] = strings.Join(held, " ")
	}
	return lines
}

// Run refreshes the panel until done closes.
func (dc *DisplayComposer) Run(done <-chan struct{}) {
	ticker := time.NewTicker(COMPOSE_PERIOD)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			dc.panel.SetLines(dc.Compose())
		}
	}
}
