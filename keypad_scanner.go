// keypad_scanner.go - Periodic switch-matrix scan and derived state updates

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

// MatrixReader abstracts the 7x4 switch matrix. ReadRow selects the given
// row, lets it settle and returns the four inverted column bits in the low
// nibble: 0 = pressed. Implementations cover the real GPIO matrix and the
// emulated front panels.
type MatrixReader interface {
	ReadRow(row int) byte
}

// JoystickReader abstracts the two joystick ADC channels, each in
// [0,1023].
type JoystickReader interface {
	ReadAxes() (x, y int)
}

// KeyScanner walks the matrix every 50 ms and feeds everything derived
// from it: the published snapshot, outgoing note events, the voice table,
// the joystick square-wave limits, the mode toggles and the knob counters.
type KeyScanner struct {
	state  *SynthState
	reverb *ReverbEngine
	outbox *Outbox
	matrix MatrixReader
	joy    JoystickReader

	prev  [MATRIX_ROWS]byte
	knobs [NUM_KNOBS]KnobDecoder
}

func NewKeyScanner(state *SynthState, reverb *ReverbEngine, outbox *Outbox, matrix MatrixReader, joy JoystickReader) *KeyScanner {
	ks := &KeyScanner{
		state:  state,
		reverb: reverb,
		outbox: outbox,
		matrix: matrix,
		joy:    joy,
	}
	for r := range ks.prev {
		ks.prev[r] = 0x0F // all released
	}
	for n := range ks.knobs {
		ks.knobs[n].prev = 0b11 // idle high with the matrix pull-ups
	}
	ks.knobs[KNOB_VOLUME].pos = KNOB_MAX
	state.knobPos[KNOB_VOLUME].Store(KNOB_MAX)
	return ks
}

// Scan performs one full matrix pass. Note events are emitted strictly
// after the matrix transition that caused them; step-size publication is
// not ordered against event emission.
func (ks *KeyScanner) Scan() {
	var rows [MATRIX_ROWS]byte
	for r := 0; r < MATRIX_ROWS; r++ {
		rows[r] = ks.matrix.ReadRow(r) & 0x0F
	}

	ks.state.PublishKeys(rows)

	keysChanged := ks.emitKeyEvents(rows)
	if keysChanged {
		ks.rebuildVoices(rows)
	}

	ks.updateJoystick()
	ks.updateToggles(rows)
	ks.updateKnobs(rows)

	ks.prev = rows
}

// emitKeyEvents diffs the piano-key rows against the previous scan and
// queues a press or release event per changed bit. Returns whether any key
// bit changed at all.
func (ks *KeyScanner) emitKeyEvents(rows [MATRIX_ROWS]byte) bool {
	changed := false
	for r := 0; r < 3; r++ {
		diff := rows[r] ^ ks.prev[r]
		if diff == 0 {
			continue
		}
		changed = true
		for bit := 0; bit < 4; bit++ {
			if diff&(1<<bit) == 0 {
				continue
			}
			key := r*4 + bit
			if ks.prev[r]&(1<<bit) != 0 {
				// Was high (not pressed), now low: press.
				ks.outbox.Push(noteEvent('P', 4, key))
			} else {
				ks.outbox.Push(noteEvent('R', 4, key))
			}
		}
	}
	return changed
}

// rebuildVoices reassigns the voice table from the currently pressed keys
// in row-major order. Only called when a key changed, so an unchanged
// chord never flickers; remote releases compact slots instead.
func (ks *KeyScanner) rebuildVoices(rows [MATRIX_ROWS]byte) {
	pressed := make([]int, 0, NUM_VOICES)
	for r := 0; r < 3 && len(pressed) < NUM_VOICES; r++ {
		for bit := 0; bit < 4 && len(pressed) < NUM_VOICES; bit++ {
			if rows[r]&(1<<bit) == 0 {
				pressed = append(pressed, r*4+bit)
			}
		}
	}
	ks.state.SetLocalKeys(pressed)
}

// updateJoystick derives the square-wave high/low sample counts from the
// ADC axes so the sample loop never divides.
func (ks *KeyScanner) updateJoystick() {
	x, y := ks.joy.ReadAxes()
	if x < 0 {
		x = 0
	} else if x > JOY_ADC_MAX {
		x = JOY_ADC_MAX
	}
	if y < 0 {
		y = 0
	} else if y > JOY_ADC_MAX {
		y = JOY_ADC_MAX
	}
	period := int32(JOY_PERIOD_BASE + x/JOY_PERIOD_DIV)
	high := period * int32(y) / JOY_DUTY_RANGE
	ks.state.joyHigh.Store(high)
	ks.state.joyLow.Store(period - high)
}

// updateToggles flips the mode flags on the rising edge of their side
// buttons.
func (ks *KeyScanner) updateToggles(rows [MATRIX_ROWS]byte) {
	pressEdge := func(row int, bit uint) bool {
		return ks.prev[row]&(1<<bit) != 0 && rows[row]&(1<<bit) == 0
	}
	if pressEdge(ROW_BUTTONS_A, 1) {
		ks.state.waveSine.Store(!ks.state.waveSine.Load())
	}
	if pressEdge(ROW_BUTTONS_A, 2) {
		ks.state.joystickMode.Store(!ks.state.joystickMode.Load())
	}
	if pressEdge(ROW_BUTTONS_B, 0) {
		ks.state.reverbOn.Store(!ks.state.reverbOn.Load())
	}
}

// updateKnobs runs the quadrature decoder for each knob and mirrors the
// counters into the published state. Knob 3 is the volume, knob 0 the
// reverb wet amount.
func (ks *KeyScanner) updateKnobs(rows [MATRIX_ROWS]byte) {
	// Row 3 carries knobs 3 and 2, row 4 knobs 1 and 0.
	pairs := [NUM_KNOBS]struct {
		row  int
		a, b uint
	}{
		3: {ROW_KNOBS_32, 0, 1},
		2: {ROW_KNOBS_32, 2, 3},
		1: {ROW_KNOBS_10, 0, 1},
		0: {ROW_KNOBS_10, 2, 3},
	}

	for n := 0; n < NUM_KNOBS; n++ {
		p := pairs[n]
		a := (rows[p.row] >> p.a) & 1
		b := (rows[p.row] >> p.b) & 1
		ks.knobs[n].Update(a, b)
		ks.state.knobPos[n].Store(ks.knobs[n].Pos())
	}

	ks.state.volume.Store(ks.state.knobPos[KNOB_VOLUME].Load())
	ks.reverb.SetWet(float32(ks.state.knobPos[KNOB_REVERB].Load()) / KNOB_MAX)
}

// noteEvent formats a 3-character note event: kind 'P' or 'R', an octave
// digit and the hex key index.
func noteEvent(kind byte, octave, key int) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{kind, byte('0' + octave), hex[key&0x0F]})
}
