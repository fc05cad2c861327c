//go:build !headless

// panel_backend_term.go - Raw-mode terminal front panel

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// A terminal delivers key presses but no releases, so each press latches
// its matrix bit for a short hold window. Good enough to play and to
// exercise every input path without a window system.
const termKeyHold = 250 * time.Millisecond

var termPianoKeys = [NUM_KEYS]byte{'z', 's', 'x', 'd', 'c', 'v', 'g', 'b', 'h', 'n', 'j', 'm'}

// Knob step keys, clockwise/counter-clockwise per knob 0..3.
var termKnobKeys = [NUM_KNOBS][2]byte{
	{'q', 'a'},
	{'w', 'f'},
	{'e', 'r'},
	{'t', 'y'},
}

// TermPanel is the no-window front panel: raw-mode stdin is the matrix,
// the OLED lines repaint in place with ANSI moves. Implements
// MatrixReader, JoystickReader and DisplayPanel.
type TermPanel struct {
	mu        sync.Mutex
	keyUntil  [NUM_KEYS]time.Time
	btnUntil  [3]time.Time // wave, joystick, reverb
	knobPhase [NUM_KNOBS]int
	joyX      int
	joyY      int

	fd       int
	oldState *term.State
	done     chan struct{}
	stopOnce sync.Once
}

func NewTermPanel() (*TermPanel, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("terminal raw mode: %w", err)
	}
	tp := &TermPanel{
		fd:       fd,
		oldState: oldState,
		joyX:     0,
		joyY:     JOY_ADC_MAX / 2,
		done:     make(chan struct{}),
	}
	for n := range tp.knobPhase {
		tp.knobPhase[n] = 2 // Gray (1,1), the idle-high detent
	}
	fmt.Print("\033[2J\033[H")
	go tp.readLoop()
	return tp, nil
}

// Done closes when the user quits with Ctrl+C or q is unavailable; the
// read loop owns it.
func (tp *TermPanel) Done() <-chan struct{} {
	return tp.done
}

// Close restores the terminal.
func (tp *TermPanel) Close() {
	tp.stopOnce.Do(func() {
		_ = term.Restore(tp.fd, tp.oldState)
		fmt.Print("\033[2J\033[H")
		close(tp.done)
	})
}

func (tp *TermPanel) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		c := buf[0]
		if c == 0x03 { // Ctrl+C
			tp.Close()
			return
		}
		tp.handleKey(c)
	}
}

func (tp *TermPanel) handleKey(c byte) {
	now := time.Now()
	tp.mu.Lock()
	defer tp.mu.Unlock()

	for i, k := range termPianoKeys {
		if c == k {
			tp.keyUntil[i] = now.Add(termKeyHold)
			return
		}
	}
	switch c {
	case '1':
		tp.btnUntil[0] = now.Add(termKeyHold)
		return
	case '2':
		tp.btnUntil[1] = now.Add(termKeyHold)
		return
	case '3':
		tp.btnUntil[2] = now.Add(termKeyHold)
		return
	}
	for n := range termKnobKeys {
		if c == termKnobKeys[n][0] {
			tp.knobPhase[n] = (tp.knobPhase[n] + 1) & 3
			return
		}
		if c == termKnobKeys[n][1] {
			tp.knobPhase[n] = (tp.knobPhase[n] + 3) & 3
			return
		}
	}
	// Joystick nudges on arrow-less keys.
	switch c {
	case '[':
		tp.joyX = clampADC(tp.joyX - 64)
	case ']':
		tp.joyX = clampADC(tp.joyX + 64)
	case '-':
		tp.joyY = clampADC(tp.joyY - 64)
	case '=':
		tp.joyY = clampADC(tp.joyY + 64)
	}
}

func (tp *TermPanel) ReadRow(row int) byte {
	now := time.Now()
	tp.mu.Lock()
	defer tp.mu.Unlock()

	b := byte(0x0F)
	switch row {
	case 0, 1, 2:
		for bit := 0; bit < 4; bit++ {
			if now.Before(tp.keyUntil[row*4+bit]) {
				b &^= 1 << bit
			}
		}
	case ROW_KNOBS_32:
		g3 := grayPhases[tp.knobPhase[3]]
		g2 := grayPhases[tp.knobPhase[2]]
		b = g3[0] | g3[1]<<1 | g2[0]<<2 | g2[1]<<3
	case ROW_KNOBS_10:
		g1 := grayPhases[tp.knobPhase[1]]
		g0 := grayPhases[tp.knobPhase[0]]
		b = g1[0] | g1[1]<<1 | g0[0]<<2 | g0[1]<<3
	case ROW_BUTTONS_A:
		if now.Before(tp.btnUntil[0]) {
			b &^= 1 << 1
		}
		if now.Before(tp.btnUntil[1]) {
			b &^= 1 << 2
		}
	case ROW_BUTTONS_B:
		if now.Before(tp.btnUntil[2]) {
			b &^= 1 << 0
		}
	}
	return b
}

func (tp *TermPanel) ReadAxes() (int, int) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	return tp.joyX, tp.joyY
}

func (tp *TermPanel) SetLines(lines [4]string) {
	fmt.Print("\033[H")
	for _, line := range lines {
		fmt.Printf("\033[K%s\r\n", line)
	}
	fmt.Printf("\033[K\r\n\033[Kkeys zsxdcvgbhnjm  1/2/3 modes  q/a w/f e/r t/y knobs  [ ] - = joystick  ^C quits\r\n")
}
