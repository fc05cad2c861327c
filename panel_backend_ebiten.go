//go:build !headless

// panel_backend_ebiten.go - Emulated front panel: OLED, key matrix and joystick in a window

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// Keyboard mapping for the 12 piano keys, key index 0..11 (C..B).
var pianoKeys = [NUM_KEYS]ebiten.Key{
	ebiten.KeyZ, ebiten.KeyS, ebiten.KeyX, ebiten.KeyD,
	ebiten.KeyC, ebiten.KeyV, ebiten.KeyG, ebiten.KeyB,
	ebiten.KeyH, ebiten.KeyN, ebiten.KeyJ, ebiten.KeyM,
}

// Function keys step the emulated quadrature knobs one detent per press,
// odd = clockwise, even = counter-clockwise.
var knobKeys = [NUM_KNOBS][2]ebiten.Key{
	{ebiten.KeyF1, ebiten.KeyF2},
	{ebiten.KeyF3, ebiten.KeyF4},
	{ebiten.KeyF5, ebiten.KeyF6},
	{ebiten.KeyF7, ebiten.KeyF8},
}

// Quadrature (A,B) pairs in clockwise order; the knob rows expose these
// bits so the real decoder sees real Gray-code transitions.
var grayPhases = [4][2]byte{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// EbitenPanel emulates the physical front panel in a window: the PC
// keyboard stands in for the switch matrix, the mouse for the joystick,
// and the OLED lines render as text. Implements MatrixReader,
// JoystickReader and DisplayPanel.
type EbitenPanel struct {
	mu        sync.Mutex
	rows      [MATRIX_ROWS]byte
	knobPhase [NUM_KNOBS]int
	joyX      int
	joyY      int
	lines     [4]string

	paste func(string)

	clipboardOnce sync.Once
	clipboardOK   bool

	running   bool
	vsyncChan chan struct{}
	done      chan struct{}
	drawOnce  sync.Once
}

// NewEbitenPanel builds the panel; paste receives clipboard text injected
// with Ctrl+V (may be nil).
func NewEbitenPanel(paste func(string)) *EbitenPanel {
	p := &EbitenPanel{
		paste:     paste,
		vsyncChan: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	for r := range p.rows {
		p.rows[r] = 0x0F
	}
	for n := range p.knobPhase {
		p.knobPhase[n] = 2 // Gray (1,1), the idle-high detent
	}
	return p
}

// Start opens the window and runs the game loop in its own goroutine,
// returning once the first frame has drawn.
func (p *EbitenPanel) Start() error {
	if p.running {
		return nil
	}
	p.running = true
	ebiten.SetWindowSize(512, 256)
	ebiten.SetWindowTitle("IntuitionKeys (c) 2024 - 2026 Zayn Otley")
	ebiten.SetRunnableOnUnfocused(true)

	go func() {
		defer close(p.done)
		if err := ebiten.RunGame(p); err != nil && err != ebiten.Termination {
			fmt.Printf("Ebiten error: %v\n", err)
		}
	}()

	// Wait for the first frame so the matrix reads real key state.
	select {
	case <-p.vsyncChan:
		return nil
	case <-p.done:
		return fmt.Errorf("front panel exited before first frame")
	}
}

// Done closes when the window does.
func (p *EbitenPanel) Done() <-chan struct{} {
	return p.done
}

func (p *EbitenPanel) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	var rows [MATRIX_ROWS]byte
	for r := range rows {
		rows[r] = 0x0F
	}

	// Piano keys, rows 0..2, active low.
	for i, k := range pianoKeys {
		if ebiten.IsKeyPressed(k) {
			rows[i/4] &^= 1 << (i % 4)
		}
	}

	// Side buttons.
	if ebiten.IsKeyPressed(ebiten.Key1) {
		rows[ROW_BUTTONS_A] &^= 1 << 1 // wave-form
	}
	if ebiten.IsKeyPressed(ebiten.Key2) {
		rows[ROW_BUTTONS_A] &^= 1 << 2 // joystick mode
	}
	if ebiten.IsKeyPressed(ebiten.Key3) {
		rows[ROW_BUTTONS_B] &^= 1 << 0 // reverb
	}

	p.mu.Lock()

	// Knob detents: advance the Gray phase one step per keypress.
	for n := range knobKeys {
		if inpututil.IsKeyJustPressed(knobKeys[n][0]) {
			p.knobPhase[n] = (p.knobPhase[n] + 1) & 3
		}
		if inpututil.IsKeyJustPressed(knobKeys[n][1]) {
			p.knobPhase[n] = (p.knobPhase[n] + 3) & 3
		}
	}

	// Knob rows expose the Gray bits directly: row 3 = knobs 3,2 and
	// row 4 = knobs 1,0, two bits each.
	g3 := grayPhases[p.knobPhase[3]]
	g2 := grayPhases[p.knobPhase[2]]
	g1 := grayPhases[p.knobPhase[1]]
	g0 := grayPhases[p.knobPhase[0]]
	rows[ROW_KNOBS_32] = g3[0] | g3[1]<<1 | g2[0]<<2 | g2[1]<<3
	rows[ROW_KNOBS_10] = g1[0] | g1[1]<<1 | g0[0]<<2 | g0[1]<<3

	p.rows = rows

	// Mouse position maps to the joystick axes.
	mx, my := ebiten.CursorPosition()
	w, h := 256, 128
	p.joyX = clampADC(mx * JOY_ADC_MAX / w)
	p.joyY = clampADC(my * JOY_ADC_MAX / h)

	p.mu.Unlock()

	// Ctrl+V pastes a note-event script into the ingester.
	if p.paste != nil && ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		p.clipboardOnce.Do(func() {
			p.clipboardOK = clipboard.Init() == nil
		})
		if p.clipboardOK {
			if data := clipboard.Read(clipboard.FmtText); len(data) > 0 {
				p.paste(string(data) + "\n")
			}
		}
	}

	return nil
}

func (p *EbitenPanel) Draw(screen *ebiten.Image) {
	p.drawOnce.Do(func() {
		p.vsyncChan <- struct{}{}
	})

	screen.Fill(color.Black)
	oled := color.RGBA{R: 255, G: 200, B: 40, A: 255}

	p.mu.Lock()
	lines := p.lines
	p.mu.Unlock()

	face := basicfont.Face7x13
	for i, line := range lines {
		text.Draw(screen, line, face, 8, 20+i*16, oled)
	}
	text.Draw(screen, "keys ZSXDCVGBHNJM  1/2/3 modes  F1-F8 knobs", face, 8, 120, color.RGBA{R: 90, G: 90, B: 90, A: 255})
}

func (p *EbitenPanel) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 256, 128
}

func (p *EbitenPanel) ReadRow(row int) byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if row < 0 || row >= MATRIX_ROWS {
		return 0x0F
	}
	return p.rows[row]
}

func (p *EbitenPanel) ReadAxes() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.joyX, p.joyY
}

func (p *EbitenPanel) SetLines(lines [4]string) {
	p.mu.Lock()
	p.lines = lines
	p.mu.Unlock()
}

func clampADC(v int) int {
	if v < 0 {
		return 0
	}
	if v > JOY_ADC_MAX {
		return JOY_ADC_MAX
	}
	return v
}
