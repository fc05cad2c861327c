// serial_link.go - Note-event protocol over the serial link

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Outbox is the bounded mailbox of outgoing note events. Senders block
// while it is full; a full outbox only occurs during a burst of key
// changes and the stall is preferred over dropping events.
type Outbox struct {
	ch chan string
}

func NewOutbox() *Outbox {
	return &Outbox{ch: make(chan string, OUTBOX_CAP)}
}

// Push queues one note event.
func (ob *Outbox) Push(ev string) {
	ob.ch <- ev
}

// Drain forwards queued events to w, one per line, until the outbox is
// closed. Runs as the mailbox drainer activity.
func (ob *Outbox) Drain(w io.Writer) {
	for ev := range ob.ch {
		fmt.Fprintf(w, "%s\n", ev)
	}
}

// Close ends the drainer.
func (ob *Outbox) Close() {
	close(ob.ch)
}

// SerialLink is the byte pipe to the peer modules. A real port comes from
// go.bug.st/serial with a short read timeout so the ingester's periodic
// drain never blocks a full tick; with no device configured the link
// degrades to stdout so note events remain observable.
type SerialLink struct {
	r    io.Reader
	w    io.Writer
	port serial.Port
}

// OpenSerialLink opens device at the given baud rate, or a stdout-backed
// stub when device is empty.
func OpenSerialLink(device string, baud int) (*SerialLink, error) {
	if device == "" {
		return &SerialLink{r: emptyReader{}, w: os.Stdout}, nil
	}
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("serial open %s: %w", device, err)
	}
	if err := port.SetReadTimeout(time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("serial read timeout: %w", err)
	}
	return &SerialLink{r: port, w: port, port: port}, nil
}

func (sl *SerialLink) Read(p []byte) (int, error)  { return sl.r.Read(p) }
func (sl *SerialLink) Write(p []byte) (int, error) { return sl.w.Write(p) }

func (sl *SerialLink) Close() error {
	if sl.port != nil {
		return sl.port.Close()
	}
	return nil
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, io.EOF }

// NoteIngester parses incoming Pxy/Rxy messages and mutates the voice
// table. Characters accumulate into a 3-byte field up to a newline;
// messages with an unrecognized first byte or out-of-range fields are
// silently ignored. Inject feeds locally generated script or paste input
// through the same parser.
type NoteIngester struct {
	state *SynthState
	r     io.Reader

	mu       sync.Mutex
	field    [3]byte
	n        int
	overflow bool
	buf      [64]byte
}

func NewNoteIngester(state *SynthState, r io.Reader) *NoteIngester {
	return &NoteIngester{state: state, r: r}
}

// Drain consumes whatever the link has buffered. Runs every 5 ms.
func (ni *NoteIngester) Drain() {
	for {
		n, err := ni.r.Read(ni.buf[:])
		if n > 0 {
			ni.consume(ni.buf[:n])
		}
		if n == 0 || err != nil {
			return
		}
	}
}

// Inject runs the given bytes through the parser as if they had arrived on
// the link.
func (ni *NoteIngester) Inject(s string) {
	ni.consume([]byte(s))
}

func (ni *NoteIngester) consume(data []byte) {
	ni.mu.Lock()
	defer ni.mu.Unlock()
	for _, c := range data {
		if c == '\n' || c == '\r' {
			if ni.n == 3 && !ni.overflow {
				ni.process()
			}
			ni.n = 0
			ni.overflow = false
			continue
		}
		if ni.n < 3 {
			ni.field[ni.n] = c
			ni.n++
		} else {
			ni.overflow = true
		}
	}
}

// process applies one complete 3-byte field.
func (ni *NoteIngester) process() {
	kind := ni.field[0]
	oct := ni.field[1]
	key := ni.field[2]

	if oct < '0' || oct > '8' {
		return
	}
	shift := int(oct) - '4'

	note, ok := parseNoteDigit(key)
	if !ok {
		return
	}

	switch kind {
	case 'P':
		ni.state.PressNote(note, shift)
	case 'R':
		ni.state.ReleaseNote(note, shift)
	}
}

// parseNoteDigit maps '0'..'9','A','B' to a semitone index in [0,11].
func parseNoteDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c == 'A' || c == 'B':
		return int(c-'A') + 10, true
	}
	return 0, false
}
