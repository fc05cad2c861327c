// audio_output.go - DAC backend interface and selection

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import "fmt"

const (
	AUDIO_BACKEND_OTO = iota
	AUDIO_BACKEND_ALSA
)

// AudioOutput is the DAC stand-in. Whatever the backend, it clocks the
// engine's consumer at 22000 samples per second; the consumer path stays
// wait-free on this side of the interface.
type AudioOutput interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// NewAudioOutput builds the selected backend and attaches the engine.
func NewAudioOutput(backend int, engine *SynthEngine) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		p, err := NewOtoPlayer(engine)
		if err != nil {
			return nil, err
		}
		return p, nil
	case AUDIO_BACKEND_ALSA:
		p, err := NewALSAPlayer(engine)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown audio backend %d", backend)
}
