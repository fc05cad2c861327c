//go:build headless

package main

import "fmt"

type OtoPlayer struct {
	started bool
	engine  *SynthEngine
}

func NewOtoPlayer(engine *SynthEngine) (*OtoPlayer, error) {
	return &OtoPlayer{engine: engine}, nil
}

func (op *OtoPlayer) Start() {
	op.started = true
}

func (op *OtoPlayer) Stop() {
	op.started = false
}

func (op *OtoPlayer) Close() {
	op.started = false
}

func (op *OtoPlayer) IsStarted() bool {
	return op.started
}

func NewALSAPlayer(engine *SynthEngine) (*OtoPlayer, error) {
	return nil, fmt.Errorf("ALSA backend unavailable in headless build")
}
