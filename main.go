// main.go - Entry point and wiring for the IntuitionKeys keyboard module

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func boilerPlate() {
	fmt.Println("IntuitionKeys - polyphonic keyboard module")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionKeys")
	fmt.Println("License: GPLv3 or later")
}

// nullFrontPanel serves the -panel none case: no keys, centered joystick,
// display discarded. The serial link and scripts remain fully usable.
type nullFrontPanel struct{}

func (nullFrontPanel) ReadRow(int) byte     { return 0x0F }
func (nullFrontPanel) ReadAxes() (int, int) { return 0, JOY_ADC_MAX / 2 }
func (nullFrontPanel) SetLines([4]string)   {}

func main() {
	var (
		audioName  string
		serialDev  string
		baud       int
		panelName  string
		scriptPath string
		reverbTime float64
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&audioName, "audio", "oto", "audio backend: oto or alsa")
	flagSet.StringVar(&serialDev, "serial", "", "serial device for the peer link (empty: events to stdout)")
	flagSet.IntVar(&baud, "baud", SERIAL_BAUD, "serial baud rate")
	flagSet.StringVar(&panelName, "panel", "window", "front panel: window, term or none")
	flagSet.StringVar(&scriptPath, "script", "", "Lua auto-play script")
	flagSet.Float64Var(&reverbTime, "reverb-time", 1.0, "reverb time-scale in [0,1], fixed at startup")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./intuition_keys [-audio oto|alsa] [-serial /dev/ttyUSB0] [-panel window|term|none] [-script play.lua]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			flagSet.Usage()
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if panelName != "term" {
		boilerPlate()
	}

	state := NewSynthState()
	reverb := NewReverbEngine(reverbTime)
	engine := NewSynthEngine(state, reverb)

	backend := AUDIO_BACKEND_OTO
	if audioName == "alsa" {
		backend = AUDIO_BACKEND_ALSA
	}
	output, err := NewAudioOutput(backend, engine)
	if err != nil {
		fmt.Printf("Failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	engine.SetOutput(output)

	link, err := OpenSerialLink(serialDev, baud)
	if err != nil {
		fmt.Printf("Failed to open serial link: %v\n", err)
		os.Exit(1)
	}
	defer link.Close()

	outbox := NewOutbox()
	ingester := NewNoteIngester(state, link)

	var (
		matrix    MatrixReader   = nullFrontPanel{}
		joy       JoystickReader = nullFrontPanel{}
		disp      DisplayPanel   = nullFrontPanel{}
		panelDone <-chan struct{}
	)
	switch panelName {
	case "window":
		panel := NewEbitenPanel(ingester.Inject)
		if err := panel.Start(); err != nil {
			fmt.Printf("Failed to open front panel: %v\n", err)
			os.Exit(1)
		}
		matrix, joy, disp = panel, panel, panel
		panelDone = panel.Done()
	case "term":
		panel, err := NewTermPanel()
		if err != nil {
			fmt.Printf("Failed to open terminal panel: %v\n", err)
			os.Exit(1)
		}
		defer panel.Close()
		matrix, joy, disp = panel, panel, panel
		panelDone = panel.Done()
	case "none":
	default:
		fmt.Printf("Unknown panel %q\n", panelName)
		os.Exit(1)
	}

	scanner := NewKeyScanner(state, reverb, outbox, matrix, joy)
	composer := NewDisplayComposer(state, reverb, disp)

	done := make(chan struct{})

	go engine.FillLoop(done)
	go outbox.Drain(link)
	go composer.Run(done)

	go func() {
		ticker := time.NewTicker(SCAN_PERIOD)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				scanner.Scan()
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(INGEST_PERIOD)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				ingester.Drain()
			}
		}
	}()

	if scriptPath != "" {
		go func() {
			if err := RunScript(scriptPath, ingester.Inject); err != nil {
				fmt.Printf("Script error: %v\n", err)
			}
		}()
	}

	engine.Start()
	defer engine.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	if panelDone != nil {
		select {
		case <-sig:
		case <-panelDone:
		}
	} else {
		<-sig
	}
	close(done)
}
