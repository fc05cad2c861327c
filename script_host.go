// script_host.go - Lua auto-play scripts driving the note-event parser

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// RunScript executes a Lua file exposing press(octave, note),
// release(octave, note) and sleep(ms). Events flow through inject, the
// same path serial input takes, so a script plays the module exactly like
// a peer keyboard would:
//
//	press(4, 0); sleep(500); release(4, 0)
func RunScript(path string, inject func(string)) error {
	L := lua.NewState()
	defer L.Close()

	emit := func(kind byte) lua.LGFunction {
		return func(L *lua.LState) int {
			oct := L.CheckInt(1)
			note := L.CheckInt(2)
			if oct < 0 || oct > 8 || note < 0 || note > 11 {
				L.ArgError(1, "octave 0..8, note 0..11")
				return 0
			}
			inject(noteEvent(kind, oct, note) + "\n")
			return 0
		}
	}

	L.SetGlobal("press", L.NewFunction(emit('P')))
	L.SetGlobal("release", L.NewFunction(emit('R')))
	L.SetGlobal("sleep", L.NewFunction(func(L *lua.LState) int {
		ms := L.CheckInt(1)
		if ms > 0 {
			time.Sleep(time.Duration(ms) * time.Millisecond)
		}
		return 0
	}))

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}
