package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// Poll events from SDL and map keys to the CHIP-8 keypad.
///
func (w *Window) Poll() []Action {
	var actions []Action

	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			actions = append(actions, Action{Kind: ActionQuit})
		case *sdl.KeyboardEvent:
			if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
				w.keys[key] = ev.Type == sdl.KEYDOWN
				continue
			}

			// emulation keys act on the first press only
			if ev.Type != sdl.KEYDOWN || ev.Repeat != 0 {
				continue
			}

			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				actions = append(actions, Action{Kind: ActionQuit})
			case sdl.SCANCODE_BACKSPACE:
				actions = append(actions, Action{
					Kind:   ActionReboot,
					Paused: ev.Keysym.Mod&sdl.KMOD_CTRL != 0,
				})
			case sdl.SCANCODE_F3:
				if rom, ok := OpenROMDialog(w.logger); ok {
					actions = append(actions, Action{Kind: ActionLoad, Path: rom})
				}
			case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
				actions = append(actions, Action{Kind: ActionPause})
			}
		}
	}

	return actions
}
