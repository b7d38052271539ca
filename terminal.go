/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/massung/chip8vm/chip8"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// holdFrames is how many frames a key stays down after the terminal
// reports it. Terminals only send presses (and auto-repeat), never releases.
const holdFrames = 8

// termKeys maps the same 4x4 block of the keyboard the window uses.
var termKeys = map[byte]int{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

// Terminal is the text frontend. It draws two pixel rows per line
// with half block characters and reads keys from stdin in raw mode.
type Terminal struct {
	out   io.Writer
	input chan byte

	// frames left until each key is released
	held [chip8.KeyCount]int

	// last frame written, to skip redrawing
	last  chip8.Frame
	drawn bool

	fd    int
	state *term.State
}

// NewTerminal switches stdin to raw mode and starts reading keys.
func NewTerminal(logger *log.Logger) (*Terminal, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if w < chip8.Width || h < chip8.Height/2 {
			logger.Error("Terminal is smaller than the display",
				log.Int("columns", w),
				log.Int("rows", h))
		}
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}

	t := newTerminal(os.Stdout)
	t.fd = fd
	t.state = state

	go t.read(os.Stdin)

	// clear the screen and hide the cursor
	fmt.Fprint(t.out, "\x1b[2J\x1b[?25l")

	return t, nil
}

func newTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out:   out,
		input: make(chan byte, 64),
	}
}

// read forwards raw input until it fails.
func (t *Terminal) read(r io.Reader) {
	buf := make([]byte, 16)

	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			t.input <- b
		}
		if err != nil {
			close(t.input)
			return
		}
	}
}

// Poll drains pending input.
func (t *Terminal) Poll() []Action {
	for k := range t.held {
		if t.held[k] > 0 {
			t.held[k]--
		}
	}

	var actions []Action

	for {
		select {
		case b, ok := <-t.input:
			if !ok {
				return append(actions, Action{Kind: ActionQuit})
			}
			if a, ok := t.press(b); ok {
				actions = append(actions, a)
			}
		default:
			return actions
		}
	}
}

func (t *Terminal) press(b byte) (Action, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}

	if key, ok := termKeys[b]; ok {
		t.held[key] = holdFrames
		return Action{}, false
	}

	switch b {
	case 0x03, 0x1B: // ctrl-c, esc
		return Action{Kind: ActionQuit}, true
	case 0x08, 0x7F: // backspace
		return Action{Kind: ActionReboot}, true
	case ' ':
		return Action{Kind: ActionPause}, true
	}

	return Action{}, false
}

// Keys returns the keypad state.
func (t *Terminal) Keys() chip8.Keypad {
	var keys chip8.Keypad
	for k, n := range t.held {
		keys[k] = n > 0
	}
	return keys
}

// Present draws the frame if it changed since the last one.
func (t *Terminal) Present(frame *chip8.Frame) {
	if t.drawn && *frame == t.last {
		return
	}

	t.last = *frame
	t.drawn = true

	_, _ = io.WriteString(t.out, render(frame))
}

// Close restores the cursor and the terminal mode.
func (t *Terminal) Close() {
	fmt.Fprint(t.out, "\x1b[?25h\r\n")

	if t.state != nil {
		_ = term.Restore(t.fd, t.state)
		t.state = nil
	}
}

// render the frame from the top left corner of the terminal.
func render(frame *chip8.Frame) string {
	var sb strings.Builder

	sb.WriteString("\x1b[H")

	for y := 0; y < chip8.Height; y += 2 {
		for x := 0; x < chip8.Width; x++ {
			top := frame[y*chip8.Width+x] == chip8.PixelOn
			bottom := frame[(y+1)*chip8.Width+x] == chip8.PixelOn

			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}

		// raw mode doesn't translate newlines
		sb.WriteString("\r\n")
	}

	return sb.String()
}
