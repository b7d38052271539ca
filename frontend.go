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
	"github.com/massung/chip8vm/chip8"
)

/// ActionKind is something the user asked the emulator to do.
///
type ActionKind int

const (
	ActionQuit ActionKind = iota + 1
	ActionReboot
	ActionPause
	ActionLoad
)

/// Action is a request from a frontend.
///
type Action struct {
	Kind ActionKind

	/// Path of the ROM for ActionLoad.
	///
	Path string

	/// Paused is true if an ActionReboot should leave the machine paused.
	///
	Paused bool
}

/// Frontend is the host side of the emulator: it shows frames and
/// reports the keypad.
///
type Frontend interface {
	/// Poll host events, updating the keypad. Returns any actions the
	/// user requested since the last poll.
	///
	Poll() []Action

	/// Keys returns the current keypad state.
	///
	Keys() chip8.Keypad

	/// Present a frame to the user.
	///
	Present(frame *chip8.Frame)

	/// Close releases the host resources.
	///
	Close()
}
