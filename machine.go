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
	"context"
	"time"

	"github.com/massung/chip8vm/chip8"
	"github.com/retroenv/retrogolib/log"
)

/// Machine runs a CHIP-8 virtual machine against a frontend at a fixed
/// instruction rate, refreshing the frontend at 60 Hz.
///
type Machine struct {
	/// VM is the running virtual machine.
	///
	VM *chip8.VM

	/// ROM is the file VM was booted from.
	///
	ROM string

	/// True if pausing emulation.
	///
	Paused bool

	delay  time.Duration
	trace  bool
	logger *log.Logger
}

/// NewMachine creates a machine that steps once every delay.
///
func NewMachine(logger *log.Logger, delay time.Duration, trace bool) *Machine {
	return &Machine{
		delay:  delay,
		trace:  trace,
		logger: logger,
	}
}

/// Boot a ROM file in a fresh virtual machine. If the ROM can't be
/// loaded the current virtual machine keeps running.
///
func (m *Machine) Boot(rom string) error {
	vm := chip8.New(m.logger)
	vm.SetTrace(m.trace)

	if err := vm.LoadFile(rom); err != nil {
		return err
	}

	m.VM = vm
	m.ROM = rom
	m.Paused = false

	m.logger.Info("Booted ROM", log.String("rom", rom))

	return nil
}

/// Run until the frontend quits or the context is cancelled.
///
func (m *Machine) Run(ctx context.Context, fe Frontend) error {
	clock := time.NewTicker(m.delay)
	defer clock.Stop()

	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-video.C:
			if !m.Handle(fe.Poll()) {
				return nil
			}

			frame := m.VM.Framebuffer()
			fe.Present(&frame)
		case <-clock.C:
			m.Step(fe.Keys())
		}
	}
}

/// Step the virtual machine once with the given keypad. A fault pauses
/// the machine where it stopped.
///
func (m *Machine) Step(keys chip8.Keypad) {
	if m.Paused {
		return
	}

	m.VM.SetKeys(keys)

	if err := m.VM.Step(); err != nil {
		m.logger.Error("Machine halted", log.Err(err))
		m.Paused = true
	}
}

/// Handle frontend actions. Returns false once the user quits.
///
func (m *Machine) Handle(actions []Action) bool {
	for _, a := range actions {
		switch a.Kind {
		case ActionQuit:
			return false
		case ActionReboot:
			if err := m.Boot(m.ROM); err != nil {
				m.logger.Error("Rebooting failed", log.Err(err))
				continue
			}

			// holding control during reset will reboot paused
			m.Paused = a.Paused
		case ActionPause:
			m.Paused = !m.Paused
		case ActionLoad:
			if err := m.Boot(a.Path); err != nil {
				m.logger.Error("Loading ROM failed", log.String("rom", a.Path), log.Err(err))
			}
		}
	}

	return true
}
