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

package chip8

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"
)

const (
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// ProgramStart is where ROMs are loaded and execution begins.
	///
	ProgramStart = 0x200

	/// MaxROMSize is the largest program that fits in memory.
	///
	MaxROMSize = MemorySize - ProgramStart

	/// FontStart is the address of the built-in font.
	///
	FontStart = 0x50

	/// Width and Height of the display in pixels.
	///
	Width  = 64
	Height = 32

	/// FrameSize is the number of pixels in the display.
	///
	FrameSize = Width * Height

	/// StackSize is how many return addresses fit on the call stack.
	///
	StackSize = 16

	/// KeyCount is the number of keys on the hex keypad.
	///
	KeyCount = 16

	/// PixelOn and PixelOff are the only values a frame pixel can hold.
	///
	PixelOn  = 0xFFFFFFFF
	PixelOff = 0
)

/// Keypad is the pressed state of keys 0x0-0xF.
///
type Keypad [KeyCount]bool

/// Frame is the display, row-major, one uint32 per pixel.
///
type Frame [FrameSize]uint32

/// VM is a CHIP-8 virtual machine. It owns all machine state and is
/// driven externally: the host sets the keypad, calls Step at its own
/// pace and reads back the Framebuffer.
///
type VM struct {
	/// Memory addressable by CHIP-8. The first 512 bytes are reserved
	/// for the interpreter; only the font lives there.
	///
	memory [MemorySize]byte

	/// Video memory, one pixel per element.
	///
	video Frame

	/// v are the 16 virtual registers. VF doubles as the flag register.
	///
	v [16]byte

	/// i is the address register.
	///
	i uint16

	/// pc is the program counter. All programs begin at 0x200.
	///
	pc uint16

	/// The call stack and the number of addresses on it.
	///
	stack [StackSize]uint16
	sp    uint8

	/// Delay and sound timers, decremented once per step.
	///
	dt byte
	st byte

	/// Keys hold the current state for the 16-key pad keys.
	///
	keys Keypad

	rng    *rand.Rand
	logger *log.Logger

	/// When set every executed instruction is logged.
	///
	trace bool
}

/// New creates a reset CHIP-8 virtual machine.
///
func New(logger *log.Logger) *VM {
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}

	vm := &VM{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger,
	}

	vm.Reset()

	return vm
}

/// Reset the virtual machine to its power-on state.
///
func (vm *VM) Reset() {
	vm.memory = [MemorySize]byte{}
	vm.video = Frame{}
	vm.keys = Keypad{}

	// reset program counter, address register and stack
	vm.pc = ProgramStart
	vm.i = 0
	vm.stack = [StackSize]uint16{}
	vm.sp = 0

	// reset virtual registers and timers
	vm.v = [16]byte{}
	vm.dt = 0
	vm.st = 0

	// load the font
	copy(vm.memory[FontStart:], Font[:])
}

/// LoadROM copies a program into memory at ProgramStart. Nothing else
/// is modified, so the caller should Reset before loading a new program.
///
func (vm *VM) LoadROM(program []byte) error {
	if len(program) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes", ErrROMTooLarge, len(program))
	}

	copy(vm.memory[ProgramStart:], program)

	vm.logger.Debug("Loaded ROM",
		log.Int("bytes", len(program)),
		log.Hex("address", uint16(ProgramStart)))

	return nil
}

/// LoadFile reads a ROM file and loads it with LoadROM.
///
func (vm *VM) LoadFile(file string) error {
	program, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading rom '%s': %w", file, err)
	}

	return vm.LoadROM(program)
}

/// SetKeys replaces the keypad state.
///
func (vm *VM) SetKeys(keys Keypad) {
	vm.keys = keys
}

/// SetTrace toggles logging of every executed instruction.
///
func (vm *VM) SetTrace(on bool) {
	vm.trace = on
}

/// PC returns the program counter.
///
func (vm *VM) PC() uint16 {
	return vm.pc
}

/// I returns the address register.
///
func (vm *VM) I() uint16 {
	return vm.i
}

/// SP returns the number of addresses on the call stack.
///
func (vm *VM) SP() uint8 {
	return vm.sp
}

/// V returns register Vx.
///
func (vm *VM) V(x int) byte {
	return vm.v[x&0xF]
}

/// Stack returns stack cell n, whether or not it is in use.
///
func (vm *VM) Stack(n int) uint16 {
	return vm.stack[n&0xF]
}

func (vm *VM) DelayTimer() byte {
	return vm.dt
}

func (vm *VM) SoundTimer() byte {
	return vm.st
}

func (vm *VM) Keys() Keypad {
	return vm.keys
}

/// Memory returns the byte at address, wrapped to the 4K address space.
///
func (vm *VM) Memory(address uint16) byte {
	return vm.read(address)
}

/// Framebuffer returns a copy of the display.
///
func (vm *VM) Framebuffer() Frame {
	return vm.video
}

/// Pixel returns true if the pixel at x, y is on. Coordinates outside
/// the display are off.
///
func (vm *VM) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}

	return vm.video[y*Width+x] == PixelOn
}

/// Step the CHIP-8 virtual machine a single instruction, then count down
/// the timers. A stack fault aborts the step and returns a *Fault.
///
func (vm *VM) Step() error {
	if int(vm.pc) >= MemorySize-1 {
		vm.logger.Debug("Program counter out of bounds", log.Hex("pc", vm.pc))
		return nil
	}

	// fetch the next instruction
	pc := vm.pc
	inst := vm.fetch()

	if vm.trace {
		vm.logger.Debug("Step",
			log.Hex("pc", pc),
			log.Hex("opcode", inst),
			log.String("instruction", Disassemble(inst)))
	}

	if err := vm.exec(inst); err != nil {
		vm.pc = pc

		return &Fault{Address: pc, Opcode: inst, Err: err}
	}

	// count down timers
	if vm.dt > 0 {
		vm.dt--
	}
	if vm.st > 0 {
		vm.st--
	}

	return nil
}

/// Fetch the next 16-bit instruction to execute.
///
func (vm *VM) fetch() uint16 {
	i := vm.pc

	// advance the program counter
	vm.pc += 2

	return uint16(vm.memory[i])<<8 | uint16(vm.memory[i+1])
}

/// Decode and execute a single instruction.
///
func (vm *VM) exec(inst uint16) error {
	// 12-bit address operand
	a := inst & 0xFFF

	// byte and nibble operands
	b := byte(inst & 0xFF)
	n := byte(inst & 0xF)

	// x and y register operands
	x := uint(inst >> 8 & 0xF)
	y := uint(inst >> 4 & 0xF)

	switch inst >> 12 {
	case 0x0:
		switch b {
		case 0xE0:
			vm.cls()
		case 0xEE:
			return vm.ret()
		default:
			vm.unknown(inst)
		}
	case 0x1:
		vm.jump(a)
	case 0x2:
		return vm.call(a)
	case 0x3:
		vm.skipIf(x, b)
	case 0x4:
		vm.skipIfNot(x, b)
	case 0x5:
		vm.skipIfXY(x, y)
	case 0x6:
		vm.loadX(x, b)
	case 0x7:
		vm.addX(x, b)
	case 0x8:
		switch n {
		case 0x0:
			vm.loadXY(x, y)
		case 0x1:
			vm.or(x, y)
		case 0x2:
			vm.and(x, y)
		case 0x3:
			vm.xor(x, y)
		case 0x4:
			vm.addXY(x, y)
		case 0x5:
			vm.subXY(x, y)
		case 0x6:
			vm.shr(x)
		case 0x7:
			vm.subYX(x, y)
		case 0xE:
			vm.shl(x)
		default:
			vm.unknown(inst)
		}
	case 0x9:
		vm.skipIfNotXY(x, y)
	case 0xA:
		vm.loadI(a)
	case 0xB:
		vm.jumpV0(a)
	case 0xC:
		vm.rnd(x, b)
	case 0xD:
		vm.drw(x, y, n)
	case 0xE:
		switch b {
		case 0x9E:
			vm.skipIfPressed(x)
		case 0xA1:
			vm.skipIfNotPressed(x)
		default:
			vm.unknown(inst)
		}
	case 0xF:
		switch b {
		case 0x07:
			vm.loadXDT(x)
		case 0x0A:
			vm.loadXK(x)
		case 0x15:
			vm.loadDTX(x)
		case 0x18:
			vm.loadSTX(x)
		case 0x1E:
			vm.addIX(x)
		case 0x29:
			vm.loadF(x)
		case 0x33:
			vm.loadB(x)
		case 0x55:
			vm.saveRegs(x)
		case 0x65:
			vm.loadRegs(x)
		default:
			vm.unknown(inst)
		}
	}

	return nil
}

/// Unrecognized instructions are skipped.
///
func (vm *VM) unknown(inst uint16) {
	vm.logger.Debug("Unknown opcode",
		log.Hex("pc", vm.pc-2),
		log.Hex("opcode", inst))
}

/// Read memory, wrapped to the address space.
///
func (vm *VM) read(address uint16) byte {
	return vm.memory[address&(MemorySize-1)]
}

/// Write memory, wrapped to the address space.
///
func (vm *VM) write(address uint16, b byte) {
	vm.memory[address&(MemorySize-1)] = b
}

/// Random byte for RND.
///
func (vm *VM) random() byte {
	return byte(vm.rng.Intn(256))
}
