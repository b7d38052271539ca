package chip8

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestVM returns a VM with the given instructions loaded at ProgramStart.
func newTestVM(t *testing.T, program ...uint16) *VM {
	t.Helper()

	vm := New(log.NewTestLogger(t))
	assert.NoError(t, vm.LoadROM(assemble(program...)))
	return vm
}

func assemble(program ...uint16) []byte {
	rom := make([]byte, 0, len(program)*2)
	for _, inst := range program {
		rom = append(rom, byte(inst>>8), byte(inst))
	}
	return rom
}

func steps(t *testing.T, vm *VM, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		assert.NoError(t, vm.Step())
	}
}

func TestNew(t *testing.T) {
	vm := New(log.NewTestLogger(t))

	assert.Equal(t, uint16(ProgramStart), vm.PC())
	assert.Equal(t, uint16(0), vm.I())
	assert.Equal(t, uint8(0), vm.SP())
	assert.Equal(t, byte(0), vm.DelayTimer())
	assert.Equal(t, byte(0), vm.SoundTimer())
	assert.Equal(t, Keypad{}, vm.Keys())
	assert.Equal(t, Frame{}, vm.Framebuffer())

	for x := 0; x < 16; x++ {
		assert.Equal(t, byte(0), vm.V(x))
	}
}

func TestNewNilLogger(t *testing.T) {
	vm := New(nil)
	assert.NotNil(t, vm.logger)
	assert.Equal(t, uint16(ProgramStart), vm.PC())
}

func TestFontLoaded(t *testing.T) {
	vm := New(log.NewTestLogger(t))

	for i, b := range Font {
		assert.Equal(t, b, vm.Memory(uint16(FontStart+i)))
	}

	// nothing else below the program area
	for addr := 0; addr < ProgramStart; addr++ {
		if addr >= FontStart && addr < FontStart+len(Font) {
			continue
		}
		assert.Equal(t, byte(0), vm.Memory(uint16(addr)))
	}
}

func TestLoadROM(t *testing.T) {
	rom := []byte{0xA2, 0x2A, 0x60, 0x0C, 0x61, 0x08}

	vm := New(log.NewTestLogger(t))
	assert.NoError(t, vm.LoadROM(rom))

	for i, b := range rom {
		assert.Equal(t, b, vm.Memory(uint16(ProgramStart+i)))
	}
	assert.Equal(t, byte(0), vm.Memory(uint16(ProgramStart+len(rom))))
	assert.Equal(t, uint16(ProgramStart), vm.PC())
}

func TestLoadROMFull(t *testing.T) {
	rom := make([]byte, MaxROMSize)
	for i := range rom {
		rom[i] = byte(i)
	}

	vm := New(log.NewTestLogger(t))
	assert.NoError(t, vm.LoadROM(rom))
	assert.Equal(t, byte(0), vm.Memory(ProgramStart))
	assert.Equal(t, rom[MaxROMSize-1], vm.Memory(MemorySize-1))
}

func TestLoadROMTooLarge(t *testing.T) {
	vm := newTestVM(t, 0x6A55)

	err := vm.LoadROM(make([]byte, MaxROMSize+1))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrROMTooLarge))

	// prior program is untouched
	assert.Equal(t, byte(0x6A), vm.Memory(ProgramStart))
	assert.Equal(t, byte(0x55), vm.Memory(ProgramStart+1))
	assert.Equal(t, byte(0), vm.Memory(ProgramStart+2))
}

func TestLoadROMTwice(t *testing.T) {
	vm := New(log.NewTestLogger(t))
	assert.NoError(t, vm.LoadROM([]byte{1, 2, 3, 4}))
	assert.NoError(t, vm.LoadROM([]byte{9, 8}))

	assert.Equal(t, byte(9), vm.Memory(ProgramStart))
	assert.Equal(t, byte(8), vm.Memory(ProgramStart+1))
	assert.Equal(t, byte(3), vm.Memory(ProgramStart+2))
	assert.Equal(t, byte(4), vm.Memory(ProgramStart+3))
}

func TestLoadFile(t *testing.T) {
	rom := []byte{0x00, 0xE0, 0x12, 0x00}
	file := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(file, rom, 0o644))

	vm := New(log.NewTestLogger(t))
	assert.NoError(t, vm.LoadFile(file))

	for i, b := range rom {
		assert.Equal(t, b, vm.Memory(uint16(ProgramStart+i)))
	}

	err := vm.LoadFile(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReset(t *testing.T) {
	vm := newTestVM(t, 0x6A55, 0xA300, 0x2400)
	vm.SetKeys(Keypad{3: true})
	steps(t, vm, 3)

	vm.Reset()

	assert.Equal(t, uint16(ProgramStart), vm.PC())
	assert.Equal(t, uint16(0), vm.I())
	assert.Equal(t, uint8(0), vm.SP())
	assert.Equal(t, byte(0), vm.V(0xA))
	assert.Equal(t, Keypad{}, vm.Keys())
	assert.Equal(t, byte(0), vm.Memory(ProgramStart))
	assert.Equal(t, Font[0], vm.Memory(FontStart))
}

func TestStepFetchDecodeExecute(t *testing.T) {
	vm := newTestVM(t, 0x6A55)
	steps(t, vm, 1)

	assert.Equal(t, byte(0x55), vm.V(0xA))
	assert.Equal(t, uint16(0x202), vm.PC())
}

func TestStepTimers(t *testing.T) {
	// LD V0, 3; LD DT, V0; LD ST, V0; LD V1, DT; JP 0x208
	vm := newTestVM(t, 0x6003, 0xF015, 0xF018, 0xF107, 0x1208)

	steps(t, vm, 2)
	assert.Equal(t, byte(2), vm.DelayTimer())
	assert.Equal(t, byte(0), vm.SoundTimer())

	steps(t, vm, 1)
	assert.Equal(t, byte(1), vm.DelayTimer())
	assert.Equal(t, byte(2), vm.SoundTimer())

	steps(t, vm, 1)
	assert.Equal(t, byte(1), vm.V(1))
	assert.Equal(t, byte(0), vm.DelayTimer())
	assert.Equal(t, byte(1), vm.SoundTimer())

	// timers never go below zero
	steps(t, vm, 3)
	assert.Equal(t, byte(0), vm.DelayTimer())
	assert.Equal(t, byte(0), vm.SoundTimer())
}

func TestStepPCOutOfBounds(t *testing.T) {
	// LD V0, 5; LD DT, V0; JP 0xFFF
	vm := newTestVM(t, 0x6005, 0xF015, 0x1FFF)
	steps(t, vm, 3)
	assert.Equal(t, uint16(0xFFF), vm.PC())
	assert.Equal(t, byte(3), vm.DelayTimer())

	// the step is abandoned, timers included
	steps(t, vm, 2)
	assert.Equal(t, uint16(0xFFF), vm.PC())
	assert.Equal(t, byte(3), vm.DelayTimer())
}

func TestStepJumpV0PastMemory(t *testing.T) {
	// LD V0, #FF; JP V0, #FFF
	vm := newTestVM(t, 0x60FF, 0xBFFF)
	steps(t, vm, 2)
	assert.Equal(t, uint16(0xFFF+0xFF), vm.PC())

	steps(t, vm, 1)
	assert.Equal(t, uint16(0xFFF+0xFF), vm.PC())
}

func TestStepUnknownOpcode(t *testing.T) {
	tests := []struct {
		name string
		inst uint16
	}{
		{name: "sys call", inst: 0x0123},
		{name: "alu", inst: 0x812F},
		{name: "key", inst: 0xE1FF},
		{name: "misc", inst: 0xF1FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, 0x6142, tt.inst, 0x6243)
			steps(t, vm, 3)

			assert.Equal(t, uint16(0x206), vm.PC())
			assert.Equal(t, byte(0x42), vm.V(1))
			assert.Equal(t, byte(0x43), vm.V(2))
			assert.Equal(t, byte(0), vm.V(0xF))
		})
	}
}

func TestStepCallReturn(t *testing.T) {
	// 0x200: CALL 0x206; 0x202: LD V1, 1; 0x204: JP 0x204; 0x206: LD V0, 7; RET
	vm := newTestVM(t, 0x2206, 0x6101, 0x1204, 0x6007, 0x00EE)

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x206), vm.PC())
	assert.Equal(t, uint8(1), vm.SP())
	assert.Equal(t, uint16(0x202), vm.Stack(0))

	steps(t, vm, 2)
	assert.Equal(t, byte(7), vm.V(0))
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, uint8(0), vm.SP())

	steps(t, vm, 1)
	assert.Equal(t, byte(1), vm.V(1))
}

func TestStepStackOverflow(t *testing.T) {
	// LD V0, 9; LD DT, V0; CALL 0x204 (recurses forever)
	vm := newTestVM(t, 0x6009, 0xF015, 0x2204)
	steps(t, vm, 2+StackSize)
	assert.Equal(t, uint8(StackSize), vm.SP())
	assert.Equal(t, uint16(0x206), vm.Stack(StackSize-1))
	dt := vm.DelayTimer()

	err := vm.Step()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackOverflow))

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x204), fault.Address)
	assert.Equal(t, uint16(0x2204), fault.Opcode)

	// nothing moved
	assert.Equal(t, uint16(0x204), vm.PC())
	assert.Equal(t, uint8(StackSize), vm.SP())
	assert.Equal(t, dt, vm.DelayTimer())

	// and it keeps faulting
	assert.True(t, errors.Is(vm.Step(), ErrStackOverflow))
}

func TestStepStackUnderflow(t *testing.T) {
	vm := newTestVM(t, 0x00EE)

	err := vm.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(ProgramStart), vm.PC())
	assert.Equal(t, uint8(0), vm.SP())
}

func TestPixel(t *testing.T) {
	vm := New(log.NewTestLogger(t))
	vm.video[Width+1] = PixelOn

	assert.True(t, vm.Pixel(1, 1))
	assert.False(t, vm.Pixel(0, 0))
	assert.False(t, vm.Pixel(-1, 0))
	assert.False(t, vm.Pixel(Width, 0))
	assert.False(t, vm.Pixel(0, Height))
}

func TestFramebufferIsCopy(t *testing.T) {
	vm := New(log.NewTestLogger(t))

	frame := vm.Framebuffer()
	frame[0] = PixelOn

	assert.False(t, vm.Pixel(0, 0))
}

func TestTrace(t *testing.T) {
	vm := newTestVM(t, 0x6A55, 0x7A01)
	vm.SetTrace(true)
	steps(t, vm, 2)

	assert.Equal(t, byte(0x56), vm.V(0xA))
}
