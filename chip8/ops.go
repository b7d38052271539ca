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

/// Clear the video display memory.
///
func (vm *VM) cls() {
	vm.video = Frame{}
}

/// call a subroutine at address.
///
func (vm *VM) call(address uint16) error {
	if vm.sp >= StackSize {
		return ErrStackOverflow
	}

	// push program counter onto stack
	vm.stack[vm.sp] = vm.pc
	vm.sp++

	// jump to address
	vm.pc = address

	return nil
}

/// return from subroutine.
///
func (vm *VM) ret() error {
	if vm.sp == 0 {
		return ErrStackUnderflow
	}

	// restore program counter
	vm.sp--
	vm.pc = vm.stack[vm.sp]

	return nil
}

/// jump to address.
///
func (vm *VM) jump(address uint16) {
	vm.pc = address
}

/// jump to address + v0.
///
func (vm *VM) jumpV0(address uint16) {
	vm.pc = address + uint16(vm.v[0])
}

/// skip next instruction if vx == n.
///
func (vm *VM) skipIf(x uint, b byte) {
	if vm.v[x] == b {
		vm.pc += 2
	}
}

/// skip next instruction if vx != n.
///
func (vm *VM) skipIfNot(x uint, b byte) {
	if vm.v[x] != b {
		vm.pc += 2
	}
}

/// skip next instruction if vx == vy.
///
func (vm *VM) skipIfXY(x, y uint) {
	if vm.v[x] == vm.v[y] {
		vm.pc += 2
	}
}

/// skip next instruction if vx != vy.
///
func (vm *VM) skipIfNotXY(x, y uint) {
	if vm.v[x] != vm.v[y] {
		vm.pc += 2
	}
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *VM) skipIfPressed(x uint) {
	if vm.pressed(vm.v[x]) {
		vm.pc += 2
	}
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *VM) skipIfNotPressed(x uint) {
	if !vm.pressed(vm.v[x]) {
		vm.pc += 2
	}
}

/// keys past the end of the pad are never pressed.
///
func (vm *VM) pressed(key byte) bool {
	return key < KeyCount && vm.keys[key]
}

/// load n into vx.
///
func (vm *VM) loadX(x uint, b byte) {
	vm.v[x] = b
}

/// load y into vx.
///
func (vm *VM) loadXY(x, y uint) {
	vm.v[x] = vm.v[y]
}

/// load delay timer into vx.
///
func (vm *VM) loadXDT(x uint) {
	vm.v[x] = vm.dt
}

/// load vx into delay timer.
///
func (vm *VM) loadDTX(x uint) {
	vm.dt = vm.v[x]
}

/// load vx into sound timer.
///
func (vm *VM) loadSTX(x uint) {
	vm.st = vm.v[x]
}

/// load vx with next key hit. With no key down the instruction is
/// rewound and polled again on the next step.
///
func (vm *VM) loadXK(x uint) {
	for key, down := range vm.keys {
		if down {
			vm.v[x] = byte(key)
			return
		}
	}

	vm.pc -= 2
}

/// load address register.
///
func (vm *VM) loadI(address uint16) {
	vm.i = address
}

/// load address with BCD of vx.
///
func (vm *VM) loadB(x uint) {
	n := vm.v[x]

	vm.write(vm.i+0, n/100)
	vm.write(vm.i+1, n/10%10)
	vm.write(vm.i+2, n%10)
}

/// load font sprite for vx into I.
///
func (vm *VM) loadF(x uint) {
	vm.i = FontStart + uint16(vm.v[x])*GlyphSize
}

/// or vx with vy into vx.
///
func (vm *VM) or(x, y uint) {
	vm.v[x] |= vm.v[y]
}

/// and vx with vy into vx.
///
func (vm *VM) and(x, y uint) {
	vm.v[x] &= vm.v[y]
}

/// xor vx with vy into vx.
///
func (vm *VM) xor(x, y uint) {
	vm.v[x] ^= vm.v[y]
}

/// shl vx 1 bit, set carry to MSB of vx before shift.
///
func (vm *VM) shl(x uint) {
	b := vm.v[x]

	vm.v[0xF] = b >> 7
	vm.v[x] = b << 1
}

/// shr vx 1 bit, set carry to LSB of vx before shift.
///
func (vm *VM) shr(x uint) {
	b := vm.v[x]

	vm.v[0xF] = b & 1
	vm.v[x] = b >> 1
}

/// add n to vx, no carry.
///
func (vm *VM) addX(x uint, b byte) {
	vm.v[x] += b
}

/// add vy to vx and set carry.
///
func (vm *VM) addXY(x, y uint) {
	sum := uint16(vm.v[x]) + uint16(vm.v[y])

	if sum > 0xFF {
		vm.v[0xF] = 1
	} else {
		vm.v[0xF] = 0
	}

	vm.v[x] = byte(sum)
}

/// add vx to i.
///
func (vm *VM) addIX(x uint) {
	vm.i += uint16(vm.v[x])
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *VM) subXY(x, y uint) {
	a, b := vm.v[x], vm.v[y]

	if a > b {
		vm.v[0xF] = 1
	} else {
		vm.v[0xF] = 0
	}

	vm.v[x] = a - b
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *VM) subYX(x, y uint) {
	a, b := vm.v[x], vm.v[y]

	if b > a {
		vm.v[0xF] = 1
	} else {
		vm.v[0xF] = 0
	}

	vm.v[x] = b - a
}

/// load a random number & n into vx.
///
func (vm *VM) rnd(x uint, b byte) {
	vm.v[x] = vm.random() & b
}

/// draw a sprite at I to video memory at vx, vy. Sprites are clipped
/// at the right and bottom edges; only the origin wraps.
///
func (vm *VM) drw(x, y uint, n byte) {
	c := byte(0)

	// origin of the sprite
	ox := uint(vm.v[x]) % Width
	oy := uint(vm.v[y]) % Height

	// draw each row of the sprite
	for row := uint(0); row < uint(n); row++ {
		py := oy + row

		// clip rows that are off screen
		if py >= Height {
			break
		}

		s := vm.read(vm.i + uint16(row))

		for col := uint(0); col < 8; col++ {
			px := ox + col

			if s&(0x80>>col) == 0 || px >= Width {
				continue
			}

			p := &vm.video[py*Width+px]

			// was a pixel turned off?
			if *p == PixelOn {
				c = 1
			}

			*p ^= PixelOn
		}
	}

	vm.v[0xF] = c
}

/// save registers v0..vx to I.
///
func (vm *VM) saveRegs(x uint) {
	for i := uint(0); i <= x; i++ {
		vm.write(vm.i+uint16(i), vm.v[i])
	}
}

/// load registers v0..vx from I.
///
func (vm *VM) loadRegs(x uint) {
	for i := uint(0); i <= x; i++ {
		vm.v[i] = vm.read(vm.i + uint16(i))
	}
}
