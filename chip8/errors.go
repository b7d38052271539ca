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
	"errors"
	"fmt"
)

var (
	/// ErrROMTooLarge is returned when a program doesn't fit between
	/// ProgramStart and the end of memory.
	///
	ErrROMTooLarge = errors.New("rom too large to fit in memory")

	/// ErrStackOverflow is returned when CALL is executed with a full stack.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is returned when RET is executed with an empty stack.
	///
	ErrStackUnderflow = errors.New("stack underflow")
)

/// Fault is a machine fault raised by Step. The faulting instruction was
/// not executed and the program counter points back at it.
///
type Fault struct {
	/// Address of the faulting instruction.
	///
	Address uint16

	/// Opcode of the faulting instruction.
	///
	Opcode uint16

	/// Err is one of the stack sentinel errors.
	///
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%04X - %04X: %s", f.Address, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
