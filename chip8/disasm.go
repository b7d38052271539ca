package chip8

import "fmt"

/// Disassemble a CHIP-8 instruction into its mnemonic form. Used when
/// tracing execution.
///
func Disassemble(inst uint16) string {
	// 12-bit literal address
	a := inst & 0xFFF

	// byte and nibble literals
	b := byte(inst & 0xFF)
	n := byte(inst & 0xF)

	// vx and vy registers
	x := inst >> 8 & 0xF
	y := inst >> 4 & 0xF

	switch inst >> 12 {
	case 0x0:
		switch b {
		case 0xE0:
			return "CLS"
		case 0xEE:
			return "RET"
		}
	case 0x1:
		return fmt.Sprintf("JP     #%03X", a)
	case 0x2:
		return fmt.Sprintf("CALL   #%03X", a)
	case 0x3:
		return fmt.Sprintf("SE     V%X, #%02X", x, b)
	case 0x4:
		return fmt.Sprintf("SNE    V%X, #%02X", x, b)
	case 0x5:
		return fmt.Sprintf("SE     V%X, V%X", x, y)
	case 0x6:
		return fmt.Sprintf("LD     V%X, #%02X", x, b)
	case 0x7:
		return fmt.Sprintf("ADD    V%X, #%02X", x, b)
	case 0x8:
		if op, ok := aluOps[n]; ok {
			if n == 0x6 || n == 0xE {
				return fmt.Sprintf("%-6s V%X", op, x)
			}
			return fmt.Sprintf("%-6s V%X, V%X", op, x, y)
		}
	case 0x9:
		return fmt.Sprintf("SNE    V%X, V%X", x, y)
	case 0xA:
		return fmt.Sprintf("LD     I, #%03X", a)
	case 0xB:
		return fmt.Sprintf("JP     V0, #%03X", a)
	case 0xC:
		return fmt.Sprintf("RND    V%X, #%02X", x, b)
	case 0xD:
		return fmt.Sprintf("DRW    V%X, V%X, %d", x, y, n)
	case 0xE:
		switch b {
		case 0x9E:
			return fmt.Sprintf("SKP    V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP   V%X", x)
		}
	case 0xF:
		if f, ok := loadOps[b]; ok {
			return fmt.Sprintf(f, x)
		}
	}

	// unknown instruction
	return fmt.Sprintf("??     #%04X", inst)
}

var aluOps = map[byte]string{
	0x0: "LD",
	0x1: "OR",
	0x2: "AND",
	0x3: "XOR",
	0x4: "ADD",
	0x5: "SUB",
	0x6: "SHR",
	0x7: "SUBN",
	0xE: "SHL",
}

var loadOps = map[byte]string{
	0x07: "LD     V%X, DT",
	0x0A: "LD     V%X, K",
	0x15: "LD     DT, V%X",
	0x18: "LD     ST, V%X",
	0x1E: "ADD    I, V%X",
	0x29: "LD     F, V%X",
	0x33: "LD     B, V%X",
	0x55: "LD     [I], V%X",
	0x65: "LD     V%X, [I]",
}
