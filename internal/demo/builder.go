// Package demo assembles small bytecode images in memory, used both for the
// bundled demo programs and as test fixtures for the CPU package.
package demo

import "github.com/nilptr/microemu/internal/cpu"

// Program accumulates emitted bytes for one bytecode image.
type Program struct {
	buf []byte
}

// New returns an empty Program.
func New() *Program {
	return &Program{buf: make([]byte, 0, 256)}
}

// Bytes returns the assembled image.
func (p *Program) Bytes() []byte {
	return p.buf
}

// Byte emits a single raw byte, used for opcodes and register operands.
func (p *Program) Byte(b byte) *Program {
	p.buf = append(p.buf, b)
	return p
}

// Word emits a little-endian 16-bit operand.
func (p *Program) Word(w uint16) *Program {
	p.buf = append(p.buf, byte(w), byte(w>>8))
	return p
}

// Str emits a NUL-terminated string, the operand form PRINT_STR expects.
func (p *Program) Str(s string) *Program {
	p.buf = append(p.buf, s...)
	p.buf = append(p.buf, 0)
	return p
}

func (p *Program) Halt() *Program            { return p.Byte(cpu.OpHalt) }
func (p *Program) PrintChar(c byte) *Program { return p.Byte(cpu.OpPrintChar).Byte(c) }
func (p *Program) PrintStr(s string) *Program {
	return p.Byte(cpu.OpPrintStr).Str(s)
}
func (p *Program) ClearScreen() *Program { return p.Byte(cpu.OpClearScreen) }
func (p *Program) SetColor(c byte) *Program {
	return p.Byte(cpu.OpSetColor).Byte(c)
}
func (p *Program) SetCursor(x, y byte) *Program {
	return p.Byte(cpu.OpSetCursor).Byte(x).Byte(y)
}
func (p *Program) SleepMs(ms uint16) *Program { return p.Byte(cpu.OpSleepMs).Word(ms) }
func (p *Program) Beep(freq, durMs uint16) *Program {
	return p.Byte(cpu.OpBeep).Word(freq).Word(durMs)
}
func (p *Program) SetPixel(x, y uint16, v byte) *Program {
	return p.Byte(cpu.OpSetPixel).Word(x).Word(y).Byte(v)
}
func (p *Program) ClearPixels() *Program { return p.Byte(cpu.OpClearPixels) }
func (p *Program) LoadReg(r byte, v uint16) *Program {
	return p.Byte(cpu.OpLoadReg).Byte(r).Word(v)
}
func (p *Program) StoreReg(r byte, addr uint16) *Program {
	return p.Byte(cpu.OpStoreReg).Byte(r).Word(addr)
}
func (p *Program) Add(dst, a, b byte) *Program { return p.regOp(cpu.OpAdd, dst, a, b) }
func (p *Program) Sub(dst, a, b byte) *Program { return p.regOp(cpu.OpSub, dst, a, b) }
func (p *Program) Mul(dst, a, b byte) *Program { return p.regOp(cpu.OpMul, dst, a, b) }
func (p *Program) Div(dst, a, b byte) *Program { return p.regOp(cpu.OpDiv, dst, a, b) }
func (p *Program) Mod(dst, a, b byte) *Program { return p.regOp(cpu.OpMod, dst, a, b) }
func (p *Program) And(dst, a, b byte) *Program { return p.regOp(cpu.OpAnd, dst, a, b) }
func (p *Program) Or(dst, a, b byte) *Program  { return p.regOp(cpu.OpOr, dst, a, b) }
func (p *Program) Xor(dst, a, b byte) *Program { return p.regOp(cpu.OpXor, dst, a, b) }

func (p *Program) regOp(op, dst, a, b byte) *Program {
	return p.Byte(op).Byte(dst).Byte(a).Byte(b)
}

func (p *Program) Not(dst, src byte) *Program { return p.Byte(cpu.OpNot).Byte(dst).Byte(src) }
func (p *Program) Cmp(a, b byte) *Program     { return p.Byte(cpu.OpCmp).Byte(a).Byte(b) }

// Jmp and friends take the absolute target address; callers that don't know
// it ahead of time can Patch it in after assembling the rest of the program.
func (p *Program) Jmp(addr uint16) *Program { return p.Byte(cpu.OpJmp).Word(addr) }
func (p *Program) Jz(addr uint16) *Program  { return p.Byte(cpu.OpJz).Word(addr) }
func (p *Program) Jnz(addr uint16) *Program { return p.Byte(cpu.OpJnz).Word(addr) }
func (p *Program) Jg(addr uint16) *Program  { return p.Byte(cpu.OpJg).Word(addr) }
func (p *Program) Jl(addr uint16) *Program  { return p.Byte(cpu.OpJl).Word(addr) }
func (p *Program) Call(addr uint16) *Program { return p.Byte(cpu.OpCall).Word(addr) }
func (p *Program) Ret() *Program             { return p.Byte(cpu.OpRet) }

// Here returns the current byte offset, the address a forward jump target
// resolves to once the next instruction is emitted there.
func (p *Program) Here() uint16 {
	return uint16(len(p.buf))
}

// PatchWord overwrites the 16-bit operand at byte offset off, for forward
// jumps whose target wasn't known when the jump was emitted.
func (p *Program) PatchWord(off int, w uint16) {
	p.buf[off] = byte(w)
	p.buf[off+1] = byte(w >> 8)
}

func (p *Program) emitJumpFwd(op byte) int {
	p.Byte(op)
	off := len(p.buf)
	p.Word(0)
	return off
}

// JzFwd, JnzFwd, JgFwd and JlFwd emit a conditional jump with a placeholder
// target and return the operand's byte offset, to be resolved later with
// PatchWord(off, p.Here()) once the branch target is known.
func (p *Program) JzFwd() int  { return p.emitJumpFwd(cpu.OpJz) }
func (p *Program) JnzFwd() int { return p.emitJumpFwd(cpu.OpJnz) }
func (p *Program) JgFwd() int  { return p.emitJumpFwd(cpu.OpJg) }
func (p *Program) JlFwd() int  { return p.emitJumpFwd(cpu.OpJl) }
func (p *Program) JmpFwd() int { return p.emitJumpFwd(cpu.OpJmp) }
