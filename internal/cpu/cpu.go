// Package cpu implements the fantasy microcomputer's bytecode virtual machine:
// a flat 64K memory, eight 16-bit registers, a dedicated stack page, and a
// fetch/decode/execute loop over the custom instruction set.
package cpu

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/nilptr/microemu/internal/display"
	"github.com/nilptr/microemu/internal/input"
)

const (
	// MemSize is the full address space of the virtual machine.
	MemSize = 64 * 1024

	// StackSize is the dedicated region at the top of memory used for
	// PUSH/POP and CALL/RET. It is addressed as memory[MemSize-StackSize+sp].
	StackSize = 256

	// NumRegs is the number of general-purpose 16-bit registers.
	NumRegs = 8
)

// Flag bits within State.Flags. Bits 3-7 are reserved and always read 0.
const (
	FlagZero    = 1 << 0
	FlagGreater = 1 << 1
	FlagLess    = 1 << 2
)

// Outcome discriminates the result of a single Step.
type Outcome int

const (
	// Continued means the instruction executed normally and pc advanced.
	Continued Outcome = iota
	// Halted means the program executed HALT or an instruction's operands ran
	// past the end of memory.
	Halted
	// Faulted means the VM hit an unknown opcode and halted with a visible error.
	Faulted
)

// FaultKind names why a Faulted outcome occurred.
type FaultKind int

const (
	// NoFault is the zero value, used when Outcome != Faulted.
	NoFault FaultKind = iota
	// UnknownOpcode is the only explicit fault the VM raises.
	UnknownOpcode
)

// StepResult is returned by Step to describe what happened.
type StepResult struct {
	Outcome Outcome
	Fault   FaultKind
	PC      uint16 // pc at the point the outcome was determined
	Opcode  byte   // only meaningful when Outcome == Faulted
}

// ErrImageTooLarge is returned by Load when the program image exceeds MemSize.
var ErrImageTooLarge = fmt.Errorf("cpu: image exceeds %d bytes", MemSize)

// State holds all CPU-visible state: memory, registers, and control flow.
//
// Memory is not cleared by Reset; only Load copies a fresh image into it,
// starting at address 0. Bytes beyond the loaded image's length are left
// exactly as a previous run's memory image left them. This is a deliberate,
// testable property, not an oversight.
type State struct {
	Memory  [MemSize]byte
	PC      uint16
	SP      uint16
	Regs    [NumRegs]uint16
	Flags   uint8
	Running bool

	Surface *display.Surface
	Input   *input.Bus

	// Rand is the source for the RANDOM opcode. Exposed so tests can make it
	// deterministic; defaults to a time-seeded source in New.
	Rand *rand.Rand

	// Clock returns the current time for GET_TIME. Exposed for tests.
	Clock func() time.Time

	// Sleep is invoked by SLEEP_MS; it must not block the display thread, so
	// New wires this to time.Sleep, which is cooperative by
	// construction (it parks only the calling goroutine).
	Sleep func(time.Duration)

	// Beep is invoked by the BEEP opcode with (freqHz, durationMs). It is
	// wired by System to the audio subsystem; a nil Beep is a silent no-op.
	Beep func(freqHz, durationMs uint16)
}

// New creates a State wired to the given display surface and input bus.
func New(surface *display.Surface, bus *input.Bus) *State {
	s := &State{
		Surface: surface,
		Input:   bus,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		Clock:   time.Now,
		Sleep:   time.Sleep,
	}
	s.Reset()
	return s
}

// Reset zeroes all CPU-visible state except memory, and sets SP to its
// initial top-of-stack value. Running becomes false: execution must not
// resume until Load is called again.
func (s *State) Reset() {
	s.PC = 0
	s.SP = StackSize - 1
	s.Regs = [NumRegs]uint16{}
	s.Flags = 0
	s.Running = false
}

// Load copies image into memory starting at address 0, rewinds PC to 0, and
// marks the CPU running. Memory outside image is left untouched — see the
// State doc comment.
func (s *State) Load(image []byte) error {
	if len(image) > MemSize {
		return ErrImageTooLarge
	}
	copy(s.Memory[:], image)
	s.PC = 0
	s.Running = true
	return nil
}

// Run repeats Step while Running and PC is in bounds, returning the terminal
// StepResult (Halted or Faulted).
func (s *State) Run() StepResult {
	var res StepResult
	for s.Running && int(s.PC) < MemSize {
		res = s.Step()
	}
	return res
}

// Step decodes and executes exactly one instruction at PC.
func (s *State) Step() StepResult {
	if int(s.PC) >= MemSize {
		s.Running = false
		return StepResult{Outcome: Halted, PC: s.PC}
	}

	opcode := s.Memory[s.PC]
	s.PC++

	if handler, ok := dispatch[opcode]; ok {
		return handler(s)
	}

	s.Running = false
	if s.Surface != nil {
		s.Surface.WriteString(fmt.Sprintf("Error: Unknown opcode 0x%02X\n", opcode))
	}
	return StepResult{Outcome: Faulted, Fault: UnknownOpcode, PC: s.PC - 1, Opcode: opcode}
}

// regValid reports whether r addresses one of the eight general registers.
// An invalid index makes the owning instruction a no-op, never a fault.
func regValid(r byte) bool { return r < NumRegs }

// fetchByte reads one byte at PC and advances PC. ok is false if the previous
// read of this instruction consumed the last byte of memory, in which case
// the caller must halt silently (truncated operand) without advancing
// further. PC is 16 bits wide, so that previous read wrapped it to 0; since
// the opcode byte has always been consumed before an operand is fetched, PC
// is 0 here only after such a wrap.
func (s *State) fetchByte() (v byte, ok bool) {
	if s.PC == 0 {
		return 0, false
	}
	v = s.Memory[s.PC]
	s.PC++
	return v, true
}

// fetchU16 reads a little-endian 16-bit operand at PC and advances PC by two.
func (s *State) fetchU16() (v uint16, ok bool) {
	lo, ok := s.fetchByte()
	if !ok {
		return 0, false
	}
	hi, ok := s.fetchByte()
	if !ok {
		return 0, false
	}
	return uint16(lo) | uint16(hi)<<8, true
}

// truncated reports a silent halt for a truncated operand read. An unknown
// opcode is a visible fault; a program that runs out of bytes mid-instruction
// just stops.
func truncated(s *State) StepResult {
	s.Running = false
	return StepResult{Outcome: Halted, PC: s.PC}
}

func continued(s *State) StepResult {
	return StepResult{Outcome: Continued, PC: s.PC}
}
