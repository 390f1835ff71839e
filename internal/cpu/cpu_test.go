package cpu_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilptr/microemu/internal/cpu"
	"github.com/nilptr/microemu/internal/demo"
	"github.com/nilptr/microemu/internal/display"
	"github.com/nilptr/microemu/internal/input"
)

func newState(t *testing.T) (*cpu.State, *display.Surface) {
	t.Helper()
	surface := display.NewSurface()
	s := cpu.New(surface, &input.Bus{})
	s.Sleep = func(time.Duration) {}
	return s, surface
}

func run(t *testing.T, s *cpu.State, prog *demo.Program) cpu.StepResult {
	t.Helper()
	require.NoError(t, s.Load(prog.Bytes()))
	return s.Run()
}

func TestPrintAndHalt(t *testing.T) {
	s, surface := newState(t)
	prog := demo.New().PrintStr("HI").Halt()

	res := run(t, s, prog)

	assert.Equal(t, cpu.Halted, res.Outcome)
	ch, _ := surface.Cell(0, 0)
	assert.Equal(t, byte('H'), ch)
	ch, _ = surface.Cell(1, 0)
	assert.Equal(t, byte('I'), ch)
}

func TestUnknownOpcodeFaults(t *testing.T) {
	s, surface := newState(t)
	require.NoError(t, s.Load([]byte{0xFF}))

	res := s.Run()

	assert.Equal(t, cpu.Faulted, res.Outcome)
	assert.Equal(t, cpu.UnknownOpcode, res.Fault)
	assert.False(t, s.Running)
	ch, _ := surface.Cell(0, 0)
	assert.Equal(t, byte('E'), ch, "unknown-opcode message should be written to the surface")
}

func TestTruncatedOperandHaltsSilently(t *testing.T) {
	s, _ := newState(t)
	// PRINT_CHAR in the last byte of memory, with no operand byte following
	// it; the program jumps straight there.
	image := make([]byte, cpu.MemSize)
	image[0], image[1], image[2] = cpu.OpJmp, 0xFF, 0xFF
	image[cpu.MemSize-1] = cpu.OpPrintChar
	require.NoError(t, s.Load(image))

	res := s.Run()

	assert.Equal(t, cpu.Halted, res.Outcome)
	assert.Equal(t, cpu.NoFault, res.Fault)
	assert.False(t, s.Running)
}

func TestCmpSetsExactlyOneFlag(t *testing.T) {
	cases := []struct {
		name     string
		a, b     uint16
		wantFlag uint8
	}{
		{"equal", 5, 5, cpu.FlagZero},
		{"greater", 9, 3, cpu.FlagGreater},
		{"less", 3, 9, cpu.FlagLess},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newState(t)
			prog := demo.New().
				LoadReg(0, tc.a).
				LoadReg(1, tc.b).
				Cmp(0, 1).
				Halt()
			run(t, s, prog)

			assert.Equal(t, tc.wantFlag, s.Flags)
		})
	}
}

func TestArithmeticWrapsModulo65536(t *testing.T) {
	s, _ := newState(t)
	prog := demo.New().
		LoadReg(0, 0xFFFF).
		LoadReg(1, 2).
		Add(2, 0, 1).
		Halt()
	run(t, s, prog)

	assert.Equal(t, uint16(1), s.Regs[2])
}

func TestDivByZeroIsNoOp(t *testing.T) {
	s, _ := newState(t)
	prog := demo.New().
		LoadReg(0, 42).
		LoadReg(1, 7).
		LoadReg(2, 0).
		Div(1, 0, 2).
		Halt()
	run(t, s, prog)

	assert.Equal(t, uint16(7), s.Regs[1], "dividing by zero leaves the destination register untouched")
}

func TestCallReturnRoundTrip(t *testing.T) {
	p := demo.New()
	p.Call(0) // operand patched once the subroutine's address is known
	p.Halt()
	subAddr := p.Here()
	p.LoadReg(0, 99)
	p.Ret()
	p.PatchWord(1, subAddr) // CALL's 16-bit operand starts right after its opcode byte

	s, _ := newState(t)
	run(t, s, p)

	assert.Equal(t, uint16(99), s.Regs[0])
}

func TestPixelModeTogglesOnSetAndClear(t *testing.T) {
	s, surface := newState(t)
	prog := demo.New().SetPixel(10, 10, 1).Halt()
	run(t, s, prog)
	assert.True(t, surface.PixelMode())
	assert.True(t, surface.Pixel(10, 10))

	prog2 := demo.New().ClearPixels().Halt()
	s.Reset()
	run(t, s, prog2)
	assert.False(t, surface.PixelMode())
	assert.False(t, surface.Pixel(10, 10))
}

func TestScrollPreservesColorAndFillsNewRow(t *testing.T) {
	s, surface := newState(t)
	prog := demo.New().SetColor(3)
	for i := 0; i < display.Rows+1; i++ {
		prog.PrintStr("x\n")
	}
	prog.Halt()
	run(t, s, prog)

	_, color := surface.Cell(0, display.Rows-1)
	assert.Equal(t, byte(3), color, "the row scrolled into view should carry the current ink color")
}

func TestCountdownLoopDecrementsToZero(t *testing.T) {
	s, surface := newState(t)
	p := demo.New()
	p.LoadReg(0, 3)
	p.LoadReg(1, 0)
	loopStart := p.Here()
	p.Cmp(0, 1)
	jz := p.JzFwd()
	p.PrintChar('*')
	p.LoadReg(2, 1)
	p.Sub(0, 0, 2)
	p.Jmp(loopStart)
	p.PatchWord(jz, p.Here())
	p.Halt()

	run(t, s, p)

	ch, _ := surface.Cell(0, 0)
	assert.Equal(t, byte('*'), ch)
	ch, _ = surface.Cell(2, 0)
	assert.Equal(t, byte('*'), ch)
	assert.Equal(t, uint16(0), s.Regs[0])
}

func TestLoadDoesNotClearMemoryBeyondTheImage(t *testing.T) {
	s, _ := newState(t)
	require.NoError(t, s.Load([]byte{cpu.OpHalt, cpu.OpHalt, cpu.OpHalt, 0xAB}))
	require.NoError(t, s.Load([]byte{cpu.OpHalt}))

	assert.Equal(t, byte(0xAB), s.Memory[3], "Load only overwrites the bytes of the new image")
}

func TestLoadRejectsOversizedImage(t *testing.T) {
	s, _ := newState(t)
	oversized := make([]byte, cpu.MemSize+1)

	err := s.Load(oversized)

	assert.ErrorIs(t, err, cpu.ErrImageTooLarge)
}

func TestPushPopRoundTrip(t *testing.T) {
	s, _ := newState(t)
	prog := demo.New().
		LoadReg(0, 0xCAFE).
		Byte(cpu.OpPush).Byte(0).
		LoadReg(0, 0).
		Byte(cpu.OpPop).Byte(1).
		Halt()
	run(t, s, prog)

	assert.Equal(t, uint16(0xCAFE), s.Regs[1])
}

func TestStoreMemThenLoadMemRoundTrip(t *testing.T) {
	s, _ := newState(t)
	prog := demo.New().
		LoadReg(0, 0x1234).
		StoreReg(0, 0x2000).
		LoadReg(1, 0).
		Byte(cpu.OpLoadMem).Byte(1).Word(0x2000).
		Halt()
	run(t, s, prog)

	assert.Equal(t, uint16(0x1234), s.Regs[1])
}

func TestCopyMemCopiesBytes(t *testing.T) {
	s, _ := newState(t)
	prog := demo.New().
		LoadReg(0, 0xABCD).
		StoreReg(0, 0x100).
		Byte(cpu.OpCopyMem).Word(0x100).Word(0x200).Word(2).
		Byte(cpu.OpLoadMem).Byte(1).Word(0x200).
		Halt()
	run(t, s, prog)

	assert.Equal(t, uint16(0xABCD), s.Regs[1])
}

func TestShlIsWellDefinedForLargeShiftCounts(t *testing.T) {
	s, _ := newState(t)
	prog := demo.New().
		LoadReg(0, 1).
		LoadReg(1, 20). // shift amount exceeds the register width
		Byte(cpu.OpShl).Byte(0).Byte(1).
		Halt()
	run(t, s, prog)

	assert.Equal(t, uint16(0), s.Regs[0], "a shift count past the register width yields zero, not a crash")
}

func TestDrawLineEntersPixelModeAndPlotsEndpoints(t *testing.T) {
	s, surface := newState(t)
	prog := demo.New().Byte(cpu.OpDrawLine).Word(0).Word(0).Word(5).Word(0).Halt()
	run(t, s, prog)

	assert.True(t, surface.PixelMode())
	assert.True(t, surface.Pixel(0, 0))
	assert.True(t, surface.Pixel(5, 0))
}

func TestGetCursorReportsCurrentPosition(t *testing.T) {
	s, surface := newState(t)
	surface.SetCursor(7, 3)
	prog := demo.New().Byte(cpu.OpGetCursor).Byte(0).Byte(1).Halt()
	run(t, s, prog)

	assert.Equal(t, uint16(7), s.Regs[0])
	assert.Equal(t, uint16(3), s.Regs[1])
}

func TestSetCursorOpcodeLeavesOutOfRangeAxisUnchanged(t *testing.T) {
	s, surface := newState(t)
	surface.SetCursor(10, 5)
	prog := demo.New().SetCursor(200, 3).Halt()
	run(t, s, prog)

	x, y := surface.Cursor()
	assert.Equal(t, 10, x, "x=200 is out of the 80-column grid and leaves cursorX untouched")
	assert.Equal(t, 3, y)
}

func TestKeyPressedReflectsInputBusState(t *testing.T) {
	surface := display.NewSurface()
	bus := &input.Bus{}
	s := cpu.New(surface, bus)
	s.Sleep = func(time.Duration) {}

	bus.PushChar('a')
	prog := demo.New().Byte(cpu.OpKeyPressed).Byte(0).Halt()
	run(t, s, prog)

	assert.Equal(t, uint16(1), s.Regs[0])
}

func TestSleepAndBeepHooksAreInvokedWithOperands(t *testing.T) {
	s, _ := newState(t)
	var slept time.Duration
	s.Sleep = func(d time.Duration) { slept = d }
	var gotFreq, gotMs uint16
	s.Beep = func(freq, ms uint16) { gotFreq, gotMs = freq, ms }

	prog := demo.New().SleepMs(250).Beep(440, 100).Halt()
	run(t, s, prog)

	assert.Equal(t, 250*time.Millisecond, slept)
	assert.Equal(t, uint16(440), gotFreq)
	assert.Equal(t, uint16(100), gotMs)
}
