package demo_test

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

func noSleepState() *cpu.State {
	s := cpu.New(display.NewSurface(), &input.Bus{})
	s.Sleep = func(time.Duration) {}
	return s
}

func TestByteAndWordEncodeLittleEndian(t *testing.T) {
	p := demo.New().Byte(0xAB).Word(0x1234)

	assert.Equal(t, []byte{0xAB, 0x34, 0x12}, p.Bytes())
}

func TestStrEmitsNulTerminatedBytes(t *testing.T) {
	p := demo.New().Str("hi")

	assert.Equal(t, []byte{'h', 'i', 0}, p.Bytes())
}

func TestHereReportsCurrentOffset(t *testing.T) {
	p := demo.New().Byte(1).Byte(2)

	assert.Equal(t, uint16(2), p.Here())
}

func TestPatchWordOverwritesAnEarlierOperand(t *testing.T) {
	p := demo.New().Jmp(0)
	p.PatchWord(1, 0xBEEF)

	want := []byte{cpu.OpJmp, 0xEF, 0xBE}
	assert.Equal(t, want, p.Bytes())
}

func TestJzFwdReturnsOffsetOfPlaceholderOperand(t *testing.T) {
	p := demo.New()
	off := p.JzFwd()
	p.Halt()

	target := p.Here()
	p.PatchWord(off, target)

	ch, _ := decodeJumpTarget(t, p, off)
	assert.Equal(t, target, ch)
}

func decodeJumpTarget(t *testing.T, p *demo.Program, off int) (uint16, bool) {
	t.Helper()
	b := p.Bytes()
	if off+1 >= len(b) {
		return 0, false
	}
	return uint16(b[off]) | uint16(b[off+1])<<8, true
}

// TestHelloRunsToCompletionAndPrintsGreeting exercises the bundled ROM as an
// integration check that builder-assembled programs are well-formed enough
// for the CPU to execute end to end.
func TestHelloRunsToCompletionAndPrintsGreeting(t *testing.T) {
	s := noSleepState()

	require.NoError(t, s.Load(demo.Hello().Bytes()))
	res := s.Run()

	assert.Equal(t, cpu.Halted, res.Outcome)
	ch, _ := s.Surface.Cell(0, 0)
	assert.Equal(t, byte('H'), ch)
}

func TestCountdownReachesZeroAndPrintsOneStarPerTick(t *testing.T) {
	s := noSleepState()

	require.NoError(t, s.Load(demo.Countdown(3).Bytes()))
	res := s.Run()

	assert.Equal(t, cpu.Halted, res.Outcome)
	assert.Equal(t, uint16(0), s.Regs[0])
	// The stars follow the "Counting down..." line and a blank line.
	for x := 0; x < 3; x++ {
		ch, _ := s.Surface.Cell(x, 2)
		assert.Equal(t, byte('*'), ch)
	}
	ch, _ := s.Surface.Cell(3, 2)
	assert.Equal(t, byte(' '), ch, "exactly three ticks for a count of 3")
}

func TestGraphicsRunsToCompletionAndReturnsToTextMode(t *testing.T) {
	s := noSleepState()

	require.NoError(t, s.Load(demo.Graphics().Bytes()))
	res := s.Run()

	assert.Equal(t, cpu.Halted, res.Outcome)
	assert.False(t, s.Surface.PixelMode(), "Graphics returns to text mode before halting")
}
