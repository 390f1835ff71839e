package shell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nilptr/microemu/internal/display"
)

func TestRunBootAnimationEndsInTextMode(t *testing.T) {
	s := display.NewSurface()

	RunBootAnimation(s, func(time.Duration) {})

	assert.False(t, s.PixelMode())
	ch, _ := s.Cell(0, 0)
	assert.Equal(t, byte(' '), ch, "ClearText leaves a blank grid")
}

func TestRunLoadingAnimationEndsInTextMode(t *testing.T) {
	s := display.NewSurface()
	s.SetPixel(1, 1, true)

	RunLoadingAnimation(s, "demo.bin", func(time.Duration) {})

	assert.False(t, s.PixelMode())
}

func TestRunLoadingAnimationPrintsFilenameAndOK(t *testing.T) {
	s := display.NewSurface()

	RunLoadingAnimation(s, "demo.bin", func(time.Duration) {})

	out := ""
	for y := 0; y < display.Rows; y++ {
		for x := 0; x < display.Cols; x++ {
			ch, _ := s.Cell(x, y)
			out += string(ch)
		}
	}
	assert.Contains(t, out, "Loading:")
	assert.Contains(t, out, "demo.bin")
	assert.Contains(t, out, "[OK]")
}
