package system

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/nilptr/microemu/internal/display"
)

const sampleRate = beep.SampleRate(44100)

// squareWave is a beep.Streamer that synthesizes a fixed-frequency square
// wave for a fixed duration, the BEEP opcode's tone.
type squareWave struct {
	freq     float64
	samples  int
	produced int
}

func newSquareWave(freqHz float64, duration time.Duration) *squareWave {
	return &squareWave{freq: freqHz, samples: sampleRate.N(duration)}
}

func (w *squareWave) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if w.produced >= w.samples {
			return n, n > 0
		}
		t := float64(w.produced) / float64(sampleRate)
		v := 0.2
		if math.Sin(2*math.Pi*w.freq*t) < 0 {
			v = -0.2
		}
		samples[i][0], samples[i][1] = v, v
		w.produced++
		n++
	}
	return n, true
}

func (w *squareWave) Err() error { return nil }

// Audio plays BEEP-opcode tones through the host speaker, falling back to
// the terminal bell if no audio device is available.
type Audio struct {
	mu      sync.Mutex
	ready   bool
	surface *display.Surface
}

// NewAudio initializes the host speaker at sampleRate. If speaker init fails
// (no audio device, e.g. in a headless test environment), beeps silently
// fall back to writing the terminal bell to surface instead of erroring.
func NewAudio(surface *display.Surface) *Audio {
	a := &Audio{surface: surface}
	bufSize := sampleRate.N(time.Second / 10)
	if err := speaker.Init(sampleRate, bufSize); err == nil {
		a.ready = true
	}
	return a
}

// Beep plays a tone of freqHz for durationMs, matching the CPU's Beep hook
// signature so it can be wired directly to cpu.State.Beep.
func (a *Audio) Beep(freqHz, durationMs uint16) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ready {
		if a.surface != nil {
			a.surface.Write('\a')
		}
		return
	}
	dur := time.Duration(durationMs) * time.Millisecond
	speaker.Play(newSquareWave(float64(freqHz), dur))
}
