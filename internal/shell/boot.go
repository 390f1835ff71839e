package shell

import (
	"math"
	"time"
)

// RunBootAnimation plays the startup animation: an expanding ring of pixels
// followed by a dither flash, then returns the surface to text mode. sleep
// is the cooperative pause the CPU uses elsewhere, so the animation yields
// the same way VM-driven SLEEP_MS does.
func RunBootAnimation(s interface {
	ClearPixels()
	SetPixel(x, y int, on bool)
	ClearText()
}, sleep func(time.Duration)) {
	const cx, cy = 160, 100

	for radius := 5; radius <= 60; radius += 3 {
		s.ClearPixels()
		for angle := 0; angle < 360; angle += 3 {
			rad := float64(angle) * math.Pi / 180
			x := cx + int(float64(radius)*math.Cos(rad))
			y := cy + int(float64(radius)*math.Sin(rad))
			s.SetPixel(x, y, true)
		}
		sleep(30 * time.Millisecond)
	}

	for i := 0; i < 3; i++ {
		s.ClearPixels()
		sleep(100 * time.Millisecond)
		for y := 0; y < pixelH; y++ {
			for x := 0; x < pixelW; x++ {
				if (x+y)%20 == 0 {
					s.SetPixel(x, y, true)
				}
			}
		}
		sleep(100 * time.Millisecond)
	}

	sleep(1000 * time.Millisecond)
	s.ClearText()
}

// RunLoadingAnimation plays a pixel-mode loading bar, used while a program
// image is being read off the file store: a frame is drawn and held, then
// two fill passes sweep across it trailing a sine-wave behind the leading
// edge, then a flash, then the screen returns to text mode and prints a
// one-line confirmation.
func RunLoadingAnimation(s interface {
	ClearPixels()
	SetPixel(x, y int, on bool)
	ClearText()
	SetColor(c byte)
	WriteString(str string)
}, filename string, sleep func(time.Duration)) {
	const (
		barLeft, barRight = 60, 260
		barTop, barBottom = 90, 110
	)

	s.ClearPixels()
	for x := barLeft; x < barRight; x++ {
		s.SetPixel(x, barTop, true)
		s.SetPixel(x, barBottom, true)
	}
	for y := barTop; y <= barBottom; y++ {
		s.SetPixel(barLeft, y, true)
		s.SetPixel(barRight, y, true)
	}
	sleep(200 * time.Millisecond)

	for pass := 0; pass < 2; pass++ {
		for x := barLeft + 2; x < barRight-2; x += 2 {
			for y := barTop + 2; y < barBottom-1; y++ {
				s.SetPixel(x, y, true)
				s.SetPixel(x+1, y, true)
			}
			if x > barLeft+10 {
				waveX := x - 10
				for offset := -3; offset <= 3; offset++ {
					waveY := 100 + int(3*math.Sin(float64(waveX+offset*10)*0.3))
					if waveY >= barTop+2 && waveY < barBottom-1 {
						s.SetPixel(waveX, waveY, true)
					}
				}
			}
			sleep(8 * time.Millisecond)
		}
	}

	for i := 0; i < 3; i++ {
		s.ClearPixels()
		sleep(50 * time.Millisecond)
		for x := barLeft; x < barRight; x++ {
			for y := barTop; y <= barBottom; y++ {
				s.SetPixel(x, y, true)
			}
		}
		sleep(50 * time.Millisecond)
	}
	sleep(200 * time.Millisecond)

	s.ClearText()
	s.SetColor(colorBrightCyan)
	s.WriteString("\n    Loading: ")
	s.SetColor(colorBrightYellow)
	s.WriteString(filename)
	s.SetColor(colorBrightGreen)
	s.WriteString(" [OK]\n")
	s.SetColor(colorWhite)
}
