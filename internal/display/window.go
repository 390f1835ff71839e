package display

import (
	"fmt"
	"image/color"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/nilptr/microemu/internal/input"
)

const (
	cellW, cellH = 10.0, 16.0
	winW         = cellW * Cols
	winH         = cellH * Rows
)

// Window owns the host OS window and is the single reader of a Surface; its
// only writes to the Surface are the keystroke echo. It must run on the OS
// thread pixelgl.Run hands it; rendering and keyboard
// polling both happen from that same goroutine.
type Window struct {
	*pixelgl.Window
	surface *Surface
	bus     *input.Bus
	atlas   *text.Atlas
	running func() bool
}

// NewWindow creates the host window sized for the 80x25 text grid and wires
// it to surface for rendering and bus for keyboard input.
func NewWindow(surface *Surface, bus *input.Bus) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  "microemu",
		Bounds: pixel.R(0, 0, winW, winH),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	return &Window{
		Window:  w,
		surface: surface,
		bus:     bus,
		atlas:   text.NewAtlas(basicfont.Face7x13, text.ASCII),
	}, nil
}

// Running runs the host window's event loop until the window is closed or
// stop() reports true, pumping input and repainting once per tick. stop is
// polled so the VM side can ask the window to close cooperatively.
func (w *Window) Running(stop func() bool) {
	for !w.Closed() && !stop() {
		w.pollInput()
		if w.surface.Dirty() {
			w.render()
		}
		w.Window.Update()
	}
}

// pollInput pushes keystrokes onto bus for the shell/VM side to read, and
// echoes them straight into surface the way the original window procedure's
// WM_CHAR handler writes directly into screen.chars and moves cursor_x:
// printable keys advance the cursor one cell, Backspace steps it back and
// blanks the vacated cell, and Enter is left to the shell to echo as a
// newline once the finished line is read.
func (w *Window) pollInput() {
	for _, r := range w.Typed() {
		if r >= 0x20 && r < 0x7f {
			w.bus.PushChar(byte(r))
			w.surface.EchoChar(byte(r))
		}
	}
	if w.JustPressed(pixelgl.KeyEnter) {
		w.bus.PushEnter()
	}
	if w.JustPressed(pixelgl.KeyBackspace) {
		w.bus.PushBackspace()
		w.surface.EchoBackspace()
	}
}

func (w *Window) render() {
	w.Clear(colornames.Black)
	if w.surface.PixelMode() {
		w.renderPixels()
	} else {
		w.renderText()
	}
}

func (w *Window) renderPixels() {
	imd := imdraw.New(nil)
	imd.Color = pixel.RGB(1, 1, 1)
	sx, sy := winW/PixelW, winH/PixelH
	for y := 0; y < PixelH; y++ {
		for x := 0; x < PixelW; x++ {
			if !w.surface.Pixel(x, y) {
				continue
			}
			flippedY := float64(PixelH-1-y) * sy
			imd.Push(pixel.V(float64(x)*sx, flippedY))
			imd.Push(pixel.V(float64(x)*sx+sx, flippedY+sy))
			imd.Rectangle(0)
		}
	}
	imd.Draw(w)
}

func (w *Window) renderText() {
	imd := imdraw.New(nil)
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			_, c := w.surface.Cell(x, y)
			if c == DefaultColor {
				continue
			}
			plotCell(imd, x, y, paletteColor(c))
		}
	}
	imd.Draw(w)

	txt := text.New(pixel.V(2, winH-cellH+3), w.atlas)
	for y := 0; y < Rows; y++ {
		txt.Dot = pixel.V(2, winH-float64(y+1)*cellH+3)
		for x := 0; x < Cols; x++ {
			ch, c := w.surface.Cell(x, y)
			txt.Color = paletteColor(c)
			txt.WriteString(string(rune(ch)))
		}
	}
	txt.Draw(w, pixel.IM)

	if w.surface.CursorVisible() {
		cx, cy := w.surface.Cursor()
		imd := imdraw.New(nil)
		imd.Color = colornames.White
		x0 := float64(cx) * cellW
		y0 := winH - float64(cy+1)*cellH
		imd.Push(pixel.V(x0, y0), pixel.V(x0+cellW, y0+2))
		imd.Rectangle(0)
		imd.Draw(w)
	}
}

func plotCell(imd *imdraw.IMDraw, x, y int, col color.RGBA) {
	imd.Color = col
	x0 := float64(x) * cellW
	y0 := winH - float64(y+1)*cellH
	imd.Push(pixel.V(x0, y0), pixel.V(x0+cellW, y0+cellH))
	imd.Rectangle(0)
}

func paletteColor(c byte) color.RGBA {
	if int(c) >= len(Palette) {
		return Palette[DefaultColor]
	}
	return Palette[c]
}
