// Package display implements the shared text-and-pixel framebuffer that the
// virtual machine writes to and the host window driver reads from.
package display

const (
	Cols     = 80
	Rows     = 25
	PixelW   = 320
	PixelH   = 200
	DefaultColor = 7 // light grey, matches the boot-time default
)

// Surface is the single shared framebuffer: an 80x25 character grid with
// per-cell colour attributes, and an independent 320x200 1-bit pixel plane.
// The VM and shell write it from the run goroutine; the window driver reads
// it from the render goroutine and also writes the keystroke echo
// (EchoChar/EchoBackspace) from there. All sides only
// ever read or write whole cells/pixels, so torn reads of a single in-flight
// write are tolerated and no mutex guards the grids themselves. Dirty is a
// plain bool for the same reason: a missed frame just gets redrawn next tick.
type Surface struct {
	chars  [Rows][Cols]byte
	colors [Rows][Cols]byte
	pixels [PixelH][PixelW]bool

	cursorX, cursorY int
	cursorVisible    bool
	pixelMode        bool
	currentColor     byte
	dirty            bool
}

// NewSurface returns a Surface in its boot state: blank grid, cursor at
// (0,0) and visible, text mode, light-grey ink.
func NewSurface() *Surface {
	s := &Surface{}
	s.reset()
	return s
}

func (s *Surface) reset() {
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			s.chars[y][x] = ' '
			s.colors[y][x] = DefaultColor
		}
	}
	s.cursorX, s.cursorY = 0, 0
	s.cursorVisible = true
	s.pixelMode = false
	s.currentColor = DefaultColor
	s.dirty = true
}

// ClearText blanks the character grid, resets the cursor to the origin, and
// returns to text mode. It does not touch the pixel plane.
func (s *Surface) ClearText() {
	s.reset()
}

// SetColor sets the ink used by subsequent Write/WriteString calls. Values
// outside the 16-entry palette are ignored.
func (s *Surface) SetColor(c byte) {
	if int(c) < len(Palette) {
		s.currentColor = c
	}
}

// Cursor returns the current cursor cell.
func (s *Surface) Cursor() (x, y int) {
	return s.cursorX, s.cursorY
}

// SetCursor moves the cursor. Each axis is validated independently: an
// out-of-range x leaves cursorX wherever it was rather than clamping it to
// an edge, and likewise for y.
func (s *Surface) SetCursor(x, y int) {
	if x >= 0 && x < Cols {
		s.cursorX = x
	}
	if y >= 0 && y < Rows {
		s.cursorY = y
	}
	s.dirty = true
}

// SetCursorVisible toggles cursor rendering. The surface owns no timer and
// nothing in this module flips it periodically, so the cursor does not blink.
func (s *Surface) SetCursorVisible(v bool) {
	s.cursorVisible = v
	s.dirty = true
}

// CursorVisible reports whether the cursor should currently be drawn.
func (s *Surface) CursorVisible() bool {
	return s.cursorVisible
}

// PixelMode reports whether the last drawing operation put the surface into
// pixel mode; the window driver uses this to decide which plane to render.
func (s *Surface) PixelMode() bool {
	return s.pixelMode
}

// Dirty reports and clears the repaint flag.
func (s *Surface) Dirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// MarkDirty forces the next Dirty() to report true, used by the driver after
// a resize or focus event that needs an unconditional repaint.
func (s *Surface) MarkDirty() {
	s.dirty = true
}

// Write appends a single byte to the text grid, honouring \n, \r, \b and \t
// the same way the console does: newline moves to the next row, carriage
// return returns to column 0, backspace steps left without erasing, and tab
// rounds up to the next multiple of 4 columns. Printable bytes wrap at
// column 80 and scroll when they'd land past the last row; the new row
// inherits the current ink rather than the default.
func (s *Surface) Write(c byte) {
	switch c {
	case '\n':
		s.cursorY++
		s.cursorX = 0
	case '\r':
		s.cursorX = 0
	case '\b':
		if s.cursorX > 0 {
			s.cursorX--
		}
	case '\t':
		s.cursorX = (s.cursorX + 4) &^ 3
	default:
		if s.cursorX >= Cols {
			s.cursorX = 0
			s.cursorY++
		}
		if s.cursorY >= Rows {
			s.scroll()
		}
		s.chars[s.cursorY][s.cursorX] = c
		s.colors[s.cursorY][s.cursorX] = s.currentColor
		s.cursorX++
	}
	s.dirty = true
}

// EchoChar writes a typed keystroke at the cursor, advancing one column
// without wrapping to the next row or scrolling. It mirrors the host
// driver's handling of a printable keypress, which is a bounded write
// distinct from Write's VM-facing wrap/scroll behaviour: a keystroke typed
// at the last column is simply dropped rather than wrapping.
func (s *Surface) EchoChar(c byte) {
	if s.cursorX < Cols {
		s.chars[s.cursorY][s.cursorX] = c
		s.colors[s.cursorY][s.cursorX] = s.currentColor
		s.cursorX++
		s.dirty = true
	}
}

// EchoBackspace steps the cursor back one column and blanks the vacated
// cell, mirroring the host driver's Backspace handling.
func (s *Surface) EchoBackspace() {
	if s.cursorX > 0 {
		s.cursorX--
		s.chars[s.cursorY][s.cursorX] = ' '
		s.dirty = true
	}
}

// WriteString writes each byte of str via Write, in order.
func (s *Surface) WriteString(str string) {
	for i := 0; i < len(str); i++ {
		s.Write(str[i])
	}
}

// Cell returns the glyph and colour attribute at (x, y). Out-of-range
// coordinates return a blank space in the default colour.
func (s *Surface) Cell(x, y int) (ch byte, color byte) {
	if x < 0 || x >= Cols || y < 0 || y >= Rows {
		return ' ', DefaultColor
	}
	return s.chars[y][x], s.colors[y][x]
}

func (s *Surface) scroll() {
	for y := 0; y < Rows-1; y++ {
		s.chars[y] = s.chars[y+1]
		s.colors[y] = s.colors[y+1]
	}
	for x := 0; x < Cols; x++ {
		s.chars[Rows-1][x] = ' '
		s.colors[Rows-1][x] = s.currentColor
	}
	s.cursorY = Rows - 1
}

// SetPixel sets or clears one pixel, silently clipping out-of-range
// coordinates, and enters pixel mode.
func (s *Surface) SetPixel(x, y int, on bool) {
	if x >= 0 && x < PixelW && y >= 0 && y < PixelH {
		s.pixels[y][x] = on
	}
	s.pixelMode = true
	s.dirty = true
}

// Pixel reports whether the pixel at (x, y) is set. Out-of-range
// coordinates report false.
func (s *Surface) Pixel(x, y int) bool {
	if x < 0 || x >= PixelW || y < 0 || y >= PixelH {
		return false
	}
	return s.pixels[y][x]
}

// ClearPixels zeroes the pixel plane and returns the surface to text mode.
func (s *Surface) ClearPixels() {
	s.pixels = [PixelH][PixelW]bool{}
	s.pixelMode = false
	s.dirty = true
}

// DrawLine plots a Bresenham line between two points.
func (s *Surface) DrawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		s.SetPixel(x0, y0, true)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect plots the outline of a w x h rectangle anchored at (x, y).
func (s *Surface) DrawRect(x, y, w, h int) {
	for i := 0; i < w; i++ {
		s.SetPixel(x+i, y, true)
		s.SetPixel(x+i, y+h-1, true)
	}
	for i := 0; i < h; i++ {
		s.SetPixel(x, y+i, true)
		s.SetPixel(x+w-1, y+i, true)
	}
}

// FillRect plots every pixel of a w x h rectangle anchored at (x, y).
func (s *Surface) FillRect(x, y, w, h int) {
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			s.SetPixel(x+i, y+j, true)
		}
	}
}

// DrawCircle plots a circle outline of radius r centred at (cx, cy) using
// the midpoint algorithm with 8-way symmetry.
func (s *Surface) DrawCircle(cx, cy, r int) {
	x, y := r, 0
	err := 0
	for x >= y {
		s.SetPixel(cx+x, cy+y, true)
		s.SetPixel(cx+y, cy+x, true)
		s.SetPixel(cx-y, cy+x, true)
		s.SetPixel(cx-x, cy+y, true)
		s.SetPixel(cx-x, cy-y, true)
		s.SetPixel(cx-y, cy-x, true)
		s.SetPixel(cx+y, cy-x, true)
		s.SetPixel(cx+x, cy-y, true)
		if err <= 0 {
			y++
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
