package display

import "image/color"

// Palette is the fixed 16-colour attribute table, indexed the same way the
// original CGA-style attribute byte ordering did.
var Palette = [16]color.RGBA{
	0:  {0x00, 0x00, 0x00, 0xff}, // black
	1:  {0x00, 0x00, 0xaa, 0xff}, // blue
	2:  {0x00, 0xaa, 0x00, 0xff}, // green
	3:  {0x00, 0xaa, 0xaa, 0xff}, // cyan
	4:  {0xaa, 0x00, 0x00, 0xff}, // red
	5:  {0xaa, 0x00, 0xaa, 0xff}, // magenta
	6:  {0xaa, 0x55, 0x00, 0xff}, // brown
	7:  {0xaa, 0xaa, 0xaa, 0xff}, // light grey
	8:  {0x55, 0x55, 0x55, 0xff}, // dark grey
	9:  {0x55, 0x55, 0xff, 0xff}, // bright blue
	10: {0x55, 0xff, 0x55, 0xff}, // bright green
	11: {0x55, 0xff, 0xff, 0xff}, // bright cyan
	12: {0xff, 0x55, 0x55, 0xff}, // bright red
	13: {0xff, 0x55, 0xff, 0xff}, // bright magenta
	14: {0xff, 0xff, 0x55, 0xff}, // bright yellow
	15: {0xff, 0xff, 0xff, 0xff}, // bright white
}
