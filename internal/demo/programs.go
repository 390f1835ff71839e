package demo

// Hello assembles the smallest possible bytecode image: print a greeting and
// halt. Used as the "hello world" bundled ROM and as a smoke-test fixture.
func Hello() *Program {
	return New().
		ClearScreen().
		PrintStr("Hello from the microcomputer!\n").
		Halt()
}

// Countdown assembles a program that counts down from n to zero, printing
// one '*' per tick and beeping, using a backward jump rather than unrolling —
// the loop-and-jump scenario the command-line walkthrough demonstrates.
func Countdown(n uint16) *Program {
	p := New()
	p.ClearScreen()
	p.PrintStr("Counting down...\n\n")
	p.LoadReg(0, n) // R0: counter
	p.LoadReg(1, 1) // R1: decrement amount
	p.LoadReg(2, 0) // R2: compare target

	loopStart := p.Here()
	p.PrintChar('*')
	p.SleepMs(200)
	p.Beep(440, 50)
	p.Sub(0, 0, 1)
	p.Cmp(0, 2)
	p.Jnz(loopStart)

	p.PrintStr("\n\nCountdown complete!\n")
	return p.Halt()
}

// Graphics assembles a program that draws a bordered box, a pair of diagonals
// and an approximated circle onto the pixel plane, then returns to text mode.
// Ported from makedemo.c's graphics_test, minus its floating-point circle
// rasterizer — SET_PIXEL calls here trace a fixed octagon instead of calling
// out to cos/sin, since the bytecode instruction set has no trig opcodes.
func Graphics() *Program {
	p := New()
	p.ClearScreen()
	p.PrintStr("Switching to pixel graphics...\n")
	p.SleepMs(1000)
	p.ClearPixels()

	for x := uint16(0); x < 320; x += 10 {
		p.SetPixel(x, 0, 1)
		p.SetPixel(x, 199, 1)
	}
	for y := uint16(0); y < 200; y += 10 {
		p.SetPixel(0, y, 1)
		p.SetPixel(319, y, 1)
	}
	p.SleepMs(500)

	for i := uint16(0); i < 100; i += 2 {
		p.SetPixel(i, i, 1)
		p.SetPixel(319-i, i, 1)
	}
	p.SleepMs(500)

	cx, cy, r := 160, 100, 40
	for _, pt := range octagonPoints(cx, cy, r) {
		p.SetPixel(uint16(pt.x), uint16(pt.y), 1)
	}
	p.SleepMs(1500)

	p.ClearScreen()
	return p.Halt()
}

type point struct{ x, y int }

// octagonPoints returns 8 evenly spaced points around a circle of radius r
// centred at (cx, cy), using only integer multiples of a fixed 45-degree
// sine/cosine table rather than a trig call.
func octagonPoints(cx, cy, r int) []point {
	// sin/cos at 0, 45, 90, ... 315 degrees, scaled by 1000 (707 ~= sqrt(2)/2).
	cos := []int{1000, 707, 0, -707, -1000, -707, 0, 707}
	sin := []int{0, 707, 1000, 707, 0, -707, -1000, -707}
	pts := make([]point, len(cos))
	for i := range cos {
		pts[i] = point{
			x: cx + (r*cos[i])/1000,
			y: cy + (r*sin[i])/1000,
		}
	}
	return pts
}

// Showcase assembles the full feature-tour ROM: banner, a musical scale,
// register arithmetic, the countdown loop, the graphics demo, and a closing
// fanfare. Ported section-by-section from makedemo.c's main().
func Showcase() *Program {
	p := New()
	bannerSection(p)
	soundSection(p)
	registerSection(p)
	countdownSection(p)
	graphicsSection(p)
	finaleSection(p)
	return p.Halt()
}

func bannerSection(p *Program) {
	p.ClearScreen()
	p.PrintStr("================================================================================\n")
	p.PrintStr("                                                                                \n")
	p.PrintStr("      M I C R O C O M P U T E R   E M U L A T O R   D E M O                     \n")
	p.PrintStr("                                                                                \n")
	p.PrintStr("           Featuring: Graphics | Sound | Registers | Arithmetic                 \n")
	p.PrintStr("                                                                                \n")
	p.PrintStr("================================================================================\n")
	p.SleepMs(2000)
}

func soundSection(p *Program) {
	p.ClearScreen()
	p.PrintStr("SOUND TEST\n==========\n\nPlaying a musical scale...\n\n")
	p.SleepMs(500)

	notes := []uint16{262, 294, 330, 349, 392, 440, 494, 523}
	names := []string{"C", "D", "E", "F", "G", "A", "B", "C"}
	for i, n := range notes {
		p.PrintStr("Note: " + names[i] + "\n")
		p.Beep(n, 300)
		p.SleepMs(100)
	}
	p.SleepMs(500)
}

func registerSection(p *Program) {
	p.ClearScreen()
	p.PrintStr("REGISTER & ARITHMETIC TEST\n==========================\n\n")
	p.SleepMs(500)

	p.PrintStr("Loading values into registers...\n")
	p.LoadReg(0, 10)
	p.LoadReg(1, 5)
	p.SleepMs(500)

	p.PrintStr("R0 = 10, R1 = 5\n\n")
	p.PrintStr("R2 = R0 + R1 (addition)\n")
	p.Add(2, 0, 1)
	p.PrintStr("R3 = R0 - R1 (subtraction)\n")
	p.Sub(3, 0, 1)
	p.PrintStr("R4 = R0 * R1 (multiplication)\n")
	p.Mul(4, 0, 1)
	p.PrintStr("\nCheck 'meminfo' to see the register values!\n")
	p.SleepMs(2000)
}

func countdownSection(p *Program) {
	p.ClearScreen()
	p.PrintStr("LOOP & JUMP TEST\n================\n\n")
	p.PrintStr("Counting down from 10 using jumps...\n\n")
	p.SleepMs(1000)

	p.LoadReg(0, 10)
	p.LoadReg(1, 1)
	p.LoadReg(2, 0)

	loopStart := p.Here()
	p.PrintChar('*')
	p.SleepMs(200)
	p.Beep(440, 50)
	p.Sub(0, 0, 1)
	p.Cmp(0, 2)
	p.Jnz(loopStart)

	p.PrintStr("\n\nLoop complete!\n")
	p.SleepMs(1500)
}

func graphicsSection(p *Program) {
	p.ClearScreen()
	p.PrintStr("GRAPHICS MODE TEST\n==================\n\n")
	p.SleepMs(1000)
	p.ClearPixels()

	for x := uint16(0); x < 320; x += 10 {
		p.SetPixel(x, 0, 1)
		p.SetPixel(x, 199, 1)
	}
	for y := uint16(0); y < 200; y += 10 {
		p.SetPixel(0, y, 1)
		p.SetPixel(319, y, 1)
	}
	p.SleepMs(1000)

	cx, cy := 160, 100
	for radius := 10; radius <= 80; radius += 10 {
		for _, pt := range octagonPoints(cx, cy, radius) {
			p.SetPixel(uint16(pt.x), uint16(pt.y), 1)
		}
		p.Beep(uint16(200+radius*10), 50)
		p.SleepMs(200)
	}
	p.SleepMs(1500)
	p.ClearScreen()
}

func finaleSection(p *Program) {
	p.ClearScreen()
	p.PrintStr("\n\n\n")
	p.PrintStr("                         *** DEMO COMPLETE! ***\n\n")
	p.PrintStr("              MicroComputer Emulator Feature Showcase\n\n")
	p.PrintStr("  Features Demonstrated:\n")
	p.PrintStr("  [X] Text output and animation\n")
	p.PrintStr("  [X] Sound generation and music\n")
	p.PrintStr("  [X] Register operations\n")
	p.PrintStr("  [X] Arithmetic (add, sub, mul)\n")
	p.PrintStr("  [X] Loops and jumps\n")
	p.PrintStr("  [X] Pixel graphics mode\n\n")
	p.PrintStr("                    All systems operational!\n\n\n")

	fanfare := []uint16{523, 587, 659, 784}
	for _, n := range fanfare {
		p.Beep(n, 200)
		p.SleepMs(50)
	}
	p.Beep(1047, 600)
	p.SleepMs(2000)
}
