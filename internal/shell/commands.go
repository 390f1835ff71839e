package shell

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

const (
	colorBlack = iota
	colorBlue
	colorGreen
	colorCyan
	colorRed
	colorMagenta
	colorYellow // palette index 6, the dark yellow the palette table calls brown
	colorWhite
	colorGray
	colorBrightBlue
	colorBrightGreen
	colorBrightCyan
	colorBrightRed
	colorBrightMagenta
	colorBrightYellow
	colorBrightWhite
)

func (sh *Shell) cmdHelp() {
	s := sh.Surface
	s.SetColor(colorBrightYellow)
	s.WriteString("\nAvailable commands:\n===================\n")

	section := func(title string) {
		s.SetColor(colorBrightCyan)
		s.WriteString("\n" + title + ":\n")
	}
	entry := func(name, desc string) {
		s.SetColor(colorCyan)
		s.WriteString("  " + name)
		s.SetColor(colorWhite)
		s.WriteString(" - " + desc + "\n")
	}

	section("File Operations")
	entry("ls, dir        ", "List files in the file store")
	entry("cat <file>     ", "Display file contents")
	entry("rm <file>      ", "Delete a file")
	entry("cp <src> <dst> ", "Copy a file")
	entry("mv <src> <dst> ", "Move/rename a file")
	entry("touch <file>   ", "Create an empty file")
	entry("hexdump <file> ", "Display a hexadecimal dump")

	section("System Commands")
	entry("help           ", "Display this help message")
	entry("clear, cls     ", "Clear the screen")
	entry("echo <text>    ", "Print text to the screen")
	entry("sysinfo        ", "Display system information")
	entry("date           ", "Show the current date and time")
	entry("uptime         ", "Show system uptime")
	entry("meminfo        ", "Display memory information")
	entry("history        ", "Show command history")

	section("Program Execution")
	entry("run <file>     ", "Load and execute a bytecode image")

	section("Fun Commands")
	entry("banner <text>  ", "Display a large text banner")
	entry("color <0-15>   ", "Change the terminal ink color")
	entry("matrix         ", "Matrix falling-text effect")
	entry("starfield      ", "Starfield animation")
	entry("about          ", "About the microcomputer")
	entry("exit, quit     ", "Exit the system")
	s.Write('\n')
}

func (sh *Shell) cmdLs() {
	entries := sh.Store.List()
	if len(entries) == 0 {
		sh.Surface.WriteString("No files found.\n")
		return
	}
	sh.Surface.Write('\n')
	for _, e := range entries {
		sh.Surface.WriteString(fmt.Sprintf("%-20s %8d bytes  %s\n", e.Name, e.Size, e.Modified.Format("2006-01-02 15:04")))
	}
	sh.Surface.Write('\n')
}

func (sh *Shell) cmdCat(filename string) {
	data, err := sh.Store.Read(filename)
	if err != nil {
		sh.Surface.WriteString("Error: File not found\n")
		return
	}
	sh.Surface.Write('\n')
	for _, b := range data {
		switch {
		case b >= 32 && b < 127, b == '\n', b == '\r', b == '\t':
			sh.Surface.Write(b)
		default:
			sh.Surface.Write('.')
		}
	}
	sh.Surface.WriteString("\n\n")
}

func (sh *Shell) cmdRm(filename string) {
	if _, ok := sh.Store.Find(filename); !ok {
		sh.Surface.WriteString("Error: File not found\n")
		return
	}
	if err := sh.Store.Delete(filename); err != nil {
		sh.Surface.WriteString("Error: Could not delete file\n")
		return
	}
	sh.Surface.WriteString("File deleted.\n")
}

func (sh *Shell) cmdCp(src, dst string) {
	data, err := sh.Store.Read(src)
	if err != nil {
		sh.Surface.WriteString("Error: Source file not found\n")
		return
	}
	if err := sh.Store.Write(dst, data); err != nil {
		sh.Surface.WriteString("Error: Could not copy file\n")
		return
	}
	sh.Surface.WriteString("File copied.\n")
}

func (sh *Shell) cmdMv(src, dst string) {
	sh.cmdCp(src, dst)
	sh.cmdRm(src)
}

func (sh *Shell) cmdDate() {
	now := time.Now()
	if sh.CPU.Clock != nil {
		now = sh.CPU.Clock()
	}
	sh.Surface.WriteString(now.Format("Monday, January 02, 2006 15:04:05\n"))
}

func (sh *Shell) cmdUptime() {
	up := time.Since(sh.bootTime)
	h := int(up.Hours())
	m := int(up.Minutes()) % 60
	s := int(up.Seconds()) % 60
	sh.Surface.WriteString(fmt.Sprintf("Uptime: %d hours, %d minutes, %d seconds\n", h, m, s))
}

func (sh *Shell) cmdMeminfo() {
	s := sh.Surface
	s.WriteString("\nMemory Information:\n")
	s.WriteString(fmt.Sprintf("  Total Memory: %d KB\n", cap(sh.CPU.Memory[:])/1024))
	s.WriteString(fmt.Sprintf("  Program Counter: 0x%04X\n", sh.CPU.PC))
	s.WriteString(fmt.Sprintf("  Stack Pointer: 0x%04X\n", sh.CPU.SP))
	s.WriteString("  Registers:\n")
	for i, r := range sh.CPU.Regs {
		s.WriteString(fmt.Sprintf("    R%d: 0x%04X (%d)\n", i, r, r))
	}
	s.Write('\n')
}

func (sh *Shell) cmdHexdump(filename string) {
	data, err := sh.Store.Read(filename)
	if err != nil {
		sh.Surface.WriteString("Error: File not found\n")
		return
	}
	s := sh.Surface
	s.Write('\n')
	for i := 0; i < len(data); i += 16 {
		s.WriteString(fmt.Sprintf("%04x: ", i))
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		for _, b := range data[i:end] {
			s.WriteString(fmt.Sprintf("%02x ", b))
		}
		s.WriteString(" | ")
		for _, b := range data[i:end] {
			if b >= 32 && b < 127 {
				s.Write(b)
			} else {
				s.Write('.')
			}
		}
		s.Write('\n')
	}
	s.Write('\n')
}

func (sh *Shell) cmdHistory() {
	sh.Surface.WriteString("\nCommand History:\n")
	for i, cmd := range sh.history {
		sh.Surface.WriteString(fmt.Sprintf("  %d: %s\n", i+1, cmd))
	}
	sh.Surface.Write('\n')
}

func (sh *Shell) cmdSysinfo() {
	s := sh.Surface
	s.SetColor(colorBrightCyan)
	s.WriteString("\n=== MicroComputer System Information ===\n\n")

	field := func(label, value string) {
		s.SetColor(colorYellow)
		s.WriteString(label + ": ")
		s.SetColor(colorWhite)
		s.WriteString(value + "\n")
	}
	field("System", "MicroOS v1.0")
	field("CPU", "Virtual 16-bit RISC")
	field("RAM", fmt.Sprintf("%d KB", cap(sh.CPU.Memory[:])/1024))
	field("Registers", "8 x 16-bit")
	field("Display", fmt.Sprintf("%dx%d text, %dx%d graphics", cols, rows, pixelW, pixelH))
	field("Colors", "16-color palette")
	field("Files", fmt.Sprintf("%d loaded", len(sh.Store.List())))

	up := time.Since(sh.bootTime)
	field("Uptime", fmt.Sprintf("%dh %dm", int(up.Hours()), int(up.Minutes())%60))
	s.Write('\n')
}

func (sh *Shell) cmdTouch(filename string) {
	if err := sh.Store.Write(filename, nil); err != nil {
		sh.Surface.SetColor(colorBrightRed)
		sh.Surface.WriteString("Error: Could not create file\n")
		sh.Surface.SetColor(colorWhite)
		return
	}
	sh.Surface.SetColor(colorBrightGreen)
	sh.Surface.WriteString("File created.\n")
	sh.Surface.SetColor(colorWhite)
}

func (sh *Shell) cmdBanner(text string) {
	if text == "" {
		sh.Surface.WriteString("Usage: banner <text>\n")
		return
	}
	s := sh.Surface
	border := ""
	for i := 0; i < len(text)+4; i++ {
		border += "="
	}
	s.Write('\n')
	s.SetColor(colorBrightYellow)
	s.WriteString(border + "\n")
	s.SetColor(colorBrightCyan)
	s.WriteString("  " + text + "  \n")
	s.SetColor(colorBrightYellow)
	s.WriteString(border + "\n\n")
	s.SetColor(colorWhite)
}

func (sh *Shell) cmdColor(args []string) {
	if len(args) == 0 {
		sh.Surface.WriteString("Current color codes:\n")
		for i := 0; i < 16; i++ {
			sh.Surface.SetColor(byte(i))
			sh.Surface.WriteString(fmt.Sprintf("  %2d: Sample Text\n", i))
		}
		sh.Surface.SetColor(colorWhite)
		return
	}
	c, err := strconv.Atoi(args[0])
	if err != nil || c < 0 || c >= 16 {
		sh.Surface.WriteString("Invalid color (0-15)\n")
		return
	}
	sh.Surface.SetColor(byte(c))
	sh.Surface.WriteString("Color changed.\n")
}

func (sh *Shell) cmdMatrix() {
	sh.Surface.SetColor(colorBrightGreen)
	for frame := 0; frame < 100; frame++ {
		for x := 0; x < cols; x++ {
			if rand.Intn(3) == 0 {
				y := rand.Intn(rows)
				ch := byte(33 + rand.Intn(94))
				sh.Surface.SetCursor(x, y)
				sh.Surface.Write(ch)
			}
		}
		sh.CPU.Sleep(30 * time.Millisecond)
	}
	sh.Surface.SetColor(colorWhite)
}

type star struct{ x, y, z int }

func (sh *Shell) cmdStarfield() {
	sh.Surface.ClearPixels()
	stars := make([]star, 50)
	for i := range stars {
		stars[i] = star{rand.Intn(320) - 160, rand.Intn(200) - 100, rand.Intn(100) + 1}
	}
	for frame := 0; frame < 200; frame++ {
		sh.Surface.ClearPixels()
		for i := range stars {
			stars[i].z -= 2
			if stars[i].z <= 0 {
				stars[i] = star{rand.Intn(320) - 160, rand.Intn(200) - 100, 100}
			}
			sx := 160 + (stars[i].x*100)/stars[i].z
			sy := 100 + (stars[i].y*100)/stars[i].z
			if sx >= 0 && sx < pixelW && sy >= 0 && sy < pixelH {
				sh.Surface.SetPixel(sx, sy, true)
			}
		}
		sh.CPU.Sleep(50 * time.Millisecond)
	}
	sh.Surface.ClearText()
}

func (sh *Shell) cmdAbout() {
	s := sh.Surface
	s.ClearText()
	s.SetColor(colorBrightCyan)
	s.WriteString("\n\n")
	s.WriteString("        +--------------------------------------+\n")
	s.WriteString("        |                                      |\n")
	s.WriteString("        |     MicroComputer Emulator v1.0      |\n")
	s.WriteString("        |                                      |\n")
	s.WriteString("        +--------------------------------------+\n\n")

	s.SetColor(colorYellow)
	s.WriteString("  A fantasy computer for learning and creativity\n\n")

	s.SetColor(colorWhite)
	s.WriteString("  Features:\n")
	s.SetColor(colorGreen)
	s.WriteString("    - 64KB RAM with 8 registers\n")
	s.WriteString("    - 80x25 text mode with 16 colors\n")
	s.WriteString("    - 320x200 pixel graphics\n")
	s.WriteString("    - Sound synthesis\n")
	s.WriteString("    - Custom bytecode VM\n\n")

	s.SetColor(colorCyan)
	s.WriteString("  Inspired by fantasy consoles and retro computers\n\n")

	s.SetColor(colorBrightWhite)
	s.WriteString("  Type 'help' for available commands\n\n")
	s.SetColor(colorWhite)
}

func (sh *Shell) cmdRun(filename string) {
	data, err := sh.Store.Read(filename)
	if err != nil {
		sh.Surface.WriteString("Error: Could not load program\n")
		return
	}
	sh.CPU.Reset()
	if err := sh.CPU.Load(data); err != nil {
		sh.Surface.WriteString("Error: Could not load program\n")
		return
	}
	RunLoadingAnimation(sh.Surface, filename, sh.CPU.Sleep)
	sh.Surface.WriteString("Running program...\n")
	sh.CPU.Run()
	sh.Surface.WriteString("Program terminated.\n")
}

const (
	cols   = 80
	rows   = 25
	pixelW = 320
	pixelH = 200
)
