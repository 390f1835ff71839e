// Package shell implements the command-line environment the user lands in
// after boot: a small REPL over the text Surface, backed by the file store
// and able to load and run bytecode images on the CPU.
package shell

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/nilptr/microemu/internal/cpu"
	"github.com/nilptr/microemu/internal/display"
	"github.com/nilptr/microemu/internal/filestore"
	"github.com/nilptr/microemu/internal/input"
)

const maxHistory = 50

// Shell is the REPL: it owns command history and dispatches tokenized input
// lines to the command table, reading from bus and writing to surface.
type Shell struct {
	CPU     *cpu.State
	Surface *display.Surface
	Bus     *input.Bus
	Store   *filestore.Store
	Log     *slog.Logger

	bootTime time.Time
	history  []string

	// KeepRunning reports whether the enclosing process is still alive; the
	// shell stops reading input once it returns false. Stop asks the
	// process to shut down, e.g. in response to "exit".
	KeepRunning func() bool
	Stop        func()
}

// New returns a Shell wired to the given subsystems. bootTime anchors the
// uptime command.
func New(c *cpu.State, s *display.Surface, bus *input.Bus, store *filestore.Store, log *slog.Logger, bootTime time.Time) *Shell {
	return &Shell{
		CPU:      c,
		Surface:  s,
		Bus:      bus,
		Store:    store,
		Log:      log,
		bootTime: bootTime,
	}
}

// Run shows the boot animation, prints the welcome banner, then loops
// reading and dispatching commands until KeepRunning returns false or the
// user types exit/quit.
func (sh *Shell) Run() {
	RunBootAnimation(sh.Surface, sh.CPU.Sleep)
	sh.Surface.ClearText()

	sh.Surface.SetColor(colorBrightCyan)
	sh.Surface.WriteString("MicroOS v1.0\n")
	sh.Surface.SetColor(colorYellow)
	sh.Surface.WriteString("Type 'help' for available commands.\n\n")
	sh.Surface.SetColor(colorWhite)

	for sh.alive() {
		sh.printPrompt()
		line, ok := sh.Bus.ReadLine(sh.alive)
		if !ok || !sh.alive() {
			return
		}
		sh.Surface.Write('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sh.addHistory(line)
		if sh.dispatch(line) {
			return
		}
	}
}

func (sh *Shell) alive() bool {
	return sh.KeepRunning == nil || sh.KeepRunning()
}

func (sh *Shell) printPrompt() {
	sh.Surface.SetColor(colorBrightGreen)
	sh.Surface.WriteString("$ ")
	sh.Surface.SetColor(colorWhite)
}

func (sh *Shell) addHistory(line string) {
	if len(sh.history) >= maxHistory {
		sh.history = sh.history[1:]
	}
	sh.history = append(sh.history, line)
}

// dispatch runs one command line and reports whether the shell should exit.
func (sh *Shell) dispatch(line string) bool {
	args, err := shlex.Split(line)
	if err != nil || len(args) == 0 {
		sh.Log.Warn("could not tokenize command line", "line", line, "error", err)
		return false
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "exit", "quit":
		sh.Surface.SetColor(colorBrightYellow)
		sh.Surface.WriteString("Goodbye!\n")
		sh.Surface.SetColor(colorWhite)
		sh.CPU.Sleep(500 * time.Millisecond)
		if sh.Stop != nil {
			sh.Stop()
		}
		return true
	case "help":
		sh.cmdHelp()
	case "clear", "cls":
		sh.Surface.ClearText()
	case "ls", "dir":
		sh.cmdLs()
	case "sysinfo":
		sh.cmdSysinfo()
	case "touch":
		sh.requireOne(rest, "touch <filename>", sh.cmdTouch)
	case "banner":
		sh.cmdBanner(strings.Join(rest, " "))
	case "color":
		sh.cmdColor(rest)
	case "matrix":
		sh.cmdMatrix()
	case "starfield":
		sh.cmdStarfield()
	case "about":
		sh.cmdAbout()
	case "cat":
		sh.requireOne(rest, "cat <filename>", sh.cmdCat)
	case "rm":
		sh.requireOne(rest, "rm <filename>", sh.cmdRm)
	case "cp":
		sh.requireTwo(rest, "cp <source> <destination>", sh.cmdCp)
	case "mv":
		sh.requireTwo(rest, "mv <source> <destination>", sh.cmdMv)
	case "echo":
		sh.Surface.WriteString(strings.Join(rest, " "))
		sh.Surface.Write('\n')
	case "date":
		sh.cmdDate()
	case "uptime":
		sh.cmdUptime()
	case "meminfo":
		sh.cmdMeminfo()
	case "hexdump":
		sh.requireOne(rest, "hexdump <filename>", sh.cmdHexdump)
	case "history":
		sh.cmdHistory()
	case "run":
		sh.requireOne(rest, "run <filename>", sh.cmdRun)
	default:
		sh.Surface.SetColor(colorBrightRed)
		sh.Surface.WriteString(fmt.Sprintf("Unknown command: %s\n", cmd))
		sh.Surface.SetColor(colorYellow)
		sh.Surface.WriteString("Type 'help' for available commands.\n")
		sh.Surface.SetColor(colorWhite)
	}
	return false
}

func (sh *Shell) requireOne(args []string, usage string, fn func(string)) {
	if len(args) < 1 {
		sh.Surface.WriteString("Usage: " + usage + "\n")
		return
	}
	fn(args[0])
}

func (sh *Shell) requireTwo(args []string, usage string, fn func(a, b string)) {
	if len(args) < 2 {
		sh.Surface.WriteString("Usage: " + usage + "\n")
		return
	}
	fn(args[0], args[1])
}
