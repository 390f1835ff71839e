// Package system wires the CPU, display, input, file store and shell
// together and owns the two cooperating goroutines: the host window driver,
// which must run on the OS thread pixelgl claims, and the shell/VM thread,
// which drives the REPL and any running program.
package system

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nilptr/microemu/internal/cpu"
	"github.com/nilptr/microemu/internal/display"
	"github.com/nilptr/microemu/internal/filestore"
	"github.com/nilptr/microemu/internal/input"
	"github.com/nilptr/microemu/internal/shell"
)

// System owns every subsystem and the running flag both goroutines consult.
type System struct {
	Surface *display.Surface
	Bus     *input.Bus
	Store   *filestore.Store
	CPU     *cpu.State
	Shell   *shell.Shell
	Audio   *Audio
	Log     *slog.Logger

	running atomic.Bool
}

// New assembles a System rooted at fsRoot, logging through log.
func New(fsRoot string, log *slog.Logger) (*System, error) {
	store, err := filestore.New(fsRoot)
	if err != nil {
		return nil, err
	}

	surface := display.NewSurface()
	bus := &input.Bus{}
	audio := NewAudio(surface)

	vm := cpu.New(surface, bus)
	vm.Beep = audio.Beep

	sys := &System{
		Surface: surface,
		Bus:     bus,
		Store:   store,
		CPU:     vm,
		Audio:   audio,
		Log:     log,
	}
	sys.running.Store(true)

	sys.Shell = shell.New(vm, surface, bus, store, log, time.Now())
	sys.Shell.KeepRunning = sys.Running
	sys.Shell.Stop = sys.RequestShutdown

	return sys, nil
}

// Running reports whether the system is still alive; both the shell's input
// reads and the window's render loop poll this to shut down cooperatively.
func (s *System) Running() bool {
	return s.running.Load()
}

// RequestShutdown asks both threads to stop at their next cooperative check.
func (s *System) RequestShutdown() {
	s.running.Store(false)
}

// RunShell drives the shell REPL until it exits or shutdown is requested. It
// is meant to run on its own goroutine, separate from the window's event
// loop which must stay on the OS thread.
func (s *System) RunShell() {
	defer s.RequestShutdown()
	s.Log.Info("shell starting")
	s.Shell.Run()
	s.Log.Info("shell exited")
}
