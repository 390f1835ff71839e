package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nilptr/microemu/internal/display"
	"github.com/nilptr/microemu/internal/logx"
	"github.com/nilptr/microemu/internal/system"
)

var fsRoot string

// runCmd boots the microcomputer: it brings up the host window on the OS
// thread pixelgl claims, starts the shell and VM on their own goroutine, and
// waits for either side to request a shutdown.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "boot the microcomputer shell",
	Args:  cobra.NoArgs,
	Run:   runMicroemu,
}

func init() {
	runCmd.Flags().StringVar(&fsRoot, "fs-root", "fs", "directory backing the flat file store")
}

func runMicroemu(cmd *cobra.Command, args []string) {
	log := logx.DefaultLogger()

	sys, err := system.New(fsRoot, log)
	if err != nil {
		fmt.Printf("error starting microemu: %v\n", err)
		os.Exit(1)
	}

	win, err := display.NewWindow(sys.Surface, sys.Bus)
	if err != nil {
		fmt.Printf("error creating window: %v\n", err)
		os.Exit(1)
	}

	go sys.RunShell()

	win.Running(func() bool { return !sys.Running() })
	sys.RequestShutdown()
}
