package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// currentReleaseVersion is used to print the version the user currently has installed.
const currentReleaseVersion = "v0.1.0"

// rootCmd is the base for all commands.
var rootCmd = &cobra.Command{
	Use:   "microemu [command]",
	Short: "microemu is a fantasy 16-bit microcomputer emulator",
	Long:  "microemu is a fantasy 16-bit microcomputer emulator",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Unknown command. Try `microemu help` for more information")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs microemu according to the user's command/subcommand/flags.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
