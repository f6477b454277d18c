package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sodagql/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sodagql",
	Short: "Build-time transformer for soda-gql declarative builder calls",
	Long:  `sodagql rewrites declarative gql builder modules into lean runtime calls using a prebuilt artifact`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// stdoutIsTerminal reports whether stdout is an interactive terminal.
func stdoutIsTerminal() bool {
	f, ok := any(os.Stdout).(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the terminal and wires the
// global color toggle.
func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	enabled := false
	switch mode {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		enabled = stdoutIsTerminal()
	}
	color.NoColor = !enabled
	return enabled
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}
