package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	_ "slate/internal/extension/builtin"
	"slate/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "slate",
	Short: "Slate compiler driver with extension hooks",
	Long:  `Slate drives the compilation engine and splices configured extensions into preprocessing, codegen, checking, and emission`,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 256, "maximum number of diagnostics to show")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the tri-state --color flag against the output terminal.
func useColor(mode string, out *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(out)
	}
}
