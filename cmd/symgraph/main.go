package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"symgraph/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "symgraph",
	Short: "Symbol graph extraction toolchain",
	Long:  `symgraph walks compiled declaration trees and emits per-module symbol graphs for documentation tooling`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// applyColorMode configures global color output from the --color flag.
func applyColorMode(cmd *cobra.Command) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}
