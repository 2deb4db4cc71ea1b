package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"symgraph/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <payload files...>",
	Short: "Browse symbol graph payloads interactively",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal(os.Stdout) {
			return fmt.Errorf("browse needs a terminal; use describe for plain output")
		}
		payloads, err := readPayloads(args)
		if err != nil {
			return err
		}
		return ui.Browse(payloads)
	},
}
