package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"symgraph/internal/encode"
	"symgraph/internal/ui"
)

var describeFull bool

func init() {
	describeCmd.Flags().BoolVar(&describeFull, "full", false, "list every symbol and relationship")
}

var describeCmd = &cobra.Command{
	Use:   "describe <payload files...>",
	Short: "Summarize emitted symbol graph payloads",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyColorMode(cmd); err != nil {
			return err
		}
		payloads, err := readPayloads(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !describeFull {
			fmt.Fprintln(out, ui.RenderSummary(payloads))
			return nil
		}
		width := 100
		if isTerminal(os.Stdout) {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w
			}
		}
		for _, p := range payloads {
			fmt.Fprintln(out, ui.RenderGraph(p, width))
		}
		return nil
	},
}

func readPayloads(paths []string) ([]encode.GraphPayload, error) {
	payloads := make([]encode.GraphPayload, 0, len(paths))
	for _, path := range paths {
		p, err := encode.ReadFile(path)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}
