package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"symgraph/internal/driver"
	"symgraph/internal/encode"
)

var (
	extractManifest string
	extractOut      string
	extractFormat   string
	extractJobs     int
	extractTimings  bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractManifest, "manifest", "m", "symgraph.toml", "extraction manifest")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", ".", "output directory for graph payloads")
	extractCmd.Flags().StringVar(&extractFormat, "format", "msgpack", "payload format (msgpack|json)")
	extractCmd.Flags().IntVarP(&extractJobs, "jobs", "j", 0, "parallel units (0 = all CPUs)")
	extractCmd.Flags().BoolVar(&extractTimings, "timings", false, "print per-stage timings")
}

var extractCmd = &cobra.Command{
	Use:   "extract [tree files...]",
	Short: "Extract symbol graphs from declaration trees",
	Long: `Extract walks each declaration tree document against the manifest and
emits one payload per attributed module. Without arguments, every
*.decls.json under the current directory becomes a unit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyColorMode(cmd); err != nil {
			return err
		}
		format, err := encode.ParseFormat(extractFormat)
		if err != nil {
			return err
		}
		quiet, _ := cmd.Flags().GetBool("quiet")

		trees := args
		if len(trees) == 0 {
			trees, err = driver.ListTrees(".")
			if err != nil {
				return err
			}
			if len(trees) == 0 {
				return fmt.Errorf("no *.decls.json files found and none given")
			}
		}

		units := make([]driver.Unit, 0, len(trees))
		for _, tree := range trees {
			units = append(units, driver.Unit{TreePath: tree, ManifestPath: extractManifest})
		}

		results, err := driver.ExtractAll(cmd.Context(), units, extractJobs)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		success := color.New(color.FgGreen)
		for _, res := range results {
			paths, err := driver.WritePayloads(res, extractOut, format)
			if err != nil {
				return err
			}
			if !quiet {
				for _, path := range paths {
					success.Fprintf(out, "wrote %s\n", path)
				}
			}
			if extractTimings {
				printTimings(out, res)
			}
		}
		return nil
	},
}

func printTimings(out io.Writer, res *driver.UnitResult) {
	fmt.Fprintf(out, "%s:\n", res.Unit.TreePath)
	for _, stage := range res.Timing.Stages {
		fmt.Fprintf(out, "  %-16s %7.2f ms", stage.Name, stage.DurationMS)
		if stage.Note != "" {
			fmt.Fprintf(out, "  // %s", stage.Note)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "  %-16s %7.2f ms\n", "total", res.Timing.TotalMS)
}
