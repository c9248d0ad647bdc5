package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/danl5/govote/pkg/report"
)

func newReplayCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <record file>",
		Short: "Print the final tally of every station from a record file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			snapshots, err := report.ReadRecords(f)
			if err != nil {
				return err
			}

			fmt.Fprintf(stdout, "snapshots: %d\n", len(snapshots))
			printer := report.NewPrinter(stdout)
			for _, s := range report.Latest(snapshots) {
				if err := printer.Report(s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
