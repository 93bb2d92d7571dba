package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/born-ml/fuser/internal/schedule"
)

var traceCmd = &cobra.Command{
	Use:   "trace FILE TENSOR",
	Short: "Print the root domain and transform history of a tensor",
	Long: `Loads the schedule, applies its transforms without running any
compute-at request, and prints how TENSOR's domain was derived from its root.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrace(cmd.OutOrStdout(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
}

func runTrace(w io.Writer, path, tensor string) error {
	doc, err := schedule.LoadFile(path)
	if err != nil {
		return err
	}
	p, err := schedule.Build(doc)
	if err != nil {
		return err
	}
	root, rec, err := p.History(tensor)
	if err != nil {
		return err
	}
	tv, _ := p.View(tensor)

	fmt.Fprintf(w, "%s\n", tensor)
	fmt.Fprintf(w, "  root:    %s\n", root)
	if rec.Len() == 0 {
		fmt.Fprint(w, "  history: none\n")
	} else {
		fmt.Fprintf(w, "  history: %s\n", rec)
	}
	fmt.Fprintf(w, "  current: %s\n", tv.Domain())
	fmt.Fprintf(w, "  points:  %d -> %d\n", root.Extents().NumIterations(), tv.Domain().Extents().NumIterations())
	return nil
}
