package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/fuser/internal/parallel"
	"github.com/born-ml/fuser/internal/replay"
	"github.com/born-ml/fuser/internal/schedule"
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE...",
	Short: "Run the compute-at requests of schedule files",
	Long: `Loads every schedule, applies its transforms and replays each compute-at
request. Files are processed concurrently; reports are printed in argument
order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := parallel.DefaultConfig().WithWorkers(workers)
		return runReplay(cmd.OutOrStdout(), args, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(w io.Writer, files []string, cfg parallel.Config, logger *zap.Logger) error {
	results := parallel.Map(len(files), func(i int) ([]schedule.Report, error) {
		return replayFile(files[i], logger)
	}, cfg)

	failed := 0
	for i, res := range results {
		fmt.Fprintf(w, "== %s\n", files[i])
		for _, r := range res.Value {
			fmt.Fprint(w, r.String())
		}
		if res.Err != nil {
			failed++
			fmt.Fprintf(w, "error: %v\n", res.Err)
			logger.Error("schedule failed", zap.String("file", files[i]), zap.Error(res.Err))
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d schedules failed", failed, len(files))
	}
	return nil
}

// replayFile runs one schedule in its own fusion. Reports of the requests
// that succeeded before a failure are returned with the error.
func replayFile(path string, logger *zap.Logger) ([]schedule.Report, error) {
	doc, err := schedule.LoadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := schedule.Build(doc)
	if err != nil {
		return nil, errors.Wrap(err, doc.Name)
	}

	l := logger.With(zap.String("schedule", doc.Name), zap.Stringer("fusion", p.Fusion.ID()))
	l.Debug("schedule built",
		zap.Int("tensors", len(doc.Tensors)),
		zap.Int("domains", p.Fusion.NumDomains()),
		zap.Int("transforms", p.Fusion.NumTransforms()))
	return p.Run(replay.New(replay.WithLogger(l)))
}
