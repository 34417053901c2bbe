package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/anoma/Semitopology-Checker/internal/canon"
	"github.com/anoma/Semitopology-Checker/internal/coordinator"
	"github.com/anoma/Semitopology-Checker/internal/generator"
	"github.com/anoma/Semitopology-Checker/internal/openset"
)

func newEnumerateCmd() *cobra.Command {
	var (
		mode          string
		minN, maxN    int
		emissionLimit int
		cacheSize     int
		batchSize     int
		formulaText   string
		startingText  string
		outPath       string
		traceSize     int
	)

	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Enumerate canonical families for a ground-size range, one family per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMode(mode)
			if err != nil {
				return err
			}

			var starting openset.Family
			if startingText != "" {
				if minN != maxN {
					return errors.New("--starting requires --min-n == --max-n")
				}
				starting, err = openset.ParseFamily(startingText, maxN)
				if err != nil {
					return errors.Wrap(err, "parse --starting")
				}
			}

			coord, err := coordinator.New(coordinator.Config{
				Mode:           m,
				MinN:           minN,
				MaxN:           maxN,
				StartingFamily: starting,
				EmissionLimit:  emissionLimit,
				CacheSize:      cacheSize,
				BatchSize:      batchSize,
				FormulaText:    formulaText,
				TraceSize:      traceSize,
				OnTrace: func(n int, events []generator.TraceEvent) {
					logrus.WithFields(logrus.Fields{"n": n, "events": len(events)}).Debug("trace recorded")
				},
			})
			if err != nil {
				return err
			}

			writers := map[int]io.WriteCloser{}
			defer func() {
				for _, w := range writers {
					w.Close()
				}
			}()

			var sinkErr error
			runErr := coord.Run(cmd.Context(), func(e coordinator.Emission) bool {
				w, err := sinkFor(writers, outPath, e.N)
				if err != nil {
					sinkErr = err
					return false
				}
				fmt.Fprintln(w, openset.FormatFamily(e.Family, e.N))
				return true
			})
			if sinkErr != nil {
				return sinkErr
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "semitopology", "semitopology|semiframe")
	cmd.Flags().IntVar(&minN, "min-n", 1, "minimum ground size")
	cmd.Flags().IntVar(&maxN, "max-n", 1, "maximum ground size")
	cmd.Flags().IntVar(&emissionLimit, "emission-limit", 0, "stop after this many emissions per n (0 = unlimited)")
	cmd.Flags().IntVar(&cacheSize, "cache-size", canon.DefaultCacheSize, "canonicalization cache capacity (0 disables caching)")
	cmd.Flags().IntVar(&batchSize, "batch-size", generator.DefaultBatchSize, "frontier batch size")
	cmd.Flags().StringVar(&formulaText, "formula", "", "optional proposition formula filter")
	cmd.Flags().StringVar(&startingText, "starting", "", "optional starting family text (requires --min-n == --max-n)")
	cmd.Flags().StringVar(&outPath, "out", "", "output path template (may contain {n}); empty means stdout")
	cmd.Flags().IntVar(&traceSize, "trace-size", 0, "ring-buffer capacity for diagnostic tracing (0 disables tracing)")
	return cmd
}
