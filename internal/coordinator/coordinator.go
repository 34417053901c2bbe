// Package coordinator wires the canonicalizer, cache, generator, and
// proposition language together into a single entry point: for each
// requested ground size, canonicalize the starting family, drive the
// generator, and (when a formula is supplied) filter emissions through
// expand-and-evaluate before handing them to a sink.
package coordinator

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/anoma/Semitopology-Checker/internal/canon"
	"github.com/anoma/Semitopology-Checker/internal/generator"
	"github.com/anoma/Semitopology-Checker/internal/logic"
	"github.com/anoma/Semitopology-Checker/internal/openset"
)

// Config holds everything a single enumeration run needs.
type Config struct {
	Mode generator.Mode
	MinN int
	MaxN int

	// StartingFamily overrides generator.DefaultStartingFamily when
	// non-nil. It is validated and canonicalized once per n.
	StartingFamily openset.Family

	EmissionLimit int
	CacheSize     int
	BatchSize     int

	// TraceSize enables a per-n generator.Trace of this ring-buffer
	// capacity when positive; 0 (the default) disables tracing. OnTrace,
	// if set, receives that n's recorded events once its enumeration
	// completes.
	TraceSize int
	OnTrace   func(n int, events []generator.TraceEvent)

	// FormulaText is optional; when empty, every emitted family reaches
	// the sink. When set, it is parsed and macro-expanded once up front,
	// then checked against every emitted family.
	FormulaText string

	Logger *logrus.Logger
}

// Emission is one unit of work handed to a Sink: the family the
// generator emitted, the n it was emitted for, and — when a formula was
// configured — the result of checking it.
type Emission struct {
	N           int
	Family      openset.Family
	CheckResult *logic.Result
}

// Sink receives emissions in generation order. Returning false stops
// the run early, mirroring generator.EmitFunc one level up.
type Sink func(Emission) bool

// Coordinator runs one configured enumeration (optionally formula-
// filtered) across a size range.
type Coordinator struct {
	cfg     Config
	formula logic.Formula // nil when cfg.FormulaText is empty
}

// New parses and expands cfg.FormulaText (if present) and returns a
// Coordinator ready to Run. A formula parse error is surfaced
// immediately, before any enumeration starts.
func New(cfg Config) (*Coordinator, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = generator.DefaultBatchSize
	}

	var formula logic.Formula
	if cfg.FormulaText != "" {
		parsed, err := logic.Parse(cfg.FormulaText)
		if err != nil {
			return nil, errors.Wrap(err, "parse formula")
		}
		formula = logic.Expand(parsed)
	}
	return &Coordinator{cfg: cfg, formula: formula}, nil
}

// Run enumerates every n in [MinN, MaxN], forwarding emissions to sink.
// It returns early (with a nil error) the moment sink stops the search.
// EmissionLimit applies to each n separately: reaching it ends that n's
// enumeration and Run goes on with the next n. ctx cancellation
// propagates as the generator's own cooperative cancellation.
func (c *Coordinator) Run(ctx context.Context, sink Sink) error {
	for n := c.cfg.MinN; n <= c.cfg.MaxN; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		starting, err := c.startingFamily(n)
		if err != nil {
			return errors.Wrapf(err, "n=%d", n)
		}

		cache := canon.NewCache(c.cfg.CacheSize)
		logEntry := c.cfg.Logger.WithFields(logrus.Fields{"n": n, "mode": c.modeName()})
		logEntry.Info("starting enumeration")

		var trace *generator.Trace
		if c.cfg.TraceSize > 0 {
			trace = generator.NewTrace(c.cfg.TraceSize)
		}

		stopped := false
		genCfg := generator.Config{
			N:             n,
			Mode:          c.cfg.Mode,
			Starting:      starting,
			BatchSize:     c.cfg.BatchSize,
			EmissionLimit: c.cfg.EmissionLimit,
			Cache:         cache,
			Trace:         trace,
		}
		stats := generator.Generate(ctx, genCfg, func(depth int, f openset.Family) bool {
			emission := Emission{N: n, Family: f}
			if c.formula != nil {
				res := logic.Check(n, f, c.formula)
				emission.CheckResult = &res
				if !res.Satisfied {
					return true
				}
			}
			if !sink(emission) {
				stopped = true
				return false
			}
			return true
		})

		logEntry.WithFields(logrus.Fields{
			"emitted":            stats.Emitted,
			"rejected_duplicate": stats.RejectedDuplicate,
			"rejected_parent":    stats.RejectedParent,
			"batches_processed":  stats.BatchesProcessed,
		}).Info("enumeration complete")

		if trace != nil && c.cfg.OnTrace != nil {
			c.cfg.OnTrace(n, trace.Snapshot())
		}

		if stopped {
			return nil
		}
	}
	return nil
}

func (c *Coordinator) startingFamily(n int) (openset.Family, error) {
	if c.cfg.StartingFamily == nil {
		return canon.Canonicalize(n, generator.DefaultStartingFamily(n, c.cfg.Mode)), nil
	}
	validated, err := openset.Validate(n, c.cfg.StartingFamily, true)
	if err != nil {
		return nil, errors.Wrap(err, "invalid starting family")
	}
	return canon.Canonicalize(n, validated), nil
}

func (c *Coordinator) modeName() string {
	if c.cfg.Mode == generator.Semiframe {
		return "semiframe"
	}
	return "semitopology"
}
