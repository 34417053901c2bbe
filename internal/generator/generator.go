// Package generator implements an orbit-avoiding search, processed
// level by level: it emits each canonical union-closed family over
// {1..n} exactly once, filtering by mode (semitopology or semiframe).
package generator

import (
	"context"

	"github.com/anoma/Semitopology-Checker/internal/canon"
	"github.com/anoma/Semitopology-Checker/internal/openset"
)

// Mode selects which family predicate the search targets.
type Mode int

const (
	// Semitopology families are union-closed and contain both ∅ and the
	// full set.
	Semitopology Mode = iota
	// Semiframe families are union-closed, contain the full set, exclude
	// ∅, and satisfy T0 (see openset.IsSemiframe and DESIGN.md).
	Semiframe
)

// DefaultStartingFamily returns the default starting point for mode:
// {∅, full-set} for semitopologies, {full-set} alone for semiframes.
func DefaultStartingFamily(n int, mode Mode) openset.Family {
	full := openset.FullSet(n)
	if mode == Semiframe {
		return openset.Family{full}
	}
	return openset.Family{0, full}
}

// DefaultBatchSize is the configured default for per-depth batching.
const DefaultBatchSize = 100000

// Config parameterizes a single enumeration run.
type Config struct {
	N         int
	Mode      Mode
	Starting  openset.Family // nil selects DefaultStartingFamily
	BatchSize int            // 0 selects DefaultBatchSize
	// EmissionLimit caps the number of families passed to Emit; 0 means
	// unlimited.
	EmissionLimit int
	Cache         *canon.Cache // nil disables caching (capacity 0 cache)
	Trace         *Trace       // nil (or zero-capacity) disables diagnostic tracing
}

// EmitFunc receives each canonical family as it is discovered, along
// with its depth (the number of extension steps from the starting
// family). Returning false stops the search early; the search also
// stops on its own once EmissionLimit is reached.
type EmitFunc func(depth int, family openset.Family) bool

// Stats summarizes a completed or interrupted run.
type Stats struct {
	Emitted           int
	RejectedDuplicate int
	RejectedParent    int
	BatchesProcessed  int
	Stopped           bool // true if EmitFunc or the emission limit ended the search early
}

// Generate performs the canonical enumeration: starting from
// cfg.Starting (or the mode default), it repeatedly extends the
// frontier with union-closure-preserving
// candidate opens, accepts an extension only when it passes the
// canonical-parent test, and emits every accepted family exactly once
// (after the mode's post-filter for Semiframe). The frontier is drained
// level by level, shallowest depth first, so every family at one depth
// is emitted before any family at the next: the emission order is
// breadth-first, not depth-first. Cancellation is cooperative via ctx,
// checked between batches.
func Generate(ctx context.Context, cfg Config, emit EmitFunc) Stats {
	cache := cfg.Cache
	if cache == nil {
		cache = canon.NewCache(0)
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	starting := cfg.Starting
	if starting == nil {
		starting = DefaultStartingFamily(cfg.N, cfg.Mode)
	}
	start := cache.Lookup(cfg.N, starting)

	stats := Stats{}
	var emitted int

	tryEmit := func(depth int, f openset.Family) bool {
		if cfg.Mode == Semiframe && !openset.IsSemiframe(cfg.N, f) {
			return true // not a match for this mode, but keep descending
		}
		if !emit(depth, f) {
			stats.Stopped = true
			return false
		}
		cfg.Trace.Record(EventEmit, cfg.N, depth, f)
		stats.Emitted++
		emitted++
		if cfg.EmissionLimit > 0 && emitted >= cfg.EmissionLimit {
			stats.Stopped = true
			return false
		}
		return true
	}

	frontier := newFrontier()
	frontier.push(0, start)

	if !tryEmit(0, start) {
		return stats
	}

	for {
		select {
		case <-ctx.Done():
			stats.Stopped = true
			return stats
		default:
		}

		depth, batch, ok := frontier.popBatch(batchSize)
		if !ok {
			return stats
		}
		stats.BatchesProcessed++
		cfg.Trace.Record(EventBatchStart, cfg.N, depth, nil)

		seen := make(map[string]bool, len(batch)*2)
		for _, parent := range batch {
			children, rejectedByParent := extend(cfg.N, parent, cache)
			stats.RejectedParent += rejectedByParent
			if rejectedByParent > 0 {
				cfg.Trace.Record(EventRejectParent, cfg.N, depth, parent)
			}
			for _, child := range children {
				ck := familyKey(child)
				if seen[ck] {
					stats.RejectedDuplicate++
					cfg.Trace.Record(EventRejectDuplicate, cfg.N, depth+1, child)
					continue
				}
				seen[ck] = true
				frontier.push(depth+1, child)
				if !tryEmit(depth+1, child) {
					return stats
				}
			}
		}
		cfg.Trace.Record(EventBatchEnd, cfg.N, depth, nil)
	}
}

// extend computes every accepted canonical child of parent: for each
// candidate open s not already in parent such that parent U {s} stays
// union-closed, canonicalize the extension and accept it only if its
// canonical parent equals parent. The canonical parent drops the
// smallest member of the sorted canonical tuple that is neither ∅ nor
// the full set (or the last member when every member is ∅ or the full
// set) and canonicalizes what is left. That smallest member is never the
// union of two other members, so the parent stays union-closed and keeps
// ∅ and the full set; each family the mode emits is therefore reached
// from the mode's default starting family.
func extend(n int, parent openset.Family, cache *canon.Cache) (accepted []openset.Family, rejectedByParent int) {
	full := openset.FullSet(n)
	for s := openset.Open(0); s <= full; s++ {
		if parent.Contains(s) {
			continue
		}
		if !preservesUnionClosure(parent, s) {
			continue
		}
		child := parent.WithAdded(s)
		canonical := cache.Lookup(n, child)
		if len(canonical) == 0 {
			continue
		}
		drop := canonical[len(canonical)-1]
		for _, o := range canonical {
			if o != 0 && o != full {
				drop = o
				break
			}
		}
		parentCandidate := cache.Lookup(n, canonical.WithRemoved(drop))
		if parentCandidate.Equal(parent) {
			accepted = append(accepted, canonical)
		} else {
			rejectedByParent++
		}
	}
	return accepted, rejectedByParent
}

// preservesUnionClosure reports whether adding s to f keeps the family
// union-closed without needing any further completion: every existing
// member's union with s must already be a member of f, or equal to s
// itself.
func preservesUnionClosure(f openset.Family, s openset.Open) bool {
	for _, x := range f {
		u := x.Union(s)
		if u != s && !f.Contains(u) {
			return false
		}
	}
	return true
}

func familyKey(f openset.Family) string {
	b := make([]byte, 0, len(f)*9)
	for _, o := range f {
		b = append(b, byte(o), byte(o>>8), byte(o>>16), byte(o>>24), byte(o>>32), byte(o>>40), byte(o>>48), byte(o>>56), ',')
	}
	return string(b)
}
