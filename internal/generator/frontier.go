package generator

import "github.com/anoma/Semitopology-Checker/internal/openset"

// frontier holds the set of canonical families under expansion, grouped
// by depth so the caller can pull bounded per-depth batches. Queues are
// indexed by depth and drained shallowest-first, with no channel or
// goroutine machinery: the search driving it is single-threaded.
type frontier struct {
	queues map[int][]openset.Family
	next   int
}

func newFrontier() *frontier {
	return &frontier{queues: make(map[int][]openset.Family)}
}

func (fr *frontier) push(depth int, f openset.Family) {
	fr.queues[depth] = append(fr.queues[depth], f)
}

// popBatch returns up to batchSize families from the shallowest
// non-empty depth, removing them from the frontier. ok is false once the
// frontier is fully drained.
func (fr *frontier) popBatch(batchSize int) (depth int, batch []openset.Family, ok bool) {
	for {
		q, exists := fr.queues[fr.next]
		if !exists || len(q) == 0 {
			delete(fr.queues, fr.next)
			if len(fr.queues) == 0 {
				return 0, nil, false
			}
			fr.next++
			continue
		}
		if len(q) <= batchSize {
			delete(fr.queues, fr.next)
			return fr.next, q, true
		}
		batch = q[:batchSize]
		fr.queues[fr.next] = q[batchSize:]
		return fr.next, batch, true
	}
}
