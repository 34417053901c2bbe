// Package canon computes the canonical form of a finite family of opens
// under relabeling of the ground set by the symmetric group S_n. It is
// the substrate of isomorphism equality used by every other package:
// two families are "the same" exactly when canon.Canonicalize returns
// the same result for both.
package canon

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/anoma/Semitopology-Checker/internal/openset"
)

// BruteForceLimit is the largest ground size for which Canonicalize will
// search all n! permutations. Full union-closed-family enumeration is
// already astronomically large well before n reaches this limit, so in
// practice this ceiling is never the bottleneck. Raising it is safe but
// slow; it exists so a pathological input fails fast with a
// diagnosable error instead of spinning forever.
const BruteForceLimit = 10

// Permutation maps an old point (1-indexed) to a new point: Permutation[p-1]
// gives the image of p. It is the certificate Canonicalize can optionally
// produce alongside the canonical family.
type Permutation []int

// Apply relabels every open in f according to perm and returns the
// sorted result. perm must have length n.
func Apply(n int, f openset.Family, perm Permutation) openset.Family {
	out := make(openset.Family, len(f))
	for i, o := range f {
		out[i] = applyToOpen(o, perm)
	}
	out.Sort()
	return out
}

func applyToOpen(o openset.Open, perm Permutation) openset.Open {
	var result openset.Open
	for p := 1; p <= len(perm); p++ {
		if o.Contains(p) {
			result |= 1 << uint(perm[p-1]-1)
		}
	}
	return result
}

// Canonicalize returns the lexicographically minimal sorted-tuple family
// reachable from f by relabeling {1..n}. It is a pure function: the same
// (n, f) always produces a bit-identical result, which is the property
// every caller (the Cache, the Generator's canonical-parent test)
// relies on.
func Canonicalize(n int, f openset.Family) openset.Family {
	fam, _ := CanonicalizeCert(n, f)
	return fam
}

// CanonicalizeCert is Canonicalize plus the witnessing permutation: the
// identity-to-canonical relabeling that produced the result. Ties (more
// than one permutation producing the minimal tuple) are broken by
// returning the first found in the deterministic search order below, so
// the certificate itself is also referentially transparent.
func CanonicalizeCert(n int, f openset.Family) (openset.Family, Permutation) {
	if len(f) == 0 {
		return openset.Family{}, identity(n)
	}
	if n <= 0 {
		return f.Clone(), Permutation{}
	}
	if n > BruteForceLimit {
		panic(errors.Errorf("canon: ground size %d exceeds brute-force limit %d; this is a programming defect, not a user error", n, BruteForceLimit))
	}

	best := f.Clone()
	best.Sort()
	bestPerm := identity(n)
	found := false

	perm := make(Permutation, n)
	used := make([]bool, n+1)
	scratch := make(openset.Family, len(f))

	var search func(depth int)
	search = func(depth int) {
		if depth == n {
			for i, o := range f {
				scratch[i] = applyToOpen(o, perm)
			}
			scratch.Sort()
			if !found || lessFamily(scratch, best) {
				found = true
				copy(best, scratch)
				copy(bestPerm, perm)
			}
			return
		}
		for candidate := 1; candidate <= n; candidate++ {
			if used[candidate] {
				continue
			}
			used[candidate] = true
			perm[depth] = candidate
			search(depth + 1)
			used[candidate] = false
		}
	}
	search(0)

	return best, bestPerm
}

func identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i + 1
	}
	return p
}

func lessFamily(a, b openset.Family) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// CanonicalDelete returns canonicalize(n, f minus x); the helper behind
// the Generator's canonical-parent test.
func CanonicalDelete(n int, f openset.Family, x openset.Open) openset.Family {
	return Canonicalize(n, f.WithRemoved(x))
}

// Identity reports whether perm is the identity permutation on {1..n}.
func Identity(perm Permutation) bool {
	for i, v := range perm {
		if v != i+1 {
			return false
		}
	}
	return true
}

// FormatPermutation renders perm as the point-by-point image mapping
// "1->p(1), 2->p(2), ...", so a reader can check the relabeling without
// cross-referencing indices into a bare slice.
func FormatPermutation(perm Permutation) string {
	parts := make([]string, len(perm))
	for i, v := range perm {
		parts[i] = strconv.Itoa(i+1) + "->" + strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
