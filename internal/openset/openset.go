// Package openset represents subsets of a finite ground set {1..n} as
// machine-word bitmasks, and finite families of such subsets as sorted
// slices of bitmasks. It is the substrate every other package builds on:
// canonicalization, generation, and the proposition evaluator all operate
// on the types defined here.
package openset

import "sort"

// Open is a subset of the ground set {1..n}, bit i set meaning element
// (i+1) is a member. The design assumes n <= 64 so a subset always fits
// a single machine word; n beyond that is out of scope.
type Open uint64

// FullSet returns the open containing every element of {1..n}.
func FullSet(n int) Open {
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return ^Open(0)
	}
	return Open(1)<<uint(n) - 1
}

// Contains reports whether point p (1-indexed) is a member of o.
func (o Open) Contains(p int) bool {
	return o&(1<<uint(p-1)) != 0
}

// Union returns the pairwise union of o and other.
func (o Open) Union(other Open) Open {
	return o | other
}

// Intersects reports whether o and other share a member.
func (o Open) Intersects(other Open) bool {
	return o&other != 0
}

// Subset reports whether every member of o is also a member of other.
func (o Open) Subset(other Open) bool {
	return o&other == o
}

// Cardinality returns the number of members of o.
func (o Open) Cardinality() int {
	count := 0
	for x := o; x != 0; x &= x - 1 {
		count++
	}
	return count
}

// Family is a finite set of opens. Its canonical representation is a
// slice sorted ascending as integers, with no duplicates. Every
// function in this package that returns a Family
// returns one satisfying that invariant; functions that accept a Family
// assume it unless documented otherwise.
type Family []Open

// Sort reorders f ascending in place.
func (f Family) Sort() {
	sort.Slice(f, func(i, j int) bool { return f[i] < f[j] })
}

// Clone returns an independent copy of f.
func (f Family) Clone() Family {
	out := make(Family, len(f))
	copy(out, f)
	return out
}

// Contains reports whether o is a member of f. f must be sorted.
func (f Family) Contains(o Open) bool {
	i := sort.Search(len(f), func(i int) bool { return f[i] >= o })
	return i < len(f) && f[i] == o
}

// Equal reports whether f and g contain the same opens in the same
// order. Both must be sorted for this to coincide with set equality.
func (f Family) Equal(g Family) bool {
	if len(f) != len(g) {
		return false
	}
	for i := range f {
		if f[i] != g[i] {
			return false
		}
	}
	return true
}

// WithAdded returns a new, sorted family equal to f with o inserted.
// Behavior is undefined if o is already a member.
func (f Family) WithAdded(o Open) Family {
	out := make(Family, len(f)+1)
	copy(out, f)
	out[len(f)] = o
	out.Sort()
	return out
}

// WithRemoved returns a new, sorted family equal to f with o removed.
// It is a no-op (returning a clone) if o is not a member.
func (f Family) WithRemoved(o Open) Family {
	out := make(Family, 0, len(f))
	for _, x := range f {
		if x != o {
			out = append(out, x)
		}
	}
	return out
}

// IsUnionClosed reports whether f satisfies invariant 1: for all x,y in
// f, x union y is also in f.
func IsUnionClosed(f Family) bool {
	for i := range f {
		for j := i; j < len(f); j++ {
			if !f.Contains(f[i].Union(f[j])) {
				return false
			}
		}
	}
	return true
}

// IsSemitopology reports whether f is union-closed and contains both the
// empty set and the full set over a ground size of n.
func IsSemitopology(n int, f Family) bool {
	if !f.Contains(0) || !f.Contains(FullSet(n)) {
		return false
	}
	return IsUnionClosed(f)
}

// IsSemiframe reports whether f is union-closed, contains the full set,
// does NOT contain the empty set, and satisfies T0: every pair of
// distinct points is separated by some open containing exactly one of
// them. Some accounts of semiframes disagree on whether ∅ is a member;
// this implementation excludes it, matching known reference counts
// (verified by hand for n=1 -> 1 and n=2 -> 2; see DESIGN.md). A
// semiframe is therefore not simply a semitopology plus T0 — it
// additionally forbids ∅.
func IsSemiframe(n int, f Family) bool {
	if f.Contains(0) || !f.Contains(FullSet(n)) {
		return false
	}
	if !IsUnionClosed(f) {
		return false
	}
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			separated := false
			for _, o := range f {
				if o.Contains(i) != o.Contains(j) {
					separated = true
					break
				}
			}
			if !separated {
				return false
			}
		}
	}
	return true
}
