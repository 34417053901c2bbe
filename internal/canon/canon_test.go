package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anoma/Semitopology-Checker/internal/openset"
)

func TestCanonicalizeRelabelsToLowestIndices(t *testing.T) {
	// canonicalize {{3},{1,3},{2,3},{1,2,3}} at n=3 should yield
	// {{1},{1,2},{1,3},{1,2,3}}.
	in := openset.Family{0b100, 0b101, 0b110, 0b111}
	want := openset.Family{0b001, 0b011, 0b101, 0b111}
	got := Canonicalize(3, in)
	assert.True(t, want.Equal(got), "got %v want %v", got, want)
}

func TestCanonicalizeIdempotent(t *testing.T) {
	fams := []openset.Family{
		{},
		{0},
		{0, 0b111},
		{0b100, 0b101, 0b110, 0b111},
	}
	for _, f := range fams {
		once := Canonicalize(3, f)
		twice := Canonicalize(3, once)
		assert.True(t, once.Equal(twice), "idempotence failed for %v", f)
	}
}

func TestCanonicalizeIsomorphismInvariant(t *testing.T) {
	n := 3
	f := openset.Family{0, 0b001, 0b111}
	base := Canonicalize(n, f)

	perms := []Permutation{
		{1, 2, 3},
		{3, 2, 1},
		{2, 3, 1},
		{3, 1, 2},
	}
	for _, p := range perms {
		relabeled := Apply(n, f, p)
		got := Canonicalize(n, relabeled)
		assert.True(t, base.Equal(got), "perm %v broke invariance: got %v want %v", p, got, base)
	}
}

func TestCanonicalizeEmptyFamily(t *testing.T) {
	got := Canonicalize(3, openset.Family{})
	assert.Empty(t, got)
}

func TestCanonicalizeCertRoundTrips(t *testing.T) {
	f := openset.Family{0, 0b010, 0b111}
	canonical, perm := CanonicalizeCert(3, f)
	assert.True(t, Apply(3, f, perm).Equal(canonical))
}

func TestCanonicalDelete(t *testing.T) {
	f := openset.Family{0, 0b001, 0b111}
	got := CanonicalDelete(3, f, 0b001)
	want := Canonicalize(3, openset.Family{0, 0b111})
	assert.True(t, want.Equal(got))
}

func TestCacheHitMatchesDirectCanonicalize(t *testing.T) {
	c := NewCache(4)
	f := openset.Family{0b100, 0b101, 0b110, 0b111}
	direct := Canonicalize(3, f)

	first := c.Lookup(3, f)
	require.True(t, direct.Equal(first))
	assert.Equal(t, 1, c.Len())

	second := c.Lookup(3, f)
	assert.True(t, direct.Equal(second))
	assert.Equal(t, 1, c.Len(), "repeat lookup should not grow the cache")
}

func TestCacheZeroCapacityDisablesCaching(t *testing.T) {
	c := NewCache(0)
	f := openset.Family{0, 0b111}
	_ = c.Lookup(3, f)
	assert.Equal(t, 0, c.Len())
}

func TestCacheFIFOEviction(t *testing.T) {
	c := NewCache(2)
	a := openset.Family{0b001}
	b := openset.Family{0b010}
	d := openset.Family{0b100}

	c.Lookup(3, a)
	c.Lookup(3, b)
	c.Lookup(3, d) // evicts a

	_, ok := c.Get(3, a)
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get(3, b)
	assert.True(t, ok)
	_, ok = c.Get(3, d)
	assert.True(t, ok)
}
