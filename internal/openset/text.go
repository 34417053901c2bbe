package openset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseError reports a lexical or structural failure in family or open
// text, with the byte offset and offending token so a caller can point
// a user at the exact spot.
type ParseError struct {
	Pos     int
	Token   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d (%q): %s", e.Pos, e.Token, e.Message)
}

type textScanner struct {
	input string
	pos   int
}

func (s *textScanner) skipSpace() {
	for s.pos < len(s.input) && (s.input[s.pos] == ' ' || s.input[s.pos] == '\t' || s.input[s.pos] == '\n' || s.input[s.pos] == '\r') {
		s.pos++
	}
}

func (s *textScanner) peek() byte {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *textScanner) expect(ch byte) error {
	s.skipSpace()
	if s.peek() != ch {
		return &ParseError{Pos: s.pos, Token: string(s.peek()), Message: fmt.Sprintf("expected %q", ch)}
	}
	s.pos++
	return nil
}

// ParseOpen parses the bit-exact `{e1, e2, ...}` syntax for a single
// open over a ground size of n. Elements must be ascending
// integers in 1..n; whitespace is insignificant.
func ParseOpen(input string, n int) (Open, error) {
	s := &textScanner{input: input}
	o, err := parseOpenFrom(s, n)
	if err != nil {
		return 0, errors.Wrap(err, "parse open")
	}
	s.skipSpace()
	if s.pos != len(s.input) {
		return 0, &ParseError{Pos: s.pos, Token: s.input[s.pos:], Message: "unexpected trailing input"}
	}
	return o, nil
}

func parseOpenFrom(s *textScanner, n int) (Open, error) {
	if err := s.expect('{'); err != nil {
		return 0, err
	}
	var o Open
	last := 0
	s.skipSpace()
	for s.peek() != '}' {
		s.skipSpace()
		start := s.pos
		for s.pos < len(s.input) && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
			s.pos++
		}
		if s.pos == start {
			return 0, &ParseError{Pos: s.pos, Token: string(s.peek()), Message: "expected integer element"}
		}
		v, err := strconv.Atoi(s.input[start:s.pos])
		if err != nil {
			return 0, &ParseError{Pos: start, Token: s.input[start:s.pos], Message: "malformed integer"}
		}
		if v < 1 || v > n {
			return 0, &ParseError{Pos: start, Token: s.input[start:s.pos], Message: fmt.Sprintf("element out of range 1..%d", n)}
		}
		if v <= last {
			return 0, &ParseError{Pos: start, Token: s.input[start:s.pos], Message: "elements must be strictly ascending"}
		}
		last = v
		o = o.Union(1 << uint(v-1))
		s.skipSpace()
		if s.peek() == ',' {
			s.pos++
			s.skipSpace()
			continue
		}
		break
	}
	if err := s.expect('}'); err != nil {
		return 0, err
	}
	return o, nil
}

// ParseFamily parses the bit-exact `{S1, S2, ...}` family syntax. `{}`
// parses as the empty family and `{{}}` as the family whose only member
// is the empty open, matching FormatFamily's output for each.
func ParseFamily(input string, n int) (Family, error) {
	s := &textScanner{input: input}
	if err := s.expect('{'); err != nil {
		return nil, errors.Wrap(err, "parse family")
	}
	s.skipSpace()
	var fam Family
	seen := make(map[Open]bool)
	for s.peek() != '}' {
		o, err := parseOpenFrom(s, n)
		if err != nil {
			return nil, errors.Wrap(err, "parse family member")
		}
		if seen[o] {
			return nil, &ParseError{Pos: s.pos, Token: FormatOpen(o, n), Message: "duplicate open in family"}
		}
		seen[o] = true
		fam = append(fam, o)
		s.skipSpace()
		if s.peek() == ',' {
			s.pos++
			s.skipSpace()
			continue
		}
		break
	}
	if err := s.expect('}'); err != nil {
		return nil, errors.Wrap(err, "parse family")
	}
	s.skipSpace()
	if s.pos != len(s.input) {
		return nil, &ParseError{Pos: s.pos, Token: s.input[s.pos:], Message: "unexpected trailing input"}
	}
	fam.Sort()
	return fam, nil
}

// FormatOpen renders o using the bit-exact `{e1, e2, ...}` syntax,
// elements ascending.
func FormatOpen(o Open, n int) string {
	var elems []string
	for p := 1; p <= n; p++ {
		if o.Contains(p) {
			elems = append(elems, strconv.Itoa(p))
		}
	}
	return "{" + strings.Join(elems, ",") + "}"
}

// FormatFamily renders f for the output channel: opens ordered
// by (cardinality, then lexicographic) on output, distinct from the
// bitmask-ascending order that defines the family's canonical identity.
// A truly empty family (len(f) == 0) prints as `{}`. A family containing
// only the empty open prints as `{{}}`: the outer braces delimit the
// family, the inner pair is FormatOpen's rendering of that one member.
func FormatFamily(f Family, n int) string {
	if len(f) == 0 {
		return "{}"
	}
	ordered := f.Clone()
	sort.Slice(ordered, func(i, j int) bool {
		ci, cj := ordered[i].Cardinality(), ordered[j].Cardinality()
		if ci != cj {
			return ci < cj
		}
		return ordered[i] < ordered[j]
	})
	parts := make([]string, len(ordered))
	for i, o := range ordered {
		parts[i] = FormatOpen(o, n)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Validate checks elements, duplicates, and (optionally) union-closure
// for a raw, unsorted slice of opens read from user input, surfacing a
// caller-facing validation error.
func Validate(n int, raw []Open, requireUnionClosed bool) (Family, error) {
	if n <= 0 {
		return nil, errors.New("ground size n must be positive")
	}
	full := FullSet(n)
	seen := make(map[Open]bool, len(raw))
	fam := make(Family, 0, len(raw))
	for _, o := range raw {
		if o &^ full != 0 {
			return nil, errors.Errorf("open %d has elements outside 1..%d", o, n)
		}
		if seen[o] {
			return nil, errors.Errorf("duplicate open %s in family", FormatOpen(o, n))
		}
		seen[o] = true
		fam = append(fam, o)
	}
	fam.Sort()
	if requireUnionClosed && !IsUnionClosed(fam) {
		return nil, errors.New("starting family is not union-closed")
	}
	return fam, nil
}
