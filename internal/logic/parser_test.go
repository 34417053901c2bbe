package logic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicAtoms(t *testing.T) {
	f, err := Parse("p in X")
	require.NoError(t, err)
	assert.Equal(t, PointIn{Point: PointVar{Name: "p"}, Open: OpenVar{Name: "X"}}, f)

	f, err = Parse("X inter Y")
	require.NoError(t, err)
	assert.Equal(t, OpenIntersect{A: OpenVar{Name: "X"}, B: OpenVar{Name: "Y"}}, f)

	f, err = Parse("nonempty X")
	require.NoError(t, err)
	assert.Equal(t, Nonempty{Open: OpenVar{Name: "X"}}, f)

	f, err = Parse("p = q")
	require.NoError(t, err)
	assert.Equal(t, PointEq{A: PointVar{Name: "p"}, B: PointVar{Name: "q"}}, f)

	f, err = Parse("X != Y")
	require.NoError(t, err)
	assert.Equal(t, OpenEq{A: OpenVar{Name: "X"}, B: OpenVar{Name: "Y"}, Negate: true}, f)
}

func TestParseKAndIC(t *testing.T) {
	f, err := Parse("p in K p")
	require.NoError(t, err)
	assert.Equal(t, PointIn{Point: PointVar{Name: "p"}, Open: Community{Point: PointVar{Name: "p"}}}, f)

	f, err = Parse("IC X = Y")
	require.NoError(t, err)
	assert.Equal(t, OpenEq{A: InteriorComplement{Open: OpenVar{Name: "X"}}, B: OpenVar{Name: "Y"}}, f)
}

// TestParseNestedQuantifierShape asserts the full tree shape of a
// multi-quantifier formula via cmp.Diff, which (unlike assert.Equal's
// one-line failure) prints a path to the first differing field when the
// shapes diverge.
func TestParseNestedQuantifierShape(t *testing.T) {
	f, err := Parse("EO X. AP p. p in X")
	require.NoError(t, err)

	want := Quantifier{
		Kind: EO,
		Var:  "X",
		Body: Quantifier{
			Kind: AP,
			Var:  "p",
			Body: PointIn{Point: PointVar{Name: "p"}, Open: OpenVar{Name: "X"}},
		},
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("parsed formula mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInterChainSugar(t *testing.T) {
	f, err := Parse("X inter Y inter Z")
	require.NoError(t, err)
	assert.Equal(t, Macro{Kind: MacroOpenInterChain, Opens: []OpenExpr{OpenVar{Name: "X"}, OpenVar{Name: "Y"}, OpenVar{Name: "Z"}}}, f)

	f, err = Parse("p inter q")
	require.NoError(t, err)
	assert.Equal(t, Macro{Kind: MacroPointInterPair, Points: []PointExpr{PointVar{Name: "p"}, PointVar{Name: "q"}}}, f)

	f, err = Parse("p inter q inter r")
	require.NoError(t, err)
	assert.Equal(t, Macro{Kind: MacroPointInterChain, Points: []PointExpr{PointVar{Name: "p"}, PointVar{Name: "q"}, PointVar{Name: "r"}}}, f)
}

func TestParseMacroWords(t *testing.T) {
	cases := []struct {
		text string
		want Formula
	}{
		{"transitive T", Macro{Kind: MacroTransitive, Opens: []OpenExpr{OpenVar{Name: "T"}}}},
		{"topen T", Macro{Kind: MacroTopen, Opens: []OpenExpr{OpenVar{Name: "T"}}}},
		{"regular p", Macro{Kind: MacroRegular, Points: []PointExpr{PointVar{Name: "p"}}}},
		{"irregular p", Macro{Kind: MacroIrregular, Points: []PointExpr{PointVar{Name: "p"}}}},
		{"weakly_regular p", Macro{Kind: MacroWeaklyRegular, Points: []PointExpr{PointVar{Name: "p"}}}},
		{"quasiregular p", Macro{Kind: MacroQuasiregular, Points: []PointExpr{PointVar{Name: "p"}}}},
		{"indirectly_regular p", Macro{Kind: MacroIndirectlyRegular, Points: []PointExpr{PointVar{Name: "p"}}}},
		{"hypertransitive p", Macro{Kind: MacroHypertransitive, Points: []PointExpr{PointVar{Name: "p"}}}},
		{"unconflicted p", Macro{Kind: MacroUnconflicted, Points: []PointExpr{PointVar{Name: "p"}}}},
		{"conflicted p", Macro{Kind: MacroConflicted, Points: []PointExpr{PointVar{Name: "p"}}}},
	}
	for _, tt := range cases {
		f, err := Parse(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, f, tt.text)
	}
}

func TestParseSpaceMacro(t *testing.T) {
	f, err := Parse("regular_space")
	require.NoError(t, err)
	assert.Equal(t, Macro{Kind: MacroSpace, Inner: MacroRegular}, f)
}

func TestParseQuantifierExtendsOverRestOfFormula(t *testing.T) {
	f, err := Parse("EP x. x in X && nonempty X")
	require.NoError(t, err)
	want := Quantifier{
		Kind: EP,
		Var:  "x",
		Body: And{
			A: PointIn{Point: PointVar{Name: "x"}, Open: OpenVar{Name: "X"}},
			B: Nonempty{Open: OpenVar{Name: "X"}},
		},
	}
	assert.Equal(t, want, f)
}

func TestParsePrecedenceAndOverOr(t *testing.T) {
	f, err := Parse("nonempty X && nonempty Y || nonempty Z")
	require.NoError(t, err)
	want := Or{
		A: And{A: Nonempty{Open: OpenVar{Name: "X"}}, B: Nonempty{Open: OpenVar{Name: "Y"}}},
		B: Nonempty{Open: OpenVar{Name: "Z"}},
	}
	assert.Equal(t, want, f)
}

func TestParseImpliesRightAssociative(t *testing.T) {
	f, err := Parse("nonempty X => nonempty Y => nonempty Z")
	require.NoError(t, err)
	want := Implies{
		A: Nonempty{Open: OpenVar{Name: "X"}},
		B: Implies{A: Nonempty{Open: OpenVar{Name: "Y"}}, B: Nonempty{Open: OpenVar{Name: "Z"}}},
	}
	assert.Equal(t, want, f)
}

func TestParseIffLeftAssociative(t *testing.T) {
	f, err := Parse("nonempty X <=> nonempty Y <=> nonempty Z")
	require.NoError(t, err)
	want := Iff{
		A: Iff{A: Nonempty{Open: OpenVar{Name: "X"}}, B: Nonempty{Open: OpenVar{Name: "Y"}}},
		B: Nonempty{Open: OpenVar{Name: "Z"}},
	}
	assert.Equal(t, want, f)
}

func TestParseUnaryBindsTighterThanAnd(t *testing.T) {
	f, err := Parse("!nonempty X && nonempty Y")
	require.NoError(t, err)
	want := And{A: Not{Body: Nonempty{Open: OpenVar{Name: "X"}}}, B: Nonempty{Open: OpenVar{Name: "Y"}}}
	assert.Equal(t, want, f)
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	f, err := Parse("nonempty X && (nonempty Y || nonempty Z)")
	require.NoError(t, err)
	want := And{
		A: Nonempty{Open: OpenVar{Name: "X"}},
		B: Or{A: Nonempty{Open: OpenVar{Name: "Y"}}, B: Nonempty{Open: OpenVar{Name: "Z"}}},
	}
	assert.Equal(t, want, f)
}

func TestParseSortMismatchIsError(t *testing.T) {
	_, err := Parse("X in p")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseUnknownTokenIsError(t *testing.T) {
	_, err := Parse("p @ q")
	require.Error(t, err)
}

func TestParseTrailingInputIsError(t *testing.T) {
	_, err := Parse("nonempty X )")
	require.Error(t, err)
}

func TestParseNoFreeVariablesOrQuantifiers(t *testing.T) {
	f, err := Parse("weakly_regular_space")
	require.NoError(t, err)
	assert.Equal(t, Macro{Kind: MacroSpace, Inner: MacroWeaklyRegular}, f)
}
